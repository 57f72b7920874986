package main

import (
	"gymbook/internal/feedback/handler"
	"gymbook/internal/feedback/repository"
	"gymbook/internal/feedback/service"
	"gymbook/internal/feedback/validator"
	"gymbook/internal/notify"
	"gymbook/pkg/app"
	"gymbook/pkg/config"
)

const ServiceName = "feedback"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Feedback service")
	serverApp := app.NewApplication(cfg)
	feedbackService := initServices(cfg, serverApp)
	serverApp.SetApp(handler.NewFeedbackHandler(feedbackService, validator.NewFeedbackValidator(), cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) service.FeedbackService {
	repo := repository.NewMongoFeedbackRepository(cfg)

	var publisher notify.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.NotificationsTopic, ServiceName)
		if err != nil {
			cfg.Log.Fatal("Failed to create notification publisher", "error", err)
		}
		publisher = kafkaPublisher
		serverApp.AddCloser(kafkaPublisher)
	} else {
		cfg.Log.Warn("No Kafka brokers configured; feedback emails disabled")
	}

	cfg.Log.Info("Feedback service initialized", "database", cfg.MongoDatabaseName)
	return service.NewFeedbackService(repo, publisher, cfg, cfg.Log)
}
