package main

import (
	"gymbook/internal/identity"
	"gymbook/internal/ledger/handler"
	"gymbook/internal/ledger/repository"
	"gymbook/internal/ledger/service"
	"gymbook/internal/notify"
	"gymbook/pkg/app"
	"gymbook/pkg/config"
)

const ServiceName = "ledger"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Ledger service")
	serverApp := app.NewApplication(cfg)
	ledgerService := initServices(cfg, serverApp)
	serverApp.SetApp(handler.NewLedgerHandler(ledgerService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) service.LedgerService {
	repo := repository.NewMongoLedgerRepository(cfg)
	verifier := identity.NewHMACVerifier(cfg.TokenSigningKey)
	directories := []identity.Directory{
		identity.NewProfileDirectory(cfg.Client.Mongo.Database(cfg.MongoDatabaseName)),
	}

	// Reminders degrade to ErrNotConfigured when no brokers are set.
	var publisher notify.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.NotificationsTopic, ServiceName)
		if err != nil {
			cfg.Log.Fatal("Failed to create notification publisher", "error", err)
		}
		publisher = kafkaPublisher
		serverApp.AddCloser(kafkaPublisher)
	} else {
		cfg.Log.Warn("No Kafka brokers configured; class reminders disabled")
	}

	cfg.Log.Info("Ledger service initialized", "database", cfg.MongoDatabaseName)
	return service.NewLedgerService(repo, verifier, directories, publisher, cfg)
}
