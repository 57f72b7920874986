package main

import (
	"gymbook/internal/catalog/handler"
	"gymbook/internal/catalog/repository"
	"gymbook/internal/catalog/service"
	"gymbook/internal/catalog/validator"
	"gymbook/pkg/app"
	"gymbook/pkg/config"
)

const ServiceName = "catalog"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Catalog service")
	catalogService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewCatalogHandler(catalogService, validator.NewBookValidator(cfg.Log), cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CatalogService {
	repo := repository.NewMongoCatalogRepository(cfg)

	cfg.Log.Info("Catalog service initialized", "database", cfg.MongoDatabaseName)
	return service.NewCatalogService(repo)
}
