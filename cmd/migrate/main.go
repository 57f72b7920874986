package main

import (
	"context"
	"time"

	mongoMigration "gymbook/internal/migrations/mongo"
	"gymbook/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")

	if err := cfg.Client.Mongo.Disconnect(ctx); err != nil {
		cfg.Log.Error("Failed to disconnect from Mongo", "error", err)
	}
}
