package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/veo1/merchant-catalog/app/config"
	"github.com/veo1/merchant-catalog/app/database"
	"github.com/veo1/merchant-catalog/app/logger"
)

// Main entry point for migration
func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: cfg.ServiceName + "-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migration completed", zap.String("database", cfg.DB.Name))
}
