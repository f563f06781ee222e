package main

import (
	"context"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/database"
)

func main() {
	cfg, err := config.LoadDatabase()
	if err != nil {
		config.Logger().WithError(err).Fatal("Invalid configuration")
	}
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log := config.Logger()
	ctx := context.Background()

	db, err := config.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		log.WithError(err).WithField("applied", applied).Fatal("Migration failed")
	}

	version, err := database.Version(ctx, db)
	if err != nil {
		log.WithError(err).Fatal("Failed to read schema version")
	}
	log.WithField("applied", applied).WithField("version", version).Info("Schema up to date")
}
