package main

import (
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
)

func main() {
	if err := config.Load(); err != nil {
		logrus.WithError(err).Fatal("failed to load .env file")
	}

	logger, err := config.NewLogger()
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure logger")
	}

	url, err := config.DbURL()
	if err != nil {
		logger.WithError(err).Fatal("failed to read db config")
	}

	migrator, err := database.Migrate(url)
	if err != nil {
		logger.WithError(err).Fatal("failed to migrate db")
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		logger.WithError(err).Error("failed to check migration version")
		return
	}
	logger.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
