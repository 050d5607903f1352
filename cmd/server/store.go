package main

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

// openStore picks the session backend named by STORE.
func openStore(ctx context.Context, logger *logrus.Logger) (repository.Store, error) {
	kind, err := config.Store()
	if err != nil {
		return nil, err
	}
	logger.WithField("store", kind).Info("opening game session store")

	switch kind {
	case config.PostgresStore:
		pool, migrator, err := database.ConnectAndMigrate(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect and migrate db: %w", err)
		}
		if version, dirty, err := migrator.Version(); err == nil {
			logger.WithFields(logrus.Fields{
				"version": version,
				"dirty":   dirty,
			}).Debug("database schema is up to date")
		}
		migrator.Close()
		return repository.NewPostgresStore(pool), nil
	case config.BadgerStore:
		path, err := config.BadgerPath()
		if err != nil {
			return nil, err
		}
		opts := badger.DefaultOptions(path).WithLogger(logger)
		return repository.OpenBadgerStore(opts)
	default:
		return repository.NewMemoryStore(), nil
	}
}
