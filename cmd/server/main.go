package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func main() {
	if err := config.Load(); err != nil {
		logrus.WithError(err).Fatal("failed to load .env file")
	}

	logger, err := config.NewLogger()
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure logger")
	}
	mines.Log = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := openStore(ctx, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open game session store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Error("failed to close game session store")
		}
	}()

	ws, err := config.NewWebSocket()
	if err != nil {
		logger.WithError(err).Error("failed to read ws config")
		return
	}

	a := app.New(logger, store, ws)
	if err := a.Run(ctx, config.Port()); err != nil {
		logger.WithError(err).Error("server stopped")
		return
	}
	logger.Info("server stopped")
}
