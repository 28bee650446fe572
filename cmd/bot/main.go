package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DFR0S7/CMR-Bot/internal/app"
	"github.com/DFR0S7/CMR-Bot/internal/config"
	"github.com/DFR0S7/CMR-Bot/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("bot exited", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("bot stopped")
}
