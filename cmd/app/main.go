package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/GibLife_Go/internal/bootstrap"
	"github.com/osse101/GibLife_Go/internal/config"
)

// @title GibLife API
// @version 1.0
// @description Idle freelancer game server: sessions, task board and live event streams.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	if err := config.ValidateEnv(); err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range cfg.Warnings() {
		slog.Warn("Configuration warning", "warning", w)
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}
