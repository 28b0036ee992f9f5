package bootstrap

import (
	"log/slog"

	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// SetupLogger initializes the default slog logger from the app config
func SetupLogger(cfg *config.Config) {
	logCfg := cfg.LoggerConfig()
	logger.InitLogger(logCfg)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.Level, "format", logCfg.Format)
	slog.Info(LogMsgStartingGibLife,
		"environment", cfg.Environment,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"tick_interval", cfg.TickInterval,
		"session_ttl", cfg.SessionTTL,
		"max_sessions", cfg.MaxSessions,
		"catalog_path", cfg.CatalogPath,
		"balance_path", cfg.BalancePath,
		"watch_catalog", cfg.WatchCatalog)
}
