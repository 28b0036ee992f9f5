package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/validation"
)

// GameConfig is the static game data loaded at startup
type GameConfig struct {
	Balance config.Balance
	Catalog *catalog.Provider
}

// LoadGameConfig reads the balance file and the task catalog. Empty paths
// select the embedded defaults.
func LoadGameConfig(cfg *config.Config) (GameConfig, error) {
	balance, err := config.LoadBalance(cfg.BalancePath)
	if err != nil {
		return GameConfig{}, fmt.Errorf("%s: %w", ErrMsgFailedLoadBalance, err)
	}
	slog.Info(LogMsgBalanceLoaded,
		"queue_capacity", balance.QueueCapacity,
		"generation_interval", balance.GenerationInterval,
		"task_duration", balance.TaskDuration,
		"freeze_at_capacity", balance.FreezeGenerationAtCapacity)

	loader, err := catalog.NewLoader(validation.NewSchemaValidator())
	if err != nil {
		return GameConfig{}, fmt.Errorf("%s: %w", ErrMsgFailedCreateLoader, err)
	}

	provider, err := catalog.NewProvider(loader, cfg.CatalogPath)
	if err != nil {
		return GameConfig{}, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	return GameConfig{Balance: balance, Catalog: provider}, nil
}
