package config

import (
	"fmt"
	"os"
	"slices"
	"time"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// coarseTickThreshold is the tick above which a progress bar visibly skips
// steps of the default 100ms progress interval
const coarseTickThreshold = 100 * time.Millisecond

// ValidateEnv checks that the environment was written for this build
func ValidateEnv() error {
	return validateEnvSchema(os.Getenv)
}

func validateEnvSchema(getenv func(string) string) error {
	switch v := getenv(EnvSchemaVersion); v {
	case ExpectedEnvSchemaVersion:
		return nil
	case "":
		return fmt.Errorf(ErrMsgEnvSchemaMissing, EnvSchemaVersion, ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf(ErrMsgEnvSchemaMismatch, EnvSchemaVersion, ExpectedEnvSchemaVersion, v)
	}
}

// Warnings lists settings that work but are probably not what the operator
// wants
func (c *Config) Warnings() []string {
	var warnings []string

	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, WarnExampleAPIKey)
	}
	if !c.IsDevelopment() && (len(c.CORSAllowedOrigins) == 0 || slices.Contains(c.CORSAllowedOrigins, "*")) {
		warnings = append(warnings, WarnOpenCORS)
	}
	if c.WatchCatalog && c.CatalogPath == "" {
		warnings = append(warnings, WarnWatchEmbeddedCatalog)
	}
	if c.TickInterval > coarseTickThreshold {
		warnings = append(warnings, fmt.Sprintf(WarnCoarseTickFmt, c.TickInterval))
	}
	if c.StatsInterval > c.SessionTTL {
		warnings = append(warnings, fmt.Sprintf(WarnStatsSlowerThanTTLFmt, c.StatsInterval, c.SessionTTL))
	}
	return warnings
}
