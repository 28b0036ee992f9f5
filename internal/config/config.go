package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/osse101/GibLife_Go/internal/logger"
)

// Config holds the application configuration
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	APIKey      string `envconfig:"API_KEY"` // admin endpoints
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT"` // empty: text in development, json elsewhere
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"giblife"`
	Version     string `envconfig:"VERSION" default:"dev"`

	// Game runtime
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"50ms"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	MaxSessions  int           `envconfig:"MAX_SESSIONS" default:"1000"`
	CatalogPath  string        `envconfig:"CATALOG_PATH"` // empty uses the embedded catalog
	BalancePath  string        `envconfig:"BALANCE_PATH"` // empty uses the embedded balance
	WatchCatalog bool          `envconfig:"WATCH_CATALOG" default:"false"`

	// Background jobs
	StatsInterval time.Duration `envconfig:"STATS_INTERVAL" default:"15s"`
	WorkerCount   int           `envconfig:"WORKER_COUNT" default:"2"`

	// HTTP
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	TrustedProxies     []string `envconfig:"TRUSTED_PROXIES"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return errors.New("API_KEY environment variable must be set for security")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("MAX_SESSIONS must be positive, got %d", c.MaxSessions)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount)
	}
	if err := c.LoggerConfig().Validate(); err != nil {
		return fmt.Errorf("LOG_LEVEL or LOG_FORMAT: %w", err)
	}
	return nil
}

// LoggerConfig derives the logger settings. Development logs text with
// source locations unless LOG_FORMAT says otherwise.
func (c *Config) LoggerConfig() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, c.ServiceName, c.Version, c.Environment, false).
		WithEnvironmentDefaults()
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDev || c.Environment == EnvironmentDevelopment
}
