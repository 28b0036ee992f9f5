package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config describes how the default logger writes
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// WithEnvironmentDefaults fills what was left unset from the environment:
// development logs text with source locations, every other environment
// logs JSON.
func (c Config) WithEnvironmentDefaults() Config {
	dev := c.Environment == "" || c.Environment == EnvironmentDev || c.Environment == EnvironmentDevelopment
	if c.Format == "" {
		c.Format = LogFormatJSON
		if dev {
			c.Format = LogFormatText
		}
	}
	if c.Level == "" {
		c.Level = LogLevelInfo
	}
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	c.AddSource = c.AddSource || dev
	return c
}

// ParseLevel maps a level name to its slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LogLevelDebug:
		return slog.LevelDebug, nil
	case LogLevelInfo, "":
		return slog.LevelInfo, nil
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn, nil
	case LogLevelError:
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf(ErrMsgUnknownLevel, s)
}

// LogLevel returns the configured level, or info when it is not recognised
func (c Config) LogLevel() slog.Level {
	level, _ := ParseLevel(c.Level)
	return level
}

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// Validate rejects unknown levels and formats
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case LogFormatJSON, LogFormatText, "":
		return nil
	}
	return fmt.Errorf(ErrMsgUnknownFormat, c.Format)
}

// BaseAttributes are attached to every record. Empty values are left out.
func (c Config) BaseAttributes() []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	for _, kv := range [][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
