package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/GibLife_Go/configs"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/validation"
)

// Config represents the JSON task catalog file
type Config struct {
	Version string                `json:"version"`
	Tasks   []domain.TaskTemplate `json:"tasks"`
}

// Loader handles loading and validating task catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Parse(data []byte, source string) (*Config, error)
	Validate(config *Config) error
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader that validates against the embedded schema
func NewLoader(schemaValidator validation.SchemaValidator) (Loader, error) {
	if err := schemaValidator.RegisterSchema(SchemaName, configs.TasksSchema); err != nil {
		return nil, fmt.Errorf("failed to register task catalog schema: %w", err)
	}
	return &catalogLoader{schemaValidator: schemaValidator}, nil
}

// Load reads and parses a task catalog JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}
	return l.Parse(data, path)
}

// Parse validates data against the schema, then decodes it
func (l *catalogLoader) Parse(data []byte, source string) (*Config, error) {
	if err := l.schemaValidator.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: "+ErrMsgSchemaFailed, domain.ErrInvalidCatalog, source, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks rules the schema cannot express, such as unique titles
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, ErrMsgConfigNil)
	}
	return validateTemplates(config.Tasks)
}

// Build loads, validates and constructs a Catalog. An empty path selects the
// embedded default catalog.
func Build(loader Loader, path string) (*Catalog, []byte, error) {
	data := configs.Tasks
	source := SourceEmbedded
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
		}
		source = path
	}

	config, err := loader.Parse(data, source)
	if err != nil {
		return nil, nil, err
	}
	if err := loader.Validate(config); err != nil {
		return nil, nil, err
	}

	c, err := New(config.Version, source, config.Tasks)
	if err != nil {
		return nil, nil, err
	}
	return c, data, nil
}
