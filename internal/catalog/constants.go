package catalog

import "time"

// Embedded schema name used with the schema validator
const (
	SchemaName = "tasks.schema.json"
)

// DebounceInterval is how long the watcher waits after a file event before reloading
const DebounceInterval = 250 * time.Millisecond

// Error message formats
const (
	ErrMsgReadConfigFileFailed = "failed to read task catalog file: %w"
	ErrMsgParseConfigFailed    = "failed to parse task catalog: %w"
	ErrMsgSchemaFailed         = "schema validation failed for %s: %w"
	ErrMsgWatcherCreateFailed  = "failed to create catalog watcher: %w"
	ErrMsgWatchDirFailed       = "failed to watch %s: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil       = "config is nil"
	ErrMsgNoTasksDefined  = "no tasks defined"
	ErrMsgEmptyTitle      = "has empty title"
	ErrMsgDuplicateTitle  = "duplicate title"
	ErrMsgNonPositive     = "has non-positive reward"
	ErrMsgUnknownSkill    = "has unknown required_skill"
	ErrMsgLevelBelowOne   = "has required_level below 1"
	ErrMsgTaskIndexFormat = "task %d (%q) %s"
)

// Log messages
const (
	LogMsgCatalogLoaded       = "Task catalog loaded"
	LogMsgCatalogReloaded     = "Task catalog reloaded"
	LogMsgCatalogReloadFailed = "Task catalog reload failed, keeping previous catalog"
	LogMsgWatchingCatalog     = "Watching task catalog for changes"
	LogMsgWatchFailed         = "Failed to watch task catalog"
	LogMsgWatchEvent          = "Detected task catalog change"
	LogMsgWatcherError        = "Task catalog watcher error"
	LogMsgCatalogUnchanged    = "Task catalog change detected but content unchanged"
)

// SourceEmbedded names the catalog compiled into the binary
const SourceEmbedded = "embedded"
