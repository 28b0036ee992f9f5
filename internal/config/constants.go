package config

// Environment names
const (
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
)

// EnvSchemaVersion names the variable carrying the .env layout version
const EnvSchemaVersion = "ENV_SCHEMA_VERSION"

// Example values shipped in .env.example that must not reach production
const (
	ExampleAPIKey = "generate_with_openssl_rand_hex_32"
)

// Environment errors
const (
	ErrMsgEnvSchemaMissing  = "%s is not set; add it to your .env file (expected %s)"
	ErrMsgEnvSchemaMismatch = "%s mismatch: expected %s, got %s; your .env file may be outdated"
)

// Configuration warnings
const (
	WarnExampleAPIKey         = "API_KEY is the example value; generate one with: openssl rand -hex 32"
	WarnOpenCORS              = "CORS_ALLOWED_ORIGINS allows every origin outside development"
	WarnWatchEmbeddedCatalog  = "WATCH_CATALOG is set but CATALOG_PATH is empty; the embedded catalog cannot change"
	WarnCoarseTickFmt         = "TICK_INTERVAL %s is coarser than one progress step; progress bars will jump"
	WarnStatsSlowerThanTTLFmt = "STATS_INTERVAL %s exceeds SESSION_TTL %s; idle sessions expire between samples"
)

// Balance error messages
const (
	ErrMsgReadBalanceFailed  = "failed to read balance file: %w"
	ErrMsgParseBalanceFailed = "failed to parse balance file: %w"
	ErrMsgInvalidBalance     = "invalid balance"
)
