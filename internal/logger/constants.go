package logger

// Level names
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Output formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults for unset config fields
const (
	DefaultServiceName = "giblife"
	DefaultVersion     = "dev"
)

// Environments that log for humans
const (
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeySessionID   = "session_id"
)

const (
	ErrMsgUnknownLevel  = "unknown log level %q"
	ErrMsgUnknownFormat = "unknown log format %q"
)
