package bootstrap

import "time"

// Shutdown timing
const (
	ShutdownTimeout = 15 * time.Second
	PoolQueueSize   = 16
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingGibLife     = "Starting GibLife"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Log messages for game setup
const (
	LogMsgBalanceLoaded      = "Balance loaded"
	LogMsgWatchingCatalog    = "Catalog hot reload enabled"
	LogMsgCatalogWatchFailed = "Catalog watcher stopped"
	ErrMsgFailedLoadBalance  = "failed to load balance"
	ErrMsgFailedLoadCatalog  = "failed to load task catalog"
	ErrMsgFailedCreateLoader = "failed to create catalog loader"
	ErrMsgFailedStartService = "failed to start session service"
)

// Log messages for event handler registration
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgServerFailed          = "Server failed"
	LogMsgStoppingBackground    = "Stopping background jobs"
	LogMsgClosingStreams        = "Closing event streams"
	LogMsgServiceShutdownFailed = " service shutdown failed"

	ServiceNameSession = "session"
)
