package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path and query parameter messages
	ErrMsgMissingPathParam = "Missing %s path parameter"
	ErrMsgInvalidTaskID    = "Invalid task ID"

	// Catalog messages
	ErrMsgNoCatalog = "No task catalog loaded"
)

// Success messages for API responses
const (
	MsgSessionDeleted     = "Session deleted"
	MsgCatalogReloaded    = "Task catalog reloaded"
	MsgCatalogUnchanged   = "Task catalog unchanged"
	MsgStoreNotAvailable  = "The store is not available yet"
	MsgSkillsNotAvailable = "Skills are not available yet"
)

// Log messages
const (
	LogMsgSessionCreated   = "Session created"
	LogMsgSessionDeleted   = "Session deleted"
	LogMsgCatalogReloading = "Reloading task catalog"
	LogMsgCatalogReloaded  = "Task catalog reloaded"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgDecodeFailed     = "Failed to decode %s request"
	LogMsgDecoded          = "%s request decoded"
	LogMsgServiceError     = "%s failed"
	LogMsgServiceRejected  = "%s rejected"
)
