package event

// EventSchemaVersion is stamped on every event
const EventSchemaVersion = "1.0"

const (
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"

	ErrMsgPayloadFmt     = "decode %s payload: %v"
	ErrMsgPayloadMissing = "payload is empty"
)
