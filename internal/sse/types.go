package sse

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ConnectedPayload is the first event a client receives
type ConnectedPayload struct {
	ClientID  string   `json:"client_id"`
	SessionID string   `json:"session_id,omitempty"`
	Filters   []string `json:"filters"`
}
