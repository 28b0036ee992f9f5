package ws

import "time"

// Connection settings
const (
	handshakeTimeout = 5 * time.Second
	writeWait        = 5 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	outboxSize       = 32
	readLimit        = 4 * 1024
)

// Client -> server message types
const (
	TypeHello            = "hello"
	TypeConnectWallet    = "connect_wallet"
	TypeDisconnectWallet = "disconnect_wallet"
	TypePrimaryAction    = "primary_action"
	TypeStartTask        = "start_task"
	TypeNavigateMenu     = "navigate_menu"
	TypeGetView          = "get_view"
)

// Server -> client message types
const (
	TypeWelcome     = "welcome"
	TypeView        = "view"
	TypeAction      = "action"
	TypeTaskStarted = "task_started"
	TypeEvent       = "event"
	TypeError       = "error"
)

// Log messages
const (
	LogMsgConnected      = "WebSocket client connected"
	LogMsgDisconnected   = "WebSocket client disconnected"
	LogMsgHandshakeFail  = "WebSocket handshake failed"
	LogMsgUpgradeFail    = "WebSocket upgrade failed"
	LogMsgBadMessage     = "Ignoring malformed WebSocket message"
	LogMsgCommandFailed  = "WebSocket command failed"
	LogMsgOutboxOverflow = "WebSocket outbox full, dropping message"
)

// Close reasons
const (
	CloseMsgExpectedHello  = "expected hello"
	CloseMsgUnknownSession = "unknown session"
	CloseMsgSessionClosed  = "session closed"
)

// Error messages
const (
	ErrMsgUnknownType = "unknown message type %q"
	ErrMsgBadTaskID   = "invalid task_id"
	ErrMsgBadAddress  = "invalid wallet address"
	ErrMsgNeedTask    = "start_task needs task_id or title"
)
