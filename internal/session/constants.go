package session

import "time"

// Actions returned by PrimaryAction
const (
	ActionOpenWallet = "open_wallet"
	ActionStartGame  = "start_game"
)

// Close reasons
const (
	ReasonDeleted  = "deleted"
	ReasonEvicted  = "evicted"
	ReasonShutdown = "shutdown"
)

// View text formats
const (
	StatsWorkFmt      = "Work: %d"
	StatsFoodFmt      = "Food: %d"
	StatsEnergyFmt    = "Energy: %d"
	SkillsHeader      = "Skills:"
	SkillDevFmt       = "  Dev: %d"
	SkillDesignFmt    = "  Design: %d"
	SkillMarketFmt    = "  Marketing: %d"
	TaskRewardFmt     = "%s\nReward: %d Work"
	ActiveProgressFmt = "%s - %d%%"

	ButtonStore  = "Store"
	ButtonSkills = "Skills"
)

const (
	inboxSize          = 64
	defaultMaxSessions = 1000
	defaultSessionTTL  = 30 * time.Minute
	closeTimeout       = 5 * time.Second
)

// Log messages
const (
	LogMsgSessionCreated     = "Session created"
	LogMsgSessionClosed      = "Session closed"
	LogMsgSessionEvicted     = "Session evicted"
	LogMsgGameStarted        = "Game started"
	LogMsgReturnedToMenu     = "Returned to menu"
	LogMsgWalletConnected    = "Wallet connected"
	LogMsgWalletDisconnected = "Wallet disconnected"
	LogMsgWalletOpenRequest  = "Wallet connector requested"
	LogMsgTickFailed         = "Game tick failed"
	LogMsgPublishFailed      = "Failed to publish game event"
	LogMsgStoreClicked       = "Store clicked"
	LogMsgSkillsClicked      = "Skills clicked"
	LogMsgCloseTimeout       = "Timed out waiting for session to stop"
)

// Error messages
const (
	ErrMsgPrimaryActionInGame  = "primary action is only available in the menu"
	ErrMsgNotImplementedFmt    = "%s is not implemented yet"
	ErrMsgManualTickWithTicker = "manual tick is not allowed while the session ticker runs"
)
