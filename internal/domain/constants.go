package domain

import "time"

// Stat bounds
const (
	MaxStat = 100
)

// Game defaults. The balance file can override all of these.
const (
	DefaultQueueCapacity        = 4
	DefaultGenerationInterval   = 5000 * time.Millisecond
	DefaultTaskDuration         = 3000 * time.Millisecond
	DefaultProgressStepInterval = 100 * time.Millisecond
	DefaultEnergyCost           = 20
	DefaultMinEnergyToStart     = 20

	DefaultStartingWork   = 0
	DefaultStartingFood   = 100
	DefaultStartingEnergy = 100
)

// ProgressComplete is the progress value of a finished task
const ProgressComplete = 100.0

// Scene names
const (
	SceneMenu = "menu"
	SceneGame = "game"
)

// Menu and game text
const (
	GameTitle    = "GibLife"
	GameSubtitle = "Web3 Freelancer Simulator"

	ButtonStartGame     = "Start Game"
	ButtonConnectWallet = "Connect Wallet"

	WalletNotConnected = "Not connected"
	WalletConnectedFmt = "Connected: %s"

	BoardHeader         = "Available Tasks:"
	BoardEmpty          = "No tasks available"
	MaxTasksReached     = "Maximum tasks reached"
	NextTaskInFmt       = "Next task in: %ds"
	InsufficientEnergy  = "Not enough energy!"
	ShortAddressPrefix  = 4
	ShortAddressSuffix  = 4
	ShortAddressEllipse = "..."
)

// Wallet address shape (base58 encoded 32-byte public key)
const (
	WalletAddressMinLen = 32
	WalletAddressMaxLen = 44

	base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)
