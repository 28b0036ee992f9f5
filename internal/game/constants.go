package game

// Log messages
const (
	LogMsgTaskGenerated       = "Task generated"
	LogMsgGenerationWasted    = "Generation expired at capacity"
	LogMsgTaskStarted         = "Task started"
	LogMsgTaskRejected        = "Task start rejected"
	LogMsgTaskCompleted       = "Task completed"
	LogMsgCompleteUnknownTask = "Completion for unknown task ignored"
	LogMsgTimerReset          = "Generation countdown reset after freeing a full queue"
	LogMsgSceneTornDown       = "Game scene torn down"
)

// Error message formats
const (
	ErrMsgEnergyShortFmt = "%w: have %d, need %d"
	ErrMsgTaskIDFmt      = "%w: %s"
)
