package worker

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// Log messages for the session stats job
const (
	LogMsgStatsCollected = "Session stats collected"
)
