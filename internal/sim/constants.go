package sim

import "time"

// Policy names
const (
	PolicyGreedy  = "greedy"
	PolicyRichest = "richest"
	PolicyIdle    = "idle"
)

// Defaults
const (
	DefaultTick     = 50 * time.Millisecond
	DefaultDuration = 5 * time.Minute
)

// simulationEpoch is the simulated wall clock start, fixed so traces of the
// same seed are identical
var simulationEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Log messages
const (
	LogMsgRunStarted  = "Simulation started"
	LogMsgRunFinished = "Simulation finished"
	LogMsgTraceFailed = "Failed to write trace record"
)
