package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPRequestsRejected = "http_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Game metric names
const (
	MetricNameTasksGenerated   = "giblife_tasks_generated_total"
	MetricNameTasksStarted     = "giblife_tasks_started_total"
	MetricNameTasksRejected    = "giblife_tasks_rejected_total"
	MetricNameTasksCompleted   = "giblife_tasks_completed_total"
	MetricNameWorkEarned       = "giblife_work_earned_total"
	MetricNameTaskReward       = "giblife_task_reward"
	MetricNameQueueFull        = "giblife_queue_full_total"
	MetricNameTimerResets      = "giblife_generation_timer_resets_total"
	MetricNameGamesStarted     = "giblife_games_started_total"
	MetricNameSessionsClosed   = "giblife_sessions_closed_total"
	MetricNameWalletChanges    = "giblife_wallet_changes_total"
	MetricNameActiveSessions   = "giblife_active_sessions"
	MetricNameSessionsInGame   = "giblife_sessions_in_game"
	MetricNameSSEClients       = "giblife_sse_clients"
	MetricNameSSEEventsDropped = "giblife_sse_events_dropped"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPRequestsRejected = "Total number of HTTP requests refused by the abuse guard, by reason"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Game metric help text
const (
	HelpTextTasksGenerated   = "Total number of tasks added to a queue"
	HelpTextTasksStarted     = "Total number of tasks started"
	HelpTextTasksRejected    = "Total number of task starts refused for lack of energy"
	HelpTextTasksCompleted   = "Total number of tasks completed"
	HelpTextWorkEarned       = "Total Work paid out by completed tasks"
	HelpTextTaskReward       = "Reward of completed tasks"
	HelpTextQueueFull        = "Total number of times a queue reached capacity"
	HelpTextTimerResets      = "Total number of generation timer resets caused by completing a task started from a full queue"
	HelpTextGamesStarted     = "Total number of games started"
	HelpTextSessionsClosed   = "Total number of sessions closed, by reason"
	HelpTextWalletChanges    = "Total number of wallet connects and disconnects"
	HelpTextActiveSessions   = "Current number of live sessions"
	HelpTextSessionsInGame   = "Current number of sessions in the game scene"
	HelpTextSSEClients       = "Current number of connected SSE clients"
	HelpTextSSEEventsDropped = "Events not delivered to SSE clients because a buffer was full"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelTitle  = "title"
	LabelReason = "reason"
	LabelState  = "state"
)

// Rejection label values
const (
	RejectRateLimited  = "rate_limited"
	RejectUnauthorized = "unauthorized"
)

// Wallet label values
const (
	WalletConnected    = "connected"
	WalletDisconnected = "disconnected"
)

// PathUnmatched labels requests no route matched
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RewardBuckets spans the rewards of the default catalog
var RewardBuckets = []float64{25, 50, 75, 100, 150, 200, 300}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
