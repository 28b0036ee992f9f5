package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "task.started")
const (
	// EventTypeTaskGenerated is published when a task is added to the queue
	EventTypeTaskGenerated = "task.generated"

	// EventTypeTaskStarted is published when a queued task becomes active
	EventTypeTaskStarted = "task.started"

	// EventTypeTaskProgress is published on every progress step of an active task
	EventTypeTaskProgress = "task.progress"

	// EventTypeTaskCompleted is published when an active task reaches 100 and pays out
	EventTypeTaskCompleted = "task.completed"

	// EventTypeTaskRejected is published when a start is refused for lack of energy
	EventTypeTaskRejected = "task.rejected"

	// EventTypeQueueUpdated carries the full queue after any change
	EventTypeQueueUpdated = "queue.updated"

	// EventTypeQueueFull is published when the queue reaches capacity
	EventTypeQueueFull = "queue.full"

	// EventTypeCountdown carries the generation countdown display state
	EventTypeCountdown = "generation.countdown"

	// EventTypeStatsUpdated carries the player stats after any change
	EventTypeStatsUpdated = "stats.updated"

	// EventTypeSceneChanged is published when a session switches scene
	EventTypeSceneChanged = "scene.changed"

	// EventTypeWalletChanged is published on wallet connect/disconnect
	EventTypeWalletChanged = "wallet.changed"

	// EventTypeWalletOpenRequested asks the client to open its wallet connector
	EventTypeWalletOpenRequested = "wallet.open_requested"

	// EventTypeSessionClosed is published when a session is torn down
	EventTypeSessionClosed = "session.closed"
)
