package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/GibLife_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a game event scoped to one session
type Event struct {
	Version   string      `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type        `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
	Metadata  Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Game event types
const (
	TaskGenerated       Type = domain.EventTypeTaskGenerated
	TaskStarted         Type = domain.EventTypeTaskStarted
	TaskProgress        Type = domain.EventTypeTaskProgress
	TaskCompleted       Type = domain.EventTypeTaskCompleted
	TaskRejected        Type = domain.EventTypeTaskRejected
	QueueUpdated        Type = domain.EventTypeQueueUpdated
	QueueFull           Type = domain.EventTypeQueueFull
	Countdown           Type = domain.EventTypeCountdown
	StatsUpdated        Type = domain.EventTypeStatsUpdated
	SceneChanged        Type = domain.EventTypeSceneChanged
	WalletChanged       Type = domain.EventTypeWalletChanged
	WalletOpenRequested Type = domain.EventTypeWalletOpenRequested
	SessionClosed       Type = domain.EventTypeSessionClosed
)

// AllTypes lists every event type a session can publish
var AllTypes = []Type{
	TaskGenerated, TaskStarted, TaskProgress, TaskCompleted, TaskRejected,
	QueueUpdated, QueueFull, Countdown, StatsUpdated,
	SceneChanged, WalletChanged, WalletOpenRequested, SessionClosed,
}

// Typed event payloads for type safety

// QueuePayloadV1 carries the whole queue after a change
type QueuePayloadV1 struct {
	Tasks    []domain.AvailableTask `json:"tasks"`
	Capacity int                    `json:"capacity"`
}

// TaskGeneratedPayloadV1 is the typed payload for task generated events
type TaskGeneratedPayloadV1 struct {
	Task domain.AvailableTask `json:"task"`
}

// ActiveTaskPayloadV1 is the typed payload for started and progress events
type ActiveTaskPayloadV1 struct {
	Task domain.ActiveTask `json:"task"`
}

// TaskCompletedPayloadV1 is the typed payload for task completed events
type TaskCompletedPayloadV1 struct {
	Task domain.CompletedTask `json:"task"`
}

// TaskRejectedPayloadV1 is the typed payload for insufficient energy rejections
type TaskRejectedPayloadV1 struct {
	Reason   string `json:"reason"`
	Energy   int    `json:"energy"`
	Required int    `json:"required"`
}

// CountdownPayloadV1 carries the generation countdown display state
type CountdownPayloadV1 struct {
	Fraction         float64 `json:"fraction"`
	RemainingSeconds int     `json:"remaining_seconds"`
	Text             string  `json:"text"`
}

// StatsPayloadV1 carries the player stats
type StatsPayloadV1 struct {
	Player domain.PlayerState `json:"player"`
}

// SceneChangedPayloadV1 is the typed payload for scene transitions
type SceneChangedPayloadV1 struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WalletPayloadV1 is the typed payload for wallet changes
type WalletPayloadV1 struct {
	Connected   bool   `json:"connected"`
	Address     string `json:"address,omitempty"`
	Status      string `json:"status"`
	ButtonLabel string `json:"button_label"`
}

// SessionClosedPayloadV1 is the typed payload for session teardown
type SessionClosedPayloadV1 struct {
	Reason string `json:"reason"`
	Work   int    `json:"work"`
}

// Type-safe event constructors

func newEvent(sessionID string, t Type, payload interface{}) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      t,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// NewQueueUpdatedEvent creates a queue updated event
func NewQueueUpdatedEvent(sessionID string, tasks []domain.AvailableTask, capacity int) Event {
	return newEvent(sessionID, QueueUpdated, QueuePayloadV1{Tasks: tasks, Capacity: capacity})
}

// NewQueueFullEvent creates a queue full event
func NewQueueFullEvent(sessionID string, capacity int) Event {
	return newEvent(sessionID, QueueFull, QueuePayloadV1{Capacity: capacity})
}

// NewTaskGeneratedEvent creates a task generated event
func NewTaskGeneratedEvent(sessionID string, task domain.AvailableTask) Event {
	return newEvent(sessionID, TaskGenerated, TaskGeneratedPayloadV1{Task: task})
}

// NewTaskStartedEvent creates a task started event
func NewTaskStartedEvent(sessionID string, task domain.ActiveTask) Event {
	return newEvent(sessionID, TaskStarted, ActiveTaskPayloadV1{Task: task})
}

// NewTaskProgressEvent creates a task progress event
func NewTaskProgressEvent(sessionID string, task domain.ActiveTask) Event {
	return newEvent(sessionID, TaskProgress, ActiveTaskPayloadV1{Task: task})
}

// NewTaskCompletedEvent creates a task completed event
func NewTaskCompletedEvent(sessionID string, done domain.CompletedTask) Event {
	return newEvent(sessionID, TaskCompleted, TaskCompletedPayloadV1{Task: done})
}

// NewTaskRejectedEvent creates an insufficient energy event
func NewTaskRejectedEvent(sessionID string, energy, required int) Event {
	return newEvent(sessionID, TaskRejected, TaskRejectedPayloadV1{
		Reason:   domain.InsufficientEnergy,
		Energy:   energy,
		Required: required,
	})
}

// NewCountdownEvent creates a generation countdown event
func NewCountdownEvent(sessionID string, fraction float64, remainingSeconds int) Event {
	return newEvent(sessionID, Countdown, CountdownPayloadV1{
		Fraction:         fraction,
		RemainingSeconds: remainingSeconds,
		Text:             fmt.Sprintf(domain.NextTaskInFmt, remainingSeconds),
	})
}

// NewStatsUpdatedEvent creates a stats updated event
func NewStatsUpdatedEvent(sessionID string, player domain.PlayerState) Event {
	return newEvent(sessionID, StatsUpdated, StatsPayloadV1{Player: player})
}

// NewSceneChangedEvent creates a scene changed event
func NewSceneChangedEvent(sessionID, from, to string) Event {
	return newEvent(sessionID, SceneChanged, SceneChangedPayloadV1{From: from, To: to})
}

// NewWalletChangedEvent creates a wallet changed event. An empty address
// means disconnected.
func NewWalletChangedEvent(sessionID, address string) Event {
	label := domain.ButtonConnectWallet
	if address != "" {
		label = domain.ButtonStartGame
	}
	return newEvent(sessionID, WalletChanged, WalletPayloadV1{
		Connected:   address != "",
		Address:     address,
		Status:      domain.WalletStatus(address),
		ButtonLabel: label,
	})
}

// NewWalletOpenRequestedEvent asks the client to open its wallet connector
func NewWalletOpenRequestedEvent(sessionID string) Event {
	return newEvent(sessionID, WalletOpenRequested, nil)
}

// NewSessionClosedEvent creates a session closed event
func NewSessionClosedEvent(sessionID, reason string, work int) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      SessionClosed,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload:   SessionClosedPayloadV1{Reason: reason, Work: work},
		Metadata: map[string]interface{}{
			"reason": reason,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// on the publisher's goroutine.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes a handler to every type in types
func SubscribeAll(bus Bus, types []Type, handler Handler) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}
