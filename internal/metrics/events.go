package metrics

import (
	"context"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// EventMetricsCollector subscribes to game events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event type except the per-frame ones
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		domain.EventTypeTaskGenerated,
		domain.EventTypeTaskStarted,
		domain.EventTypeTaskCompleted,
		domain.EventTypeTaskRejected,
		domain.EventTypeQueueFull,
		domain.EventTypeSceneChanged,
		domain.EventTypeWalletChanged,
		domain.EventTypeSessionClosed,
	}

	event.SubscribeAll(bus, eventTypes, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case domain.EventTypeTaskGenerated:
		var p event.TaskGeneratedPayloadV1
		if p, err = event.PayloadAs[event.TaskGeneratedPayloadV1](evt); err == nil {
			TasksGenerated.WithLabelValues(p.Task.Template.Title).Inc()
		}

	case domain.EventTypeTaskStarted:
		var p event.ActiveTaskPayloadV1
		if p, err = event.PayloadAs[event.ActiveTaskPayloadV1](evt); err == nil {
			TasksStarted.WithLabelValues(p.Task.Title).Inc()
		}

	case domain.EventTypeTaskCompleted:
		var p event.TaskCompletedPayloadV1
		if p, err = event.PayloadAs[event.TaskCompletedPayloadV1](evt); err == nil {
			TasksCompleted.WithLabelValues(p.Task.Title).Inc()
			WorkEarned.Add(float64(p.Task.Reward))
			TaskReward.Observe(float64(p.Task.Reward))
			if p.Task.TimerReset {
				TimerResets.Inc()
			}
		}

	case domain.EventTypeTaskRejected:
		TasksRejected.Inc()

	case domain.EventTypeQueueFull:
		QueueFull.Inc()

	case domain.EventTypeSceneChanged:
		var p event.SceneChangedPayloadV1
		if p, err = event.PayloadAs[event.SceneChangedPayloadV1](evt); err == nil && p.To == domain.SceneGame {
			GamesStarted.Inc()
		}

	case domain.EventTypeWalletChanged:
		var p event.WalletPayloadV1
		if p, err = event.PayloadAs[event.WalletPayloadV1](evt); err == nil {
			state := WalletDisconnected
			if p.Connected {
				state = WalletConnected
			}
			WalletChanges.WithLabelValues(state).Inc()
		}

	case domain.EventTypeSessionClosed:
		var p event.SessionClosedPayloadV1
		if p, err = event.PayloadAs[event.SessionClosedPayloadV1](evt); err == nil {
			SessionsClosed.WithLabelValues(p.Reason).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
