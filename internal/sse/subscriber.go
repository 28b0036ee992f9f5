package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the bridge for every game event type
func (s *Subscriber) Subscribe() {
	event.SubscribeAll(s.bus, event.AllTypes, s.handle)

	types := make([]string, 0, len(event.AllTypes))
	for _, t := range event.AllTypes {
		types = append(types, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", types)
}

func (s *Subscriber) handle(ctx context.Context, evt event.Event) error {
	ok := s.hub.Broadcast(Event{
		Type:      string(evt.Type),
		SessionID: evt.SessionID,
		Timestamp: evt.Timestamp.Unix(),
		Payload:   evt.Payload,
	})
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgEventDropped, "event_type", evt.Type)
		return nil
	}

	if evt.Type != event.TaskProgress && evt.Type != event.Countdown {
		logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	}
	return nil
}
