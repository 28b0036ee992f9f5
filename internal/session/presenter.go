package session

import (
	"context"
	"time"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// busPresenter turns Manager callbacks into session-scoped events. It runs on
// the session goroutine. Countdown events are only published when the
// displayed second changes, and queue.full only on the transition to full.
type busPresenter struct {
	ctx       context.Context
	bus       event.Bus
	sessionID string
	capacity  int

	lastSeconds int
	full        bool
}

func newBusPresenter(ctx context.Context, bus event.Bus, sessionID string, capacity int) *busPresenter {
	return &busPresenter{
		ctx:         ctx,
		bus:         bus,
		sessionID:   sessionID,
		capacity:    capacity,
		lastSeconds: -1,
	}
}

func (p *busPresenter) publish(e event.Event) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(p.ctx, e); err != nil {
		logger.FromContext(p.ctx).Warn(LogMsgPublishFailed, "event_type", e.Type, "error", err)
	}
}

func (p *busPresenter) QueueChanged(queue []domain.AvailableTask) {
	p.publish(event.NewQueueUpdatedEvent(p.sessionID, queue, p.capacity))
}

func (p *busPresenter) StatsChanged(player domain.PlayerState) {
	p.publish(event.NewStatsUpdatedEvent(p.sessionID, player))
}

func (p *busPresenter) Countdown(fraction float64, remaining time.Duration) {
	p.full = false
	secs := ceilSeconds(remaining.Seconds())
	if secs == p.lastSeconds {
		return
	}
	p.lastSeconds = secs
	p.publish(event.NewCountdownEvent(p.sessionID, fraction, secs))
}

func (p *busPresenter) MaxTasksReached() {
	if p.full {
		return
	}
	p.full = true
	p.lastSeconds = -1
	p.publish(event.NewQueueFullEvent(p.sessionID, p.capacity))
}

func (p *busPresenter) TaskGenerated(task domain.AvailableTask) {
	p.publish(event.NewTaskGeneratedEvent(p.sessionID, task))
}

func (p *busPresenter) TaskStarted(task domain.ActiveTask) {
	p.publish(event.NewTaskStartedEvent(p.sessionID, task))
}

func (p *busPresenter) TaskProgress(task domain.ActiveTask) {
	p.publish(event.NewTaskProgressEvent(p.sessionID, task))
}

func (p *busPresenter) TaskCompleted(done domain.CompletedTask) {
	p.publish(event.NewTaskCompletedEvent(p.sessionID, done))
}

func (p *busPresenter) InsufficientEnergy(current, required int) {
	p.publish(event.NewTaskRejectedEvent(p.sessionID, current, required))
}
