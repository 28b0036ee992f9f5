package game

import (
	"time"

	"github.com/osse101/GibLife_Go/internal/domain"
)

// Presenter receives every change the Manager makes so the current state can
// be shown to the player. Calls happen on the goroutine driving the Manager
// and must not call back into it.
type Presenter interface {
	QueueChanged(queue []domain.AvailableTask)
	StatsChanged(player domain.PlayerState)
	Countdown(fraction float64, remaining time.Duration)
	MaxTasksReached()
	TaskGenerated(task domain.AvailableTask)
	TaskStarted(task domain.ActiveTask)
	TaskProgress(task domain.ActiveTask)
	TaskCompleted(done domain.CompletedTask)
	InsufficientEnergy(current, required int)
}

// NopPresenter discards every update
type NopPresenter struct{}

func (NopPresenter) QueueChanged([]domain.AvailableTask) {}
func (NopPresenter) StatsChanged(domain.PlayerState) {}
func (NopPresenter) Countdown(float64, time.Duration) {}
func (NopPresenter) MaxTasksReached() {}
func (NopPresenter) TaskGenerated(domain.AvailableTask) {}
func (NopPresenter) TaskStarted(domain.ActiveTask) {}
func (NopPresenter) TaskProgress(domain.ActiveTask) {}
func (NopPresenter) TaskCompleted(domain.CompletedTask) {}
func (NopPresenter) InsufficientEnergy(current, required int) {}
