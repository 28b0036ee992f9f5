package worker

import (
	"context"
	"fmt"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/logger"
	"github.com/osse101/GibLife_Go/internal/metrics"
	"github.com/osse101/GibLife_Go/internal/session"
)

// SessionLister lists live sessions
type SessionLister interface {
	List(ctx context.Context) ([]session.Info, error)
}

// StreamStats reports connected stream clients
type StreamStats interface {
	ClientCount() int
	Dropped() uint64
}

// SessionStats is a point-in-time snapshot of the running game
type SessionStats struct {
	Active     int
	InGame     int
	Clients    int
	Dropped    uint64
	WorkEarned int
}

// SessionStatsJob refreshes the session and stream gauges
type SessionStatsJob struct {
	sessions SessionLister
	streams  StreamStats
}

// NewSessionStatsJob creates the job. streams may be nil.
func NewSessionStatsJob(sessions SessionLister, streams StreamStats) *SessionStatsJob {
	return &SessionStatsJob{sessions: sessions, streams: streams}
}

// Collect gathers the snapshot without touching metrics
func (j *SessionStatsJob) Collect(ctx context.Context) (SessionStats, error) {
	infos, err := j.sessions.List(ctx)
	if err != nil {
		return SessionStats{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	stats := SessionStats{Active: len(infos)}
	for _, info := range infos {
		if info.Scene == domain.SceneGame {
			stats.InGame++
		}
		stats.WorkEarned += info.Work
	}
	if j.streams != nil {
		stats.Clients = j.streams.ClientCount()
		stats.Dropped = j.streams.Dropped()
	}
	return stats, nil
}

// Process implements Job
func (j *SessionStatsJob) Process(ctx context.Context) error {
	stats, err := j.Collect(ctx)
	if err != nil {
		return err
	}

	metrics.ActiveSessions.Set(float64(stats.Active))
	metrics.SessionsInGame.Set(float64(stats.InGame))
	metrics.SSEClients.Set(float64(stats.Clients))
	metrics.SSEEventsDropped.Set(float64(stats.Dropped))

	logger.FromContext(ctx).Debug(LogMsgStatsCollected,
		"active", stats.Active,
		"in_game", stats.InGame,
		"clients", stats.Clients,
		"dropped", stats.Dropped,
		"work_in_play", stats.WorkEarned)
	return nil
}
