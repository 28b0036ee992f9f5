package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/metrics"
	"github.com/osse101/GibLife_Go/internal/session"
)

type fakeLister struct {
	infos []session.Info
	err   error
}

func (f fakeLister) List(context.Context) ([]session.Info, error) { return f.infos, f.err }

type fakeStreams struct {
	clients int
	dropped uint64
}

func (f fakeStreams) ClientCount() int { return f.clients }
func (f fakeStreams) Dropped() uint64  { return f.dropped }

func TestSessionStatsJob_Process(t *testing.T) {
	job := NewSessionStatsJob(fakeLister{infos: []session.Info{
		{ID: "a", Scene: domain.SceneMenu},
		{ID: "b", Scene: domain.SceneGame, Work: 150},
		{ID: "c", Scene: domain.SceneGame, Work: 50},
	}}, fakeStreams{clients: 4, dropped: 7})

	stats, err := job.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SessionStats{Active: 3, InGame: 2, Clients: 4, Dropped: 7, WorkEarned: 200}, stats)

	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.ActiveSessions))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SessionsInGame))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.SSEClients))
	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.SSEEventsDropped))
}

func TestSessionStatsJob_NoStreams(t *testing.T) {
	job := NewSessionStatsJob(fakeLister{}, nil)

	stats, err := job.Collect(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats)
}

func TestSessionStatsJob_ListError(t *testing.T) {
	job := NewSessionStatsJob(fakeLister{err: errors.New("shutting down")}, nil)

	err := job.Process(context.Background())
	assert.ErrorContains(t, err, "shutting down")
}
