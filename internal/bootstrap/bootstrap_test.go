package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GibLife_Go/internal/config"
)

type recorder struct {
	calls []string
}

type stopFunc struct {
	name string
	rec  *recorder
	err  error
}

func (s stopFunc) Stop(context.Context) error {
	s.rec.calls = append(s.rec.calls, s.name)
	return s.err
}

type plainStop struct {
	name string
	rec  *recorder
}

func (s plainStop) Stop() { s.rec.calls = append(s.rec.calls, s.name) }

type serviceStop struct {
	rec *recorder
}

func (s serviceStop) Shutdown(context.Context) error {
	s.rec.calls = append(s.rec.calls, "sessions")
	return errors.New("timeout")
}

func TestGracefulShutdown_Order(t *testing.T) {
	rec := &recorder{}

	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:      stopFunc{name: "server", rec: rec, err: errors.New("forced")},
		Scheduler:   plainStop{name: "scheduler", rec: rec},
		Pool:        plainStop{name: "pool", rec: rec},
		StopWatcher: func() { rec.calls = append(rec.calls, "watcher") },
		Sessions:    serviceStop{rec: rec},
		Hub:         plainStop{name: "hub", rec: rec},
	})

	assert.Equal(t, []string{"server", "watcher", "scheduler", "pool", "sessions", "hub"}, rec.calls)
}

func TestGracefulShutdown_SkipsMissing(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

func TestLoadGameConfig(t *testing.T) {
	game, err := LoadGameConfig(&config.Config{})
	require.NoError(t, err)
	assert.Positive(t, game.Catalog.Current().Len())
	assert.NoError(t, game.Balance.Validate())

	_, err = LoadGameConfig(&config.Config{CatalogPath: "/does/not/exist.json"})
	assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)

	_, err = LoadGameConfig(&config.Config{BalancePath: "/does/not/exist.yaml"})
	assert.ErrorContains(t, err, ErrMsgFailedLoadBalance)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(&config.Config{
		Port:               0,
		APIKey:             "test",
		TickInterval:       10 * time.Millisecond,
		SessionTTL:         time.Minute,
		MaxSessions:        10,
		StatsInterval:      10 * time.Millisecond,
		WorkerCount:        1,
		CORSAllowedOrigins: []string{"*"},
	})
	require.NoError(t, err)

	_, err = app.sessions.Create(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, app.sessions.Count())
}
