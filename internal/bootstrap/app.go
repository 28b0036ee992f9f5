package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/scheduler"
	"github.com/osse101/GibLife_Go/internal/server"
	"github.com/osse101/GibLife_Go/internal/session"
	"github.com/osse101/GibLife_Go/internal/sse"
	"github.com/osse101/GibLife_Go/internal/transport/ws"
	"github.com/osse101/GibLife_Go/internal/worker"
)

// App is the assembled GibLife server
type App struct {
	cfg       *config.Config
	catalog   *catalog.Provider
	sessions  session.Service
	hub       *sse.Hub
	pool      *worker.Pool
	scheduler *scheduler.Scheduler
	server    *server.Server
}

// NewApp wires every component from the config. Nothing runs until Run.
func NewApp(cfg *config.Config) (*App, error) {
	game, err := LoadGameConfig(cfg)
	if err != nil {
		return nil, err
	}

	hub := sse.NewHub()
	bus, err := InitializeEventSystem(hub)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewService(session.ServiceConfig{
		Balance:      game.Balance,
		Catalog:      game.Catalog,
		Bus:          bus,
		TickInterval: cfg.TickInterval,
		MaxSessions:  cfg.MaxSessions,
		TTL:          cfg.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartService, err)
	}

	pool := worker.NewPool(cfg.WorkerCount, PoolQueueSize)
	sched := scheduler.New(pool)
	sched.Schedule(cfg.StatsInterval, worker.NewSessionStatsJob(sessions, hub))

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Sessions:       sessions,
		Catalog:        game.Catalog,
		Hub:            hub,
		WS:             ws.NewServer(sessions, hub, cfg.CORSAllowedOrigins),
	})

	return &App{
		cfg:       cfg,
		catalog:   game.Catalog,
		sessions:  sessions,
		hub:       hub,
		pool:      pool,
		scheduler: sched,
		server:    srv,
	}, nil
}

// Run serves until ctx is cancelled or the listener fails, then shuts every
// component down.
func (a *App) Run(ctx context.Context) error {
	a.hub.Start()
	a.pool.Start()
	a.scheduler.Start()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if a.cfg.WatchCatalog && a.catalog.Path() != "" {
		slog.Info(LogMsgWatchingCatalog, "path", a.catalog.Path())
		go func() {
			if err := catalog.Watch(watchCtx, a.catalog); err != nil {
				slog.Error(LogMsgCatalogWatchFailed, "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		slog.Error(LogMsgServerFailed, "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	GracefulShutdown(shutdownCtx, ShutdownComponents{
		Server:      a.server,
		Scheduler:   a.scheduler,
		Pool:        a.pool,
		StopWatcher: stopWatch,
		Sessions:    a.sessions,
		Hub:         a.hub,
	})
	return runErr
}
