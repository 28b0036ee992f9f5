package bootstrap

import (
	"context"
	"log/slog"
)

// Stopper is implemented by the HTTP server
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server      Stopper
	Scheduler   interface{ Stop() }
	Pool        interface{ Stop() }
	StopWatcher context.CancelFunc
	Sessions    shutdownableService
	Hub         interface{ Stop() }
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Background jobs and the catalog watcher
// 3. Sessions (each publishes its session.closed event)
// 4. Stream hub, after the closing events have been fanned out
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgStoppingBackground)
	if components.StopWatcher != nil {
		components.StopWatcher()
	}
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.Pool != nil {
		components.Pool.Stop()
	}

	if components.Sessions != nil {
		shutdownService(ctx, ServiceNameSession, components.Sessions)
	}

	if components.Hub != nil {
		slog.Info(LogMsgClosingStreams)
		components.Hub.Stop()
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
