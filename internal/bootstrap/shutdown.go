package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/ritual"
	"github.com/osse101/MawRitual_Go/internal/scheduler"
	"github.com/osse101/MawRitual_Go/internal/server"
	"github.com/osse101/MawRitual_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Any field may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	RitualService      ritual.Service
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
}

type shutdownStep struct {
	name string
	run  func(ctx context.Context) error
}

// steps lists the shutdown order: stop taking actions, let a running
// background job finish, persist the final state, flush the publisher to
// its dead-letter file, close storage.
func (c ShutdownComponents) steps() []shutdownStep {
	var steps []shutdownStep
	if c.Server != nil {
		steps = append(steps, shutdownStep{"http server", c.Server.Stop})
	}
	if c.Scheduler != nil {
		steps = append(steps, shutdownStep{"scheduler", func(context.Context) error { c.Scheduler.Stop(); return nil }})
	}
	if c.WorkerPool != nil {
		steps = append(steps, shutdownStep{"worker pool", func(context.Context) error { c.WorkerPool.Stop(); return nil }})
	}
	if c.RitualService != nil {
		steps = append(steps, shutdownStep{"final snapshot", c.RitualService.SaveSnapshot})
	}
	if c.ResilientPublisher != nil {
		steps = append(steps, shutdownStep{"event publisher", c.ResilientPublisher.Shutdown})
	}
	if c.Repositories != nil {
		steps = append(steps, shutdownStep{"storage", func(context.Context) error { c.Repositories.Close(); return nil }})
	}
	return steps
}

// GracefulShutdown stops every component in order. A failing step is logged
// and the sequence continues.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)
	runShutdown(ctx, components.steps())
	slog.Info(LogMsgServerStopped)
}

func runShutdown(ctx context.Context, steps []shutdownStep) {
	for _, step := range steps {
		start := time.Now()
		if err := step.run(ctx); err != nil {
			slog.Error(LogMsgShutdownStepFailed, "step", step.name, "error", err)
			continue
		}
		slog.Debug(LogMsgShutdownStepDone, "step", step.name, "duration", time.Since(start))
	}
}
