package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/MawRitual_Go/internal/bootstrap"
	"github.com/osse101/MawRitual_Go/internal/config"
	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/eventlog"
	"github.com/osse101/MawRitual_Go/internal/ritual"
	"github.com/osse101/MawRitual_Go/internal/scheduler"
	"github.com/osse101/MawRitual_Go/internal/server"
	"github.com/osse101/MawRitual_Go/internal/worker"
)

const (
	shutdownTimeout  = 30 * time.Second
	backgroundPoolSz = 2
	backgroundQueue  = 8
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load reads .env first, so validation runs after it
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	for _, w := range warnings {
		slog.Warn("Environment warning", "detail", w)
	}

	ctx := context.Background()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	eventlogService := eventlog.NewService(repos.EventLog)
	if err := bootstrap.RegisterEventHandlers(ctx, bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		EventLogService: eventlogService,
		Publisher:       publisher,
	}); err != nil {
		repos.Close()
		return err
	}

	if cfg.LedgerSeedPath != "" {
		seed, err := bootstrap.LoadLedgerSeed(cfg.LedgerSeedPath)
		if err != nil {
			repos.Close()
			return err
		}
		if err := bootstrap.SeedLedger(ctx, repos.Ledger, seed, domain.Actor(cfg.OperatorID)); err != nil {
			repos.Close()
			return err
		}
	}

	ritualService, err := bootstrap.InitializeRitualEngine(ctx, cfg, repos, publisher)
	if err != nil {
		repos.Close()
		return err
	}

	pool := worker.NewPool(backgroundPoolSz, backgroundQueue)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cfg.SnapshotInterval, ritual.NewSnapshotJob(ritualService))
	sched.Schedule(cfg.EventCleanupInterval, eventlog.NewCleanupJob(eventlogService, cfg.EventLogRetentionDays))

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
	}, repos.Pool(), ritualService, eventlogService)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		RitualService:      ritualService,
		ResilientPublisher: publisher,
		Repositories:       repos,
	})

	return runErr
}
