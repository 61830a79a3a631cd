package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MawRitual_Go/internal/config"
	"github.com/osse101/MawRitual_Go/internal/database"
	"github.com/osse101/MawRitual_Go/internal/database/postgres"
	"github.com/osse101/MawRitual_Go/internal/eventlog"
	"github.com/osse101/MawRitual_Go/internal/ledger"
	"github.com/osse101/MawRitual_Go/internal/repository"
)

// Repositories holds the storage the ritual engine runs against.
// DBPool is nil for the memory backend.
type Repositories struct {
	Ledger     repository.Ledger
	StateStore repository.StateStore
	EventLog   eventlog.Repository
	DBPool     *pgxpool.Pool
}

// Pool returns the database pool for health checks, or an untyped nil when
// no database is configured.
func (r *Repositories) Pool() database.Pool {
	if r.DBPool == nil {
		return nil
	}
	return r.DBPool
}

// Close releases the database pool, if any.
func (r *Repositories) Close() {
	if r.DBPool != nil {
		r.DBPool.Close()
	}
}

// InitializeRepositories builds the storage selected by STORAGE_BACKEND.
// The Postgres backend connects, runs the embedded migrations and wires the
// ledger, state store and event log to the same pool.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return initializeMemory(cfg)
	case config.StoragePostgres:
		return initializePostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf(ErrMsgUnknownBackend, cfg.StorageBackend)
	}
}

func initializeMemory(cfg *config.Config) (*Repositories, error) {
	if cfg.SnapshotPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.SnapshotPath), DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateSnapshotDir, err)
		}
	}

	slog.Info(LogMsgMemoryBackendSelected, "snapshot_path", cfg.SnapshotPath)
	return &Repositories{
		Ledger:     ledger.NewMemory(),
		StateStore: ledger.NewSnapshotStore(cfg.SnapshotPath),
		EventLog:   eventlog.NewMemoryRepository(MemoryEventLogCapacity),
	}, nil
}

func initializePostgres(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	if _, err := database.Migrate(ctx, slog.Default(), pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDatabase, err)
	}

	slog.Info(LogMsgPostgresBackendSelected, "db_host", cfg.DBHost, "db_name", cfg.DBName)
	return &Repositories{
		Ledger:     postgres.NewLedger(pool),
		StateStore: postgres.NewStateStore(pool),
		EventLog:   postgres.NewEventLogRepository(pool),
		DBPool:     pool,
	}, nil
}
