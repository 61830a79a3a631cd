package postgres

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MawRitual_Go/internal/database"
	"github.com/osse101/MawRitual_Go/internal/testing/pgtest"
)

// testPool is migrated once in TestMain and nil when docker is unavailable
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var container *pgtest.Container
	if !testing.Short() {
		container = startDatabase(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if err := container.Terminate(context.Background()); err != nil {
		fmt.Printf("Failed to terminate container: %v\n", err)
	}
	os.Exit(code)
}

func startDatabase(ctx context.Context) *pgtest.Container {
	container, err := pgtest.Start(ctx)
	if err != nil {
		fmt.Printf("WARNING: %v\n", err)
		return nil
	}

	pool, err := database.NewPool(ctx, container.ConnString, 10, time.Minute, 5*time.Minute)
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return container
	}
	if _, err := database.Migrate(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return container
	}
	testPool = pool
	return container
}

// requireDB skips when no database is available and returns the pool with
// every ritual table emptied.
func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}

	_, err := testPool.Exec(context.Background(),
		`TRUNCATE balances, operator_approvals, mint_denylist, engine_state, ritual_events RESTART IDENTITY`)
	require.NoError(t, err)
	return testPool
}
