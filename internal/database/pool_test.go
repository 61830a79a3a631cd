package database

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MawRitual_Go/internal/testing/leaktest"
	"github.com/osse101/MawRitual_Go/internal/testing/pgtest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var container *pgtest.Container
	if !testing.Short() {
		var err error
		container, err = pgtest.Start(context.Background())
		if err != nil {
			fmt.Printf("WARNING: %v\n", err)
		} else {
			testDBConnString = container.ConnString
		}
	}

	code := m.Run()

	if err := container.Terminate(context.Background()); err != nil {
		fmt.Printf("Failed to terminate container: %v\n", err)
	}
	os.Exit(code)
}

func newTestPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := NewPool(context.Background(), testDBConnString, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", 5, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestNewPool_AppliesLimits(t *testing.T) {
	pool := newTestPool(t, 4)

	cfg := pool.Config()
	assert.Equal(t, int32(4), cfg.MaxConns)
	assert.Equal(t, int32(DefaultMinConnections), cfg.MinConns)
	assert.Equal(t, time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)
}

func TestPool_MaxConnsEnforced(t *testing.T) {
	const maxConns = 3
	pool := newTestPool(t, maxConns)
	ctx := context.Background()

	var held []*pgxpool.Conn
	for i := 0; i < maxConns; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err)
		held = append(held, conn)
	}
	assert.Equal(t, int32(maxConns), pool.Stat().AcquiredConns())

	short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err := pool.Acquire(short)
	assert.Error(t, err, "acquire must fail while the pool is exhausted")

	held[0].Release()
	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	conn.Release()

	for _, c := range held[1:] {
		c.Release()
	}
	assert.Zero(t, pool.Stat().AcquiredConns())
}

func TestMigrate(t *testing.T) {
	pool := newTestPool(t, 5)
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	version, err := Migrate(ctx, log, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	again, err := Migrate(ctx, log, pool)
	require.NoError(t, err)
	assert.Equal(t, version, again, "second run is a no-op")

	for _, table := range []string{"balances", "operator_approvals", "mint_denylist", "engine_state", "ritual_events"} {
		var exists bool
		require.NoError(t, pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists))
		assert.True(t, exists, "table %s", table)
	}
}

func TestPool_ConcurrentAccess(t *testing.T) {
	pool := newTestPool(t, 10)
	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var got int
			if err := pool.QueryRow(context.Background(), "SELECT $1::int", id).Scan(&got); err != nil {
				t.Errorf("worker %d: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Zero(t, pool.Stat().AcquiredConns())
	// pgxpool keeps a health check goroutine per pool
	checker.Check(2)
}
