// Package pgtest starts a throwaway PostgreSQL container for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	Image          = "postgres:15-alpine"
	Database       = "mawritual_test"
	User           = "testuser"
	Password       = "testpass"
	StartupTimeout = 30 * time.Second
)

// Container is a running postgres instance
type Container struct {
	ConnString string
	pg         *postgres.PostgresContainer
}

// Start runs a postgres container and waits until it accepts connections.
// A panic inside testcontainers (no docker socket, for example) is returned as
// an error so callers can skip instead of crashing the test binary.
func Start(ctx context.Context) (c *Container, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start postgres container: %v", r)
		}
	}()

	pg, err := postgres.Run(ctx, Image,
		postgres.WithDatabase(Database),
		postgres.WithUsername(User),
		postgres.WithPassword(Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(StartupTimeout)),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	conn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}
	return &Container{ConnString: conn, pg: pg}, nil
}

// Terminate stops the container. It is safe on a nil Container.
func (c *Container) Terminate(ctx context.Context) error {
	if c == nil || c.pg == nil {
		return nil
	}
	return c.pg.Terminate(ctx)
}
