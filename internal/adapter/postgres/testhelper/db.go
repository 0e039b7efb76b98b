// Package testhelper runs the dataset store in a throwaway PostgreSQL
// container for integration tests.
package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/cherokee-verbs/internal/adapter/postgres"
	"github.com/heartmarshall/cherokee-verbs/internal/config"
	"github.com/heartmarshall/cherokee-verbs/migrations"
)

const (
	dbUser     = "verbs"
	dbPassword = "verbs"
	dbName     = "verbs"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupTestDB returns a read-write pool on a migrated dataset store. The
// container is started once per test binary; each pool is closed on cleanup.
// Skipped in -short mode.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	return connect(t, postgres.WithApplicationName("testhelper"))
}

// SetupReadOnlyDB returns a pool configured like the server's: every
// transaction is read-only.
func SetupReadOnlyDB(t *testing.T) *pgxpool.Pool {
	return connect(t, postgres.WithApplicationName("testhelper-ro"), postgres.ReadOnly())
}

func connect(t *testing.T, opts ...postgres.PoolOption) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: dataset store tests skipped in -short mode")
	}

	once.Do(func() {
		sharedDSN, initErr = startDatasetStore()
	})
	if initErr != nil {
		t.Fatalf("testhelper: dataset store unavailable: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{DSN: sharedDSN, MaxConns: 4}, opts...)
	if err != nil {
		t.Fatalf("testhelper: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func startDatasetStore() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPassword,
				"POSTGRES_DB":       dbName,
			},
			// The entrypoint restarts the server once after init.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("resolve postgres endpoint: %w", err)
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", dbUser, dbPassword, endpoint, dbName)

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{DSN: dsn, MaxConns: 2})
	if err != nil {
		return "", err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if _, err := migrations.Up(ctx, db); err != nil {
		return "", fmt.Errorf("migrate dataset store: %w", err)
	}

	return dsn, nil
}
