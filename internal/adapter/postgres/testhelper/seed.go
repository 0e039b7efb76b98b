package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueName returns a dataset file name that does not collide with other
// tests sharing the container.
func UniqueName(base string) string {
	return uuid.New().String()[:8] + "-" + base
}

// SeedSource stores one dataset file directly, bypassing the repository.
func SeedSource(t *testing.T, pool *pgxpool.Pool, name string, content []byte) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO dataset_sources (name, content, content_type, updated_at)
		 VALUES ($1, $2, 'application/octet-stream', now())
		 ON CONFLICT (name) DO UPDATE SET content = EXCLUDED.content`,
		name, content,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSource %s: %v", name, err)
	}
}
