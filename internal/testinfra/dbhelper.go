package testinfra

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		// testcontainers panics (rather than returning an error) when no
		// Docker host can be found; convert that into an error so the
		// documented skip path in GetTestConnectionString still works.
		defer func() {
			if r := recover(); r != nil {
				testContainerErr = fmt.Errorf("start postgres container: %v", r)
			}
		}()
		ctx := context.Background()
		container, err := StartPostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: CATALOGD_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("CATALOGD_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("CATALOGD_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// GetTestPool creates a connection pool for testing. The pool is closed
// automatically when the test completes.
func GetTestPool(t *testing.T, connString string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// SeedSchemaRegistry creates the map_schemas table and fills it with the
// given rows, replacing whatever a previous test left behind.
func SeedSchemaRegistry(t *testing.T, pool *pgxpool.Pool, rows [][4]any) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS map_schemas (
			schema_name text PRIMARY KEY,
			min_zoom double precision NOT NULL,
			max_zoom double precision NOT NULL,
			prefetch_priority integer NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create map_schemas: %v", err)
	}

	if _, err := pool.Exec(ctx, "TRUNCATE map_schemas"); err != nil {
		t.Fatalf("Failed to truncate map_schemas: %v", err)
	}

	for _, row := range rows {
		_, err := pool.Exec(ctx,
			"INSERT INTO map_schemas (schema_name, min_zoom, max_zoom, prefetch_priority) VALUES ($1, $2, $3, $4)",
			row[0], row[1], row[2], row[3])
		if err != nil {
			t.Fatalf("Failed to seed map_schemas: %v", err)
		}
	}
}
