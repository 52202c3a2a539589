package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfold/catalogd/internal/db"
	"github.com/gridfold/catalogd/internal/logging"
	"github.com/gridfold/catalogd/internal/registry"
	"github.com/gridfold/catalogd/internal/testinfra"
)

func TestLoadFromPostgres(t *testing.T) {
	connString := testinfra.RequireDatabase(t)
	pool := testinfra.GetTestPool(t, connString)

	testinfra.SeedSchemaRegistry(t, pool, [][4]any{
		{"elv", 0.0, 10.0, 5},
		{"mid", 8.0, 14.0, 9},
		{"low", 12.0, 22.0, 1},
	})

	reg := registry.New(db.NewPoolAdapter(pool), logging.NewNullLogger())
	require.NoError(t, reg.Load(context.Background()))

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 3)

	// Ordered by prefetch priority descending.
	assert.Equal(t, "mid", snapshot[0].Name)
	assert.Equal(t, "elv", snapshot[1].Name)
	assert.Equal(t, "low", snapshot[2].Name)

	assert.Equal(t, 8.0, snapshot[0].MinZoom)
	assert.Equal(t, 14.0, snapshot[0].MaxZoom)
}

func TestReloadReplacesSnapshot(t *testing.T) {
	connString := testinfra.RequireDatabase(t)
	pool := testinfra.GetTestPool(t, connString)

	testinfra.SeedSchemaRegistry(t, pool, [][4]any{{"first", 0.0, 10.0, 1}})

	reg := registry.New(db.NewPoolAdapter(pool), logging.NewNullLogger())
	require.NoError(t, reg.Load(context.Background()))
	require.Len(t, reg.Snapshot(), 1)

	testinfra.SeedSchemaRegistry(t, pool, [][4]any{
		{"second", 0.0, 22.0, 1},
		{"third", 5.0, 9.0, 2},
	})
	require.NoError(t, reg.Load(context.Background()))

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "third", snapshot[0].Name)
	assert.Equal(t, "second", snapshot[1].Name)
}
