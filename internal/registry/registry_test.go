package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfold/catalogd/internal/logging"
	"github.com/gridfold/catalogd/pkg/catalogd"
)

func TestRegistryStartsEmpty(t *testing.T) {
	reg := New(&fakeConnection{}, logging.NewNullLogger())
	assert.Empty(t, reg.Snapshot())
}

func TestLoadInstallsSnapshot(t *testing.T) {
	conn := &fakeConnection{rows: []fakeRow{
		{name: "elv", minZoom: 0, maxZoom: 10, priority: 5},
		{name: "low", minZoom: 12, maxZoom: 22, priority: 1},
	}}
	reg := New(conn, logging.NewNullLogger())

	require.NoError(t, reg.Load(context.Background()))

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, catalogd.SchemaZoomEntry{Name: "elv", MinZoom: 0, MaxZoom: 10, PrefetchPriority: 5}, snapshot[0])
	assert.Equal(t, "low", snapshot[1].Name)
}

func TestLoadSkipsInvertedZoomRanges(t *testing.T) {
	conn := &fakeConnection{rows: []fakeRow{
		{name: "broken", minZoom: 10, maxZoom: 5, priority: 9},
		{name: "ok", minZoom: 0, maxZoom: 22, priority: 1},
	}}
	reg := New(conn, logging.NewNullLogger())

	require.NoError(t, reg.Load(context.Background()))

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "ok", snapshot[0].Name)
}

func TestLoadQueryFailureDegradesToEmpty(t *testing.T) {
	conn := &fakeConnection{rows: []fakeRow{{name: "elv", maxZoom: 10}}}
	reg := New(conn, logging.NewNullLogger())
	require.NoError(t, reg.Load(context.Background()))
	require.NotEmpty(t, reg.Snapshot())

	// A later failed reload must not leave the stale snapshot visible.
	conn.queryErr = errors.New("connection lost")
	err := reg.Load(context.Background())
	assert.ErrorIs(t, err, catalogd.ErrDatabase)
	assert.Empty(t, reg.Snapshot())
}

func TestLoadScanFailureDegradesToEmpty(t *testing.T) {
	conn := &fakeConnection{
		rows:    []fakeRow{{name: "elv", maxZoom: 10}},
		scanErr: errors.New("type mismatch"),
	}
	reg := New(conn, logging.NewNullLogger())

	err := reg.Load(context.Background())
	assert.ErrorIs(t, err, catalogd.ErrDatabase)
	assert.Empty(t, reg.Snapshot())
}

func TestLoadRowsErrDegradesToEmpty(t *testing.T) {
	conn := &fakeConnection{
		rows:    []fakeRow{{name: "elv", maxZoom: 10}},
		rowsErr: errors.New("stream interrupted"),
	}
	reg := New(conn, logging.NewNullLogger())

	err := reg.Load(context.Background())
	assert.ErrorIs(t, err, catalogd.ErrDatabase)
	assert.Empty(t, reg.Snapshot())
}

func TestNewPanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { New(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { New(&fakeConnection{}, nil) })
}
