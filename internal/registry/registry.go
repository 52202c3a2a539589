// Package registry holds the schema zoom-range records loaded from the
// relational store.
//
// The registry is read-mostly: request handling only reads snapshots, and
// a reload replaces the whole snapshot atomically. Readers never observe a
// partially applied reload.
package registry

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// Registry owns the current schema zoom-range snapshot.
type Registry struct {
	conn catalogd.DBConnection
	log  catalogd.Logger

	// snapshot is replaced wholesale by Load; entries are immutable.
	snapshot atomic.Pointer[[]catalogd.SchemaZoomEntry]
}

// New creates a Registry reading from conn. The registry starts empty;
// call Load to populate it. Panics if conn or log is nil.
func New(conn catalogd.DBConnection, log catalogd.Logger) *Registry {
	if conn == nil {
		panic("conn cannot be nil")
	}
	if log == nil {
		panic("log cannot be nil")
	}

	r := &Registry{conn: conn, log: log}
	empty := make([]catalogd.SchemaZoomEntry, 0)
	r.snapshot.Store(&empty)
	return r
}

// Load queries the schema zoom ranges and installs a new snapshot,
// ordered by prefetch priority descending. On failure the registry
// degrades to an empty snapshot and the error is returned wrapped in
// catalogd.ErrDatabase; the process keeps running and only the "public"
// schema passes subsequent zoom filters.
func (r *Registry) Load(ctx context.Context) error {
	rows, err := r.conn.Query(ctx, querySchemaZoomRanges)
	if err != nil {
		r.degrade(err)
		return fmt.Errorf("%w: %v", catalogd.ErrDatabase, err)
	}
	defer rows.Close()

	entries := make([]catalogd.SchemaZoomEntry, 0, 16)
	for rows.Next() {
		var e catalogd.SchemaZoomEntry
		if err := rows.Scan(&e.Name, &e.MinZoom, &e.MaxZoom, &e.PrefetchPriority); err != nil {
			r.degrade(err)
			return fmt.Errorf("%w: %v", catalogd.ErrDatabase, err)
		}
		if e.MinZoom > e.MaxZoom {
			r.log.Error("registry: schema %q has inverted zoom range [%v, %v], skipping", e.Name, e.MinZoom, e.MaxZoom)
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		r.degrade(err)
		return fmt.Errorf("%w: %v", catalogd.ErrDatabase, err)
	}

	r.snapshot.Store(&entries)
	r.log.Info("registry: loaded %d schema zoom ranges", len(entries))
	return nil
}

// degrade installs an empty snapshot after a failed load so stale data
// from a previous load is not served alongside the error.
func (r *Registry) degrade(err error) {
	empty := make([]catalogd.SchemaZoomEntry, 0)
	r.snapshot.Store(&empty)
	r.log.Error("registry: load failed, degrading to empty snapshot: %v", err)
}

// Snapshot returns the current entries, priority descending. The returned
// slice is shared and must be treated as read-only.
func (r *Registry) Snapshot() []catalogd.SchemaZoomEntry {
	return *r.snapshot.Load()
}
