package registry

import (
	"context"
	"errors"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// fakeRow is one map_schemas row for the fake connection.
type fakeRow struct {
	name             string
	minZoom, maxZoom float64
	priority         int
}

// fakeConnection serves canned rows or a canned error.
type fakeConnection struct {
	rows     []fakeRow
	queryErr error
	scanErr  error
	rowsErr  error
}

func (c *fakeConnection) Query(ctx context.Context, sql string, args ...any) (catalogd.Rows, error) {
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return &fakeRows{rows: c.rows, scanErr: c.scanErr, rowsErr: c.rowsErr}, nil
}

func (c *fakeConnection) QueryRow(ctx context.Context, sql string, args ...any) catalogd.Row {
	panic("not used")
}

func (c *fakeConnection) Ping(ctx context.Context) error { return c.queryErr }
func (c *fakeConnection) Close()                         {}

type fakeRows struct {
	rows    []fakeRow
	idx     int
	scanErr error
	rowsErr error
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	if len(dest) != 4 {
		return errors.New("expected 4 scan targets")
	}
	row := r.rows[r.idx-1]
	*dest[0].(*string) = row.name
	*dest[1].(*float64) = row.minZoom
	*dest[2].(*float64) = row.maxZoom
	*dest[3].(*int) = row.priority
	return nil
}

func (r *fakeRows) Err() error { return r.rowsErr }
func (r *fakeRows) Close()     { r.closed = true }
