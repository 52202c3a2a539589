package cli

import (
	"context"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// unavailableConnection stands in for the registry database when the
// connection could not be established at startup. Every operation fails
// with the original connection error, so registry loads keep degrading
// to an empty snapshot instead of crashing.
type unavailableConnection struct {
	err error
}

func (u unavailableConnection) Query(context.Context, string, ...any) (catalogd.Rows, error) {
	return nil, u.err
}

func (u unavailableConnection) QueryRow(context.Context, string, ...any) catalogd.Row {
	return unavailableRow{err: u.err}
}

func (u unavailableConnection) Ping(context.Context) error { return u.err }

func (u unavailableConnection) Close() {}

type unavailableRow struct {
	err error
}

func (r unavailableRow) Scan(...any) error { return r.err }

var _ catalogd.DBConnection = unavailableConnection{}
