package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridfold/catalogd/pkg/catalogd"
)

// PoolAdapter adapts *pgxpool.Pool to the catalogd.DBConnection interface,
// keeping pgx-specific types out of the public API.
//
// Thread-Safety: safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter creates a new PoolAdapter wrapping the given pool.
func NewPoolAdapter(pool *pgxpool.Pool) catalogd.DBConnection {
	return &PoolAdapter{pool: pool}
}

// Query executes a query returning any number of rows.
func (p *PoolAdapter) Query(ctx context.Context, sql string, args ...any) (catalogd.Rows, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &rowsAdapter{rows: rows}, nil
}

// QueryRow executes a query that is expected to return at most one row.
func (p *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) catalogd.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// Ping verifies the pool can reach the database.
func (p *PoolAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the underlying pool.
func (p *PoolAdapter) Close() {
	p.pool.Close()
}

// rowsAdapter adapts pgx.Rows to catalogd.Rows.
type rowsAdapter struct {
	rows pgx.Rows
}

func (r *rowsAdapter) Next() bool             { return r.rows.Next() }
func (r *rowsAdapter) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *rowsAdapter) Err() error             { return r.rows.Err() }
func (r *rowsAdapter) Close()                 { r.rows.Close() }

// Verify PoolAdapter implements DBConnection at compile time.
var _ catalogd.DBConnection = (*PoolAdapter)(nil)
