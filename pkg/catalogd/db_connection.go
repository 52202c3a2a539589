package catalogd

import "context"

// DBConnection abstracts the database operations the schema registry needs.
// This interface decouples the public API from pgx-specific types.
//
// Thread-Safety: implementations should follow their underlying
// connection's guarantees. Pool-backed implementations are safe for
// concurrent use.
type DBConnection interface {
	// Query executes a query returning any number of rows.
	// The caller must close the returned Rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Always returns a non-nil Row; errors are deferred until Scan.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error

	// Close releases the underlying pool.
	Close()
}

// Rows represents an iterable query result. This interface decouples from
// pgx.Rows.
type Rows interface {
	// Next advances to the next row, returning false when exhausted.
	Next() bool

	// Scan reads the current row into dest values.
	Scan(dest ...any) error

	// Err returns any error encountered during iteration.
	Err() error

	// Close releases the result set.
	Close()
}

// Row represents a single row returned by QueryRow.
type Row interface {
	// Scan reads the values from the row into dest values.
	// Returns an error if no row was found or if the scan fails.
	Scan(dest ...any) error
}
