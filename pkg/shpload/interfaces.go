package shpload

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connector is a unified interface for establishing database connections.
// Different implementations handle various authentication methods
// (standard credentials, cloud IAM tokens, the Cloud SQL connector).
type Connector interface {
	// Connect establishes a connection pool to the database.
	// The returned pool should be closed by the caller when done.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}

// DBConnection abstracts the database operations the load sequence needs.
// This decouples the load service from pgx-specific pool types so tests can
// substitute a recording fake.
type DBConnection interface {
	// Exec executes a statement (or a multi-statement script via the simple
	// protocol when no args are given) without returning rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Converter turns a shapefile into the SQL that creates and populates the
// target table. The production implementation shells out to shp2pgsql;
// tests substitute a canned script.
type Converter interface {
	// Convert runs the conversion for the given request and returns the
	// generated SQL. The utility's stderr is passed through to the operator;
	// a non-zero exit status is returned as an error wrapping the utility's
	// exit code.
	Convert(ctx context.Context, req *LoadRequest) ([]byte, error)
}
