package dialect

import "context"

// Supported dialect names. The names double as database/sql driver names
// except for SQLite, which maps to whatever sqlite driver is registered.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// ExecQuerier wraps the database operations shared by drivers and
// transactions. The args parameter carries a []any and v the scan target,
// *sql.Result for Exec and *sql.Rows for Query.
type ExecQuerier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the minimal database abstraction the filter backends run
// queries through.
type Driver interface {
	ExecQuerier
	Tx(ctx context.Context) (Tx, error)
	Close() error
	Dialect() string
}

// Tx is a database transaction.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}
