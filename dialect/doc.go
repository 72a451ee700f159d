// Package dialect abstracts over the SQL databases the filter backends
// compile predicates for.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// The dialect selects identifier quoting, placeholder style and feature
// availability: full text search predicates only compile for Postgres.
//
// # Driver Interface
//
// The Driver interface wraps query execution:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Usage
//
//	import (
//	    "github.com/syssam/gqlfilter/dialect"
//	    "github.com/syssam/gqlfilter/dialect/sql"
//	)
//
//	db, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// The dialect/sql sub-package holds the query builders and the SQL
// predicate backend.
package dialect
