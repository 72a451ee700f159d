// Package sql provides SQL query building and the SQL backend for filter
// compilation.
//
// # Builder Types
//
//   - Builder: low-level SQL string builder with identifier quoting
//   - Selector: SELECT query builder with joins, predicates and pagination
//   - Predicate: deferred WHERE clause fragment
//   - FilterBuilder: compiles filter expressions for one entity
//
// # Dialect Support
//
// SQL generation adapts to the dialect: identifier quoting, placeholder
// style ("$1" for Postgres, "?" elsewhere) and feature availability.
//
//	sql.Select("id", "name").
//	    Dialect(dialect.Postgres).
//	    From("users").
//	    Where(sql.EQ("status", "active"))
//
// # Predicates
//
//	sql.EQ("name", "john")                 // name = $1
//	sql.GT("age", 18)                      // age > $1
//	sql.Contains("name", "john")           // name LIKE $1
//	sql.IsNull("deleted_at")               // deleted_at IS NULL
//	sql.In("status", "active", "pending")  // status IN ($1, $2)
//
// # Filter Compilation
//
// FilterBuilder implements the gqlfilter.Builder interface over
// *Predicate. Relation hops become correlated EXISTS subqueries:
//
//	fb, err := sql.NewFilterBuilder(registry, "User", dialect.Postgres)
//	users, err := gqlfilter.Set(filters, "User", fb)
//	pred, err := users.Compile(args)
//	query, binds, err := sql.Select("*").
//	    Dialect(dialect.Postgres).
//	    From("users").
//	    Where(pred).
//	    Query()
//
// Full text search predicates (search, searchRank, trigram) compile for
// Postgres only; trigram lookups additionally require the pg_trgm
// extension, see TrigramSupported.
package sql
