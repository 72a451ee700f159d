// Package gqlfilter turns GraphQL filter arguments into backend query
// predicates.
//
// A filter argument is a recursive input object: plain keys address
// entity fields, lookup objects select comparison operators, and the
// reserved and/or/not keys combine sub-filters.
//
//	{
//	  "and": [
//	    {"age__gt": 18},
//	    {"or": [{"city": "NYC"}, {"city": "LA"}]}
//	  ]
//	}
//
// # Schema
//
// Entities, their fields and their relations are described by a
// [schema.Registry]. The registry is the only source of truth during
// parsing: unknown names fail with ErrSchemaMismatch, relations marked
// excluded fail with ErrForbiddenRelation.
//
// # Compilation
//
// A [FilterSet] binds one entity to a [Builder], the backend adapter
// that assembles predicates:
//
//	filters := gqlfilter.MustNew(registry)
//	users, err := gqlfilter.Set(filters, "User", sql.NewFilterBuilder(registry, dialect.Postgres))
//	if err != nil {
//		log.Fatal(err)
//	}
//	pred, err := users.Compile(args)
//
// Parsing, normalization and translation are deterministic: the same
// input always compiles to the same predicate. An empty filter compiles
// to the zero predicate, which backends treat as unconstrained.
package gqlfilter
