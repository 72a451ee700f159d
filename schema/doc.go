// Package schema describes the entities a filter layer can filter over.
//
// An [Entity] declares the filterable fields and relations of one GraphQL
// type backed by a database table. Entities are collected in a [Registry],
// which is built once at startup, validated, and then read concurrently by
// the request path without synchronization.
//
// Registries can be assembled in code:
//
//	reg := schema.NewRegistry()
//	reg.MustAdd(&schema.Entity{
//	    Name:  "User",
//	    Table: "users",
//	    Fields: []*schema.Field{
//	        {Name: "name", Kind: schema.KindString},
//	        {Name: "age", Kind: schema.KindInt},
//	    },
//	    Relations: []*schema.Relation{
//	        {Name: "posts", Target: "Post", Columns: []string{"author_id"}, Inverse: true},
//	    },
//	})
//	reg.MustAdd(&schema.Entity{Name: "Post", Table: "posts"})
//	if err := reg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// or loaded from a YAML document with [LoadFile]. In development, [Watch]
// re-loads the document whenever it changes on disk.
package schema
