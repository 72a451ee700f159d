// Package graphql generates the GraphQL surface of a filter registry:
// one filter input type per entity, the shared lookup inputs they
// reference, and Go model bindings for gqlgen.
//
// A Generator is built from the same registry and options the runtime
// filters use, so the generated shapes and the parser grammar always
// agree:
//
//	gen, err := graphql.NewGenerator(registry)
//	if err != nil {
//		log.Fatal(err)
//	}
//	sdl := gen.SDL()
//
// The Writer emits the SDL and the jennifer-rendered Go models to
// disk, and InjectFilterBindings wires the generated types into an
// existing gqlgen.yml:
//
//	w := graphql.NewWriter(gen, "graph", "graph")
//	if err := w.Generate(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// At request time, FilterMap converts a bound model back into the map
// form gqlfilter.Filters.Parse consumes.
package graphql
