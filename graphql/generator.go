package graphql

import (
	"fmt"
	"regexp"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gqlfilter"
	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// graphqlName validates GraphQL type, field and enum value names.
var graphqlName = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// Generator builds the GraphQL input types for the entities of a
// registry: one filter input per entity plus the shared lookup inputs
// they reference. Generation happens at schema build time; conflicts are
// startup errors, never request errors.
type Generator struct {
	reg *schema.Registry
	cfg gqlfilter.Config
}

// NewGenerator returns a generator over reg. The options must match the
// ones the filters are parsed with, so the generated shapes and the
// runtime grammar agree.
func NewGenerator(reg *schema.Registry, opts ...gqlfilter.Option) (*Generator, error) {
	if err := reg.Validate(); err != nil {
		return nil, &gqlfilter.GenerationError{Err: err}
	}
	cfg := gqlfilter.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	g := &Generator{reg: reg, cfg: cfg}
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}

// check rejects entities whose names cannot appear in a GraphQL schema
// or collide with the connective keys. All violations are collected so
// one startup failure reports the whole registry.
func (g *Generator) check() error {
	var errs []error
	fail := func(entity, format string, args ...any) {
		errs = append(errs, &gqlfilter.GenerationError{Entity: entity, Err: fmt.Errorf(format, args...)})
	}
	for _, e := range g.reg.Entities() {
		if !graphqlName.MatchString(e.Name) {
			fail(e.Name, "entity name %q is not a valid GraphQL name", e.Name)
		}
		for _, f := range e.Fields {
			if !graphqlName.MatchString(f.Name) {
				fail(e.Name, "field name %q is not a valid GraphQL name", f.Name)
			}
			if g.reserved(f.Name) {
				fail(e.Name, "field %q collides with a connective key", f.Name)
			}
			for _, v := range f.Values {
				if !graphqlName.MatchString(v) {
					fail(e.Name, "enum value %q of %q is not a valid GraphQL name", v, f.Name)
				}
			}
		}
		for _, r := range e.Relations {
			if !graphqlName.MatchString(r.Name) {
				fail(e.Name, "relation name %q is not a valid GraphQL name", r.Name)
			}
			if g.reserved(r.Name) {
				fail(e.Name, "relation %q collides with a connective key", r.Name)
			}
		}
	}
	return gqlfilter.NewAggregateError(errs...)
}

func (g *Generator) reserved(name string) bool {
	return name == g.cfg.AndKey || name == g.cfg.OrKey || name == g.cfg.NotKey
}

// Names returns the generated type names for every entity, in
// registration order.
func (g *Generator) Names() []*FilterNames {
	entities := g.reg.Entities()
	names := make([]*FilterNames, len(entities))
	for i, e := range entities {
		names[i] = filterNames(e.Name)
	}
	return names
}

// Definitions returns all generated type definitions: the Time scalar,
// the shared lookup inputs, the search inputs and one filter input per
// entity. The search input family is only emitted when the registry
// has a searchable field. The order is deterministic.
func (g *Generator) Definitions() []*ast.Definition {
	defs := []*ast.Definition{
		{Kind: ast.Scalar, Name: "Time", Description: "An RFC3339 timestamp."},
	}
	defs = append(defs, g.lookupInputs()...)
	if g.searchable() {
		defs = append(defs, g.searchInputs()...)
	}
	for _, e := range g.reg.Entities() {
		for _, f := range e.Fields {
			if f.Kind == schema.KindEnum {
				defs = append(defs, g.enumDefs(e, f)...)
			}
		}
		defs = append(defs, g.filterInput(e))
	}
	return defs
}

// SchemaDocument wraps the definitions in a schema document for
// rendering or merging.
func (g *Generator) SchemaDocument() *ast.SchemaDocument {
	return &ast.SchemaDocument{Definitions: g.Definitions()}
}

// searchable reports whether any entity carries a searchable field.
func (g *Generator) searchable() bool {
	for _, e := range g.reg.Entities() {
		if len(e.SearchableFields()) > 0 {
			return true
		}
	}
	return false
}

// lookupInputs builds the shared per-scalar lookup inputs. The
// searchable string variant only exists when a field can use it.
func (g *Generator) lookupInputs() []*ast.Definition {
	defs := []*ast.Definition{
		inputDef(StringLookupInput, "Lookups on String fields.",
			scalarLookups("String", true, true)...),
	}
	if g.searchable() {
		search := []*ast.FieldDefinition{
			fieldDef(string(filter.OpSearch), SearchQueryInput, lookupDescription(filter.OpSearch)),
			fieldDef(string(filter.OpSearchRank), SearchRankInput, lookupDescription(filter.OpSearchRank)),
			fieldDef(string(filter.OpTrigram), TrigramInput, lookupDescription(filter.OpTrigram)),
		}
		defs = append(defs, inputDef(SearchableLookupInput, "Lookups on searchable String fields.",
			append(scalarLookups("String", true, true), search...)...))
	}
	return append(defs,
		inputDef(IntLookupInput, "Lookups on Int fields.",
			scalarLookups("Int", true, false)...),
		inputDef(FloatLookupInput, "Lookups on Float fields.",
			scalarLookups("Float", true, false)...),
		inputDef(BooleanLookupInput, "Lookups on Boolean fields.",
			fieldDef("eq", "Boolean", lookupDescription(filter.OpEQ)),
			fieldDef("neq", "Boolean", lookupDescription(filter.OpNEQ)),
			fieldDef("isNull", "Boolean", lookupDescription(filter.OpIsNull)),
		),
		inputDef(TimeLookupInput, "Lookups on Time fields.",
			scalarLookups("Time", true, false)...),
		inputDef(IDLookupInput, "Lookups on ID fields.",
			scalarLookups("ID", true, false)...),
	)
}

// searchInputs builds the full text search input types.
func (g *Generator) searchInputs() []*ast.Definition {
	return []*ast.Definition{
		inputDef(SearchConfigInput, "Text search configuration, by name or by column.",
			nonNullFieldDef("value", "String", "Configuration name, or column name when isField is set."),
			fieldDef("isField", "Boolean", "Interpret value as a column reference."),
		),
		inputDef(SearchQueryInput, "A full text search query with recursive combinators.",
			fieldDef("value", "String", "Search terms."),
			fieldDef("config", SearchConfigInput, "Text search configuration."),
			listFieldDef(g.cfg.AndKey, SearchQueryInput, "All sub-queries must match."),
			listFieldDef(g.cfg.OrKey, SearchQueryInput, "At least one sub-query must match."),
			fieldDef(g.cfg.NotKey, SearchQueryInput, "The sub-query must not match."),
		),
		inputDef(FloatLookupsInput, "Float comparisons against a computed value.",
			fieldDef("eq", "Float", lookupDescription(filter.OpEQ)),
			fieldDef("gt", "Float", lookupDescription(filter.OpGT)),
			fieldDef("gte", "Float", lookupDescription(filter.OpGTE)),
			fieldDef("lt", "Float", lookupDescription(filter.OpLT)),
			fieldDef("lte", "Float", lookupDescription(filter.OpLTE)),
		),
		inputDef(RankWeightsInput, "Per-label weights of a ranked search.",
			fieldDef("d", "Float", "Weight of the D label."),
			fieldDef("c", "Float", "Weight of the C label."),
			fieldDef("b", "Float", "Weight of the B label."),
			fieldDef("a", "Float", "Weight of the A label."),
		),
		inputDef(SearchRankInput, "A comparison against the rank of a search query.",
			nonNullFieldDef("query", SearchQueryInput, "The ranked query."),
			nonNullFieldDef("lookups", FloatLookupsInput, "Comparisons against the rank."),
			fieldDef("weights", RankWeightsInput, "Rank label weights."),
			fieldDef("coverDensity", "Boolean", "Use cover density ranking."),
			fieldDef("normalization", "Int", "Rank normalization bitmask."),
		),
		{
			Kind:        ast.Enum,
			Name:        TrigramKindEnum,
			Description: "Trigram comparison kind.",
			EnumValues: ast.EnumValueList{
				{Name: string(filter.TrigramSimilarity), Description: enumValueDescription(string(filter.TrigramSimilarity))},
				{Name: string(filter.TrigramDistance), Description: enumValueDescription(string(filter.TrigramDistance))},
			},
		},
		inputDef(TrigramInput, "A comparison against trigram similarity or distance.",
			fieldDef("kind", TrigramKindEnum, "Comparison kind, similarity by default."),
			nonNullFieldDef("value", "String", "The value compared with the field."),
			nonNullFieldDef("lookups", FloatLookupsInput, "Comparisons against the similarity or distance."),
		),
	}
}

// enumDefs builds the enum type and its lookup input for one enum field.
func (g *Generator) enumDefs(e *schema.Entity, f *schema.Field) []*ast.Definition {
	enum := &ast.Definition{
		Kind:        ast.Enum,
		Name:        enumTypeName(e.Name, f),
		Description: fmt.Sprintf("Values of the %s field of %s.", f.Name, e.Name),
	}
	for _, v := range f.Values {
		enum.EnumValues = append(enum.EnumValues, &ast.EnumValueDefinition{
			Name:        v,
			Description: enumValueDescription(v),
		})
	}
	lookup := inputDef(enumLookupName(e.Name, f),
		fmt.Sprintf("Lookups on the %s field of %s.", f.Name, e.Name),
		fieldDef("eq", enum.Name, lookupDescription(filter.OpEQ)),
		fieldDef("neq", enum.Name, lookupDescription(filter.OpNEQ)),
		listFieldDef("in", enum.Name, lookupDescription(filter.OpIn)),
		listFieldDef("notIn", enum.Name, lookupDescription(filter.OpNotIn)),
		fieldDef("isNull", "Boolean", lookupDescription(filter.OpIsNull)),
	)
	return []*ast.Definition{enum, lookup}
}

// filterInput builds the filter input for one entity: a field per
// attribute, a field per traversable relation, and the connectives.
func (g *Generator) filterInput(e *schema.Entity) *ast.Definition {
	names := filterNames(e.Name)
	fields := make([]*ast.FieldDefinition, 0, len(e.Fields)+len(e.Relations)+3)
	for _, f := range e.Fields {
		fields = append(fields, fieldDef(f.Name, lookupInputName(e.Name, f), fieldDescription(e.Name, f.Name)))
	}
	for _, r := range e.Relations {
		if r.Excluded {
			continue
		}
		fields = append(fields, fieldDef(r.Name, filterNames(r.Target).FilterInput, relationDescription(r.Name, r.Target)))
	}
	fields = append(fields,
		listFieldDef(g.cfg.AndKey, names.FilterInput, "All sub-filters must match."),
		listFieldDef(g.cfg.OrKey, names.FilterInput, "At least one sub-filter must match."),
		fieldDef(g.cfg.NotKey, names.FilterInput, "The sub-filter must not match."),
	)
	return inputDef(names.FilterInput, fmt.Sprintf("Filter input for %s list queries.", e.Name), fields...)
}

// inputDef builds an input object definition.
func inputDef(name, description string, fields ...*ast.FieldDefinition) *ast.Definition {
	return &ast.Definition{
		Kind:        ast.InputObject,
		Name:        name,
		Description: description,
		Fields:      fields,
	}
}

// fieldDef builds a nullable named field.
func fieldDef(name, typ, description string) *ast.FieldDefinition {
	return &ast.FieldDefinition{Name: name, Description: description, Type: ast.NamedType(typ, nil)}
}

// nonNullFieldDef builds a required named field.
func nonNullFieldDef(name, typ, description string) *ast.FieldDefinition {
	return &ast.FieldDefinition{Name: name, Description: description, Type: ast.NonNullNamedType(typ, nil)}
}

// listFieldDef builds a `[T!]` field.
func listFieldDef(name, typ, description string) *ast.FieldDefinition {
	return &ast.FieldDefinition{Name: name, Description: description, Type: ast.ListType(ast.NonNullNamedType(typ, nil), nil)}
}

// scalarLookups builds the lookup fields for one scalar type.
func scalarLookups(scalar string, ordered, textual bool) []*ast.FieldDefinition {
	fields := []*ast.FieldDefinition{
		fieldDef("eq", scalar, lookupDescription(filter.OpEQ)),
		fieldDef("neq", scalar, lookupDescription(filter.OpNEQ)),
		listFieldDef("in", scalar, lookupDescription(filter.OpIn)),
		listFieldDef("notIn", scalar, lookupDescription(filter.OpNotIn)),
	}
	if ordered {
		fields = append(fields,
			fieldDef("gt", scalar, lookupDescription(filter.OpGT)),
			fieldDef("gte", scalar, lookupDescription(filter.OpGTE)),
			fieldDef("lt", scalar, lookupDescription(filter.OpLT)),
			fieldDef("lte", scalar, lookupDescription(filter.OpLTE)),
			listFieldDef("range", scalar, lookupDescription(filter.OpRange)),
		)
	}
	if textual {
		fields = append(fields,
			fieldDef("contains", scalar, lookupDescription(filter.OpContains)),
			fieldDef("containsFold", scalar, lookupDescription(filter.OpContainsFold)),
			fieldDef("hasPrefix", scalar, lookupDescription(filter.OpHasPrefix)),
			fieldDef("hasSuffix", scalar, lookupDescription(filter.OpHasSuffix)),
			fieldDef("equalFold", scalar, lookupDescription(filter.OpEqualFold)),
		)
	}
	fields = append(fields, fieldDef("isNull", "Boolean", lookupDescription(filter.OpIsNull)))
	return fields
}
