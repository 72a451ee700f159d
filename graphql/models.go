package graphql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// Models renders Go bindings for the generated input types as a single
// jennifer file for package pkg. Every input object becomes a struct
// with pointer fields and json tags matching the GraphQL field names,
// so the structs round-trip through FilterMap into the filter grammar.
func (g *Generator) Models(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by gqlfilter, DO NOT EDIT.")
	g.genLookupModels(f)
	if g.searchable() {
		g.genSearchModels(f)
	}
	for _, e := range g.reg.Entities() {
		for _, fld := range e.Fields {
			if fld.Kind == schema.KindEnum {
				g.genEnumModel(f, e, fld)
			}
		}
		g.genFilterModel(f, e)
	}
	return f
}

// goTypeName maps a generated GraphQL type name to its Go counterpart.
func goTypeName(graphqlType string) string {
	return strings.TrimSuffix(graphqlType, "Input")
}

// genLookupModels emits the shared per-scalar lookup structs.
func (g *Generator) genLookupModels(f *jen.File) {
	str := func() *jen.Statement { return jen.String() }
	f.Comment("StringLookup holds the lookups of a String filter field.")
	f.Type().Id(goTypeName(StringLookupInput)).Struct(scalarLookupFields(str, true, true)...)

	if g.searchable() {
		f.Comment("SearchableStringLookup extends StringLookup with full text search.")
		f.Type().Id(goTypeName(SearchableLookupInput)).Struct(append(
			scalarLookupFields(str, true, true),
			jen.Id("Search").Op("*").Id(goTypeName(SearchQueryInput)).Tag(jsonTag("search")),
			jen.Id("SearchRank").Op("*").Id(goTypeName(SearchRankInput)).Tag(jsonTag("searchRank")),
			jen.Id("Trigram").Op("*").Id(goTypeName(TrigramInput)).Tag(jsonTag("trigram")),
		)...)
	}

	f.Comment("IntLookup holds the lookups of an Int filter field.")
	f.Type().Id(goTypeName(IntLookupInput)).Struct(scalarLookupFields(func() *jen.Statement { return jen.Int() }, true, false)...)

	f.Comment("FloatLookup holds the lookups of a Float filter field.")
	f.Type().Id(goTypeName(FloatLookupInput)).Struct(scalarLookupFields(func() *jen.Statement { return jen.Float64() }, true, false)...)

	f.Comment("BooleanLookup holds the lookups of a Boolean filter field.")
	f.Type().Id(goTypeName(BooleanLookupInput)).Struct(
		jen.Id("Eq").Op("*").Bool().Tag(jsonTag("eq")),
		jen.Id("Neq").Op("*").Bool().Tag(jsonTag("neq")),
		jen.Id("IsNull").Op("*").Bool().Tag(jsonTag("isNull")),
	)

	f.Comment("TimeLookup holds the lookups of a Time filter field.")
	f.Type().Id(goTypeName(TimeLookupInput)).Struct(scalarLookupFields(func() *jen.Statement { return jen.Qual("time", "Time") }, true, false)...)

	f.Comment("IDLookup holds the lookups of an ID filter field.")
	f.Type().Id(goTypeName(IDLookupInput)).Struct(scalarLookupFields(str, true, false)...)
}

// genSearchModels emits the full text search structs and the trigram
// kind enum.
func (g *Generator) genSearchModels(f *jen.File) {
	query := goTypeName(SearchQueryInput)
	floats := goTypeName(FloatLookupsInput)

	f.Comment("SearchConfig selects a text search configuration.")
	f.Type().Id(goTypeName(SearchConfigInput)).Struct(
		jen.Id("Value").String().Tag(map[string]string{"json": "value"}),
		jen.Id("IsField").Op("*").Bool().Tag(jsonTag("isField")),
	)

	f.Comment("SearchQuery is a full text search query with recursive combinators.")
	f.Type().Id(query).Struct(
		jen.Id("Value").Op("*").String().Tag(jsonTag("value")),
		jen.Id("Config").Op("*").Id(goTypeName(SearchConfigInput)).Tag(jsonTag("config")),
		jen.Id(goFieldName(g.cfg.AndKey)).Index().Op("*").Id(query).Tag(jsonTag(g.cfg.AndKey)),
		jen.Id(goFieldName(g.cfg.OrKey)).Index().Op("*").Id(query).Tag(jsonTag(g.cfg.OrKey)),
		jen.Id(goFieldName(g.cfg.NotKey)).Op("*").Id(query).Tag(jsonTag(g.cfg.NotKey)),
	)

	f.Comment("FloatLookups compares a computed float against thresholds.")
	f.Type().Id(floats).Struct(
		jen.Id("Eq").Op("*").Float64().Tag(jsonTag("eq")),
		jen.Id("Gt").Op("*").Float64().Tag(jsonTag("gt")),
		jen.Id("Gte").Op("*").Float64().Tag(jsonTag("gte")),
		jen.Id("Lt").Op("*").Float64().Tag(jsonTag("lt")),
		jen.Id("Lte").Op("*").Float64().Tag(jsonTag("lte")),
	)

	f.Comment("SearchRankWeights holds the per-label weights of a ranked search.")
	f.Type().Id(goTypeName(RankWeightsInput)).Struct(
		jen.Id("D").Op("*").Float64().Tag(jsonTag("d")),
		jen.Id("C").Op("*").Float64().Tag(jsonTag("c")),
		jen.Id("B").Op("*").Float64().Tag(jsonTag("b")),
		jen.Id("A").Op("*").Float64().Tag(jsonTag("a")),
	)

	f.Comment("SearchRank compares the rank of a search query against thresholds.")
	f.Type().Id(goTypeName(SearchRankInput)).Struct(
		jen.Id("Query").Op("*").Id(query).Tag(map[string]string{"json": "query"}),
		jen.Id("Lookups").Op("*").Id(floats).Tag(map[string]string{"json": "lookups"}),
		jen.Id("Weights").Op("*").Id(goTypeName(RankWeightsInput)).Tag(jsonTag("weights")),
		jen.Id("CoverDensity").Op("*").Bool().Tag(jsonTag("coverDensity")),
		jen.Id("Normalization").Op("*").Int().Tag(jsonTag("normalization")),
	)

	f.Comment("TrigramKind selects similarity or distance comparison.")
	f.Type().Id(TrigramKindEnum).String()
	f.Const().Defs(
		jen.Id(TrigramKindEnum+"Similarity").Id(TrigramKindEnum).Op("=").Lit(string(filter.TrigramSimilarity)),
		jen.Id(TrigramKindEnum+"Distance").Id(TrigramKindEnum).Op("=").Lit(string(filter.TrigramDistance)),
	)

	f.Comment("Trigram compares trigram similarity or distance against thresholds.")
	f.Type().Id(goTypeName(TrigramInput)).Struct(
		jen.Id("Kind").Op("*").Id(TrigramKindEnum).Tag(jsonTag("kind")),
		jen.Id("Value").String().Tag(map[string]string{"json": "value"}),
		jen.Id("Lookups").Op("*").Id(floats).Tag(map[string]string{"json": "lookups"}),
	)
}

// genEnumModel emits the enum string type, its value constants and its
// lookup struct for one enum field.
func (g *Generator) genEnumModel(f *jen.File, e *schema.Entity, fld *schema.Field) {
	enum := enumTypeName(e.Name, fld)
	f.Commentf("%s is a value of the %s field of %s.", enum, fld.Name, e.Name)
	f.Type().Id(enum).String()
	defs := make([]jen.Code, len(fld.Values))
	for i, v := range fld.Values {
		defs[i] = jen.Id(enum + goFieldName(v)).Id(enum).Op("=").Lit(v)
	}
	f.Const().Defs(defs...)

	f.Commentf("%s holds the lookups of the %s field of %s.", goTypeName(enumLookupName(e.Name, fld)), fld.Name, e.Name)
	f.Type().Id(goTypeName(enumLookupName(e.Name, fld))).Struct(
		jen.Id("Eq").Op("*").Id(enum).Tag(jsonTag("eq")),
		jen.Id("Neq").Op("*").Id(enum).Tag(jsonTag("neq")),
		jen.Id("In").Index().Id(enum).Tag(jsonTag("in")),
		jen.Id("NotIn").Index().Id(enum).Tag(jsonTag("notIn")),
		jen.Id("IsNull").Op("*").Bool().Tag(jsonTag("isNull")),
	)
}

// genFilterModel emits the filter struct of one entity.
func (g *Generator) genFilterModel(f *jen.File, e *schema.Entity) {
	names := filterNames(e.Name)
	fields := make([]jen.Code, 0, len(e.Fields)+len(e.Relations)+3)
	for _, fld := range e.Fields {
		fields = append(fields, jen.Id(goFieldName(fld.Name)).Op("*").Id(goTypeName(lookupInputName(e.Name, fld))).Tag(jsonTag(fld.Name)))
	}
	for _, r := range e.Relations {
		if r.Excluded {
			continue
		}
		fields = append(fields, jen.Id(goFieldName(r.Name)).Op("*").Id(filterNames(r.Target).Model).Tag(jsonTag(r.Name)))
	}
	fields = append(fields,
		jen.Id(goFieldName(g.cfg.AndKey)).Index().Op("*").Id(names.Model).Tag(jsonTag(g.cfg.AndKey)),
		jen.Id(goFieldName(g.cfg.OrKey)).Index().Op("*").Id(names.Model).Tag(jsonTag(g.cfg.OrKey)),
		jen.Id(goFieldName(g.cfg.NotKey)).Op("*").Id(names.Model).Tag(jsonTag(g.cfg.NotKey)),
	)
	f.Commentf("%s mirrors the %s input type.", names.Model, names.FilterInput)
	f.Type().Id(names.Model).Struct(fields...)
}

// scalarLookupFields builds the struct fields shared by the scalar
// lookup models. The shape mirrors scalarLookups.
func scalarLookupFields(scalar func() *jen.Statement, ordered, textual bool) []jen.Code {
	fields := []jen.Code{
		jen.Id("Eq").Op("*").Add(scalar()).Tag(jsonTag("eq")),
		jen.Id("Neq").Op("*").Add(scalar()).Tag(jsonTag("neq")),
		jen.Id("In").Index().Add(scalar()).Tag(jsonTag("in")),
		jen.Id("NotIn").Index().Add(scalar()).Tag(jsonTag("notIn")),
	}
	if ordered {
		fields = append(fields,
			jen.Id("Gt").Op("*").Add(scalar()).Tag(jsonTag("gt")),
			jen.Id("Gte").Op("*").Add(scalar()).Tag(jsonTag("gte")),
			jen.Id("Lt").Op("*").Add(scalar()).Tag(jsonTag("lt")),
			jen.Id("Lte").Op("*").Add(scalar()).Tag(jsonTag("lte")),
			jen.Id("Range").Index().Add(scalar()).Tag(jsonTag("range")),
		)
	}
	if textual {
		fields = append(fields,
			jen.Id("Contains").Op("*").Add(scalar()).Tag(jsonTag("contains")),
			jen.Id("ContainsFold").Op("*").Add(scalar()).Tag(jsonTag("containsFold")),
			jen.Id("HasPrefix").Op("*").Add(scalar()).Tag(jsonTag("hasPrefix")),
			jen.Id("HasSuffix").Op("*").Add(scalar()).Tag(jsonTag("hasSuffix")),
			jen.Id("EqualFold").Op("*").Add(scalar()).Tag(jsonTag("equalFold")),
		)
	}
	fields = append(fields, jen.Id("IsNull").Op("*").Bool().Tag(jsonTag("isNull")))
	return fields
}

func jsonTag(name string) map[string]string {
	return map[string]string{"json": name + ",omitempty"}
}
