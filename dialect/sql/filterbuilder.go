package sql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/gqlfilter"
	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// FilterBuilder compiles filter predicates to SQL. It implements
// gqlfilter.Builder over *Predicate; relation hops compile to correlated
// EXISTS subqueries so multi-valued edges never duplicate rows.
type FilterBuilder struct {
	reg     *schema.Registry
	entity  *schema.Entity
	dialect string
}

// NewFilterBuilder returns a builder compiling predicates against the
// named entity's table.
func NewFilterBuilder(reg *schema.Registry, entity, dialect string) (*FilterBuilder, error) {
	e, ok := reg.Lookup(entity)
	if !ok {
		return nil, &gqlfilter.SchemaMismatchError{Entity: entity, Name: entity, Path: entity}
	}
	return &FilterBuilder{reg: reg, entity: e, dialect: dialect}, nil
}

// Entity returns the root entity of the builder.
func (f *FilterBuilder) Entity() *schema.Entity { return f.entity }

// Dialect returns the dialect SQL is generated for.
func (f *FilterBuilder) Dialect() string { return f.dialect }

// Separator implements gqlfilter.Builder.
func (f *FilterBuilder) Separator() string { return "." }

// And implements gqlfilter.Builder.
func (f *FilterBuilder) And(ps ...*Predicate) *Predicate { return And(ps...) }

// Or implements gqlfilter.Builder.
func (f *FilterBuilder) Or(ps ...*Predicate) *Predicate { return Or(ps...) }

// Not implements gqlfilter.Builder.
func (f *FilterBuilder) Not(p *Predicate) *Predicate { return Not(p) }

// Field implements gqlfilter.Builder. The path addresses a field through
// zero or more relations; each hop adds one EXISTS level.
func (f *FilterBuilder) Field(path string, op filter.Op, value any) (*Predicate, error) {
	return f.compile(f.entity, f.entity.Table, strings.Split(path, "."), 1, func(col string) (*Predicate, error) {
		return f.fieldPred(col, path, op, value)
	})
}

// compile walks the path, wrapping the leaf predicate in one correlated
// subquery per relation hop. Aliases are derived from the hop depth, so
// the same path always renders the same SQL.
func (f *FilterBuilder) compile(cur *schema.Entity, curAlias string, segs []string, depth int, leaf func(col string) (*Predicate, error)) (*Predicate, error) {
	if len(segs) == 1 {
		field, ok := cur.FieldByName(segs[0])
		if !ok {
			return nil, &gqlfilter.SchemaMismatchError{Entity: cur.Name, Name: segs[0]}
		}
		return leaf(curAlias + "." + field.ColumnName())
	}
	rel, ok := cur.RelationByName(segs[0])
	if !ok {
		return nil, &gqlfilter.SchemaMismatchError{Entity: cur.Name, Name: segs[0]}
	}
	if rel.Excluded {
		return nil, &gqlfilter.ForbiddenRelationError{Entity: cur.Name, Relation: rel.Name}
	}
	target, ok := f.reg.Lookup(rel.Target)
	if !ok {
		return nil, &gqlfilter.SchemaMismatchError{Entity: cur.Name, Name: rel.Target}
	}
	alias := "t" + strconv.Itoa(depth)
	inner, err := f.compile(target, alias, segs[1:], depth+1, leaf)
	if err != nil {
		return nil, err
	}

	sub := SelectRaw("1").Dialect(f.dialect)
	switch {
	case rel.M2M():
		joinAlias := "j" + strconv.Itoa(depth)
		sub.From(rel.Table).As(joinAlias).
			Join(target.Table, alias, ColumnsEQ(alias+"."+target.IDColumn(), joinAlias+"."+rel.Columns[1])).
			Where(ColumnsEQ(joinAlias+"."+rel.Columns[0], curAlias+"."+cur.IDColumn()))
	case rel.Inverse:
		// Foreign key on the target's table.
		sub.From(target.Table).As(alias).
			Where(ColumnsEQ(alias+"."+rel.Columns[0], curAlias+"."+cur.IDColumn()))
	default:
		// Foreign key on the current table.
		sub.From(target.Table).As(alias).
			Where(ColumnsEQ(alias+"."+target.IDColumn(), curAlias+"."+rel.Columns[0]))
	}
	sub.Where(inner)
	return Exists(sub), nil
}

// fieldPred builds the leaf predicate for one lookup on a resolved
// column.
func (f *FilterBuilder) fieldPred(col, path string, op filter.Op, value any) (*Predicate, error) {
	mismatch := func(want string) error {
		return &gqlfilter.TypeMismatchError{
			Field:  path,
			Lookup: string(op),
			Reason: fmt.Sprintf("expects %s, got %T", want, value),
		}
	}
	switch op {
	case filter.OpEQ:
		return EQ(col, value), nil
	case filter.OpNEQ:
		return NEQ(col, value), nil
	case filter.OpGT:
		return GT(col, value), nil
	case filter.OpGTE:
		return GTE(col, value), nil
	case filter.OpLT:
		return LT(col, value), nil
	case filter.OpLTE:
		return LTE(col, value), nil
	case filter.OpIn, filter.OpNotIn:
		vs, ok := value.([]any)
		if !ok || len(vs) == 0 {
			return nil, mismatch("a non-empty list")
		}
		if op == filter.OpIn {
			return In(col, vs...), nil
		}
		return NotIn(col, vs...), nil
	case filter.OpRange:
		vs, ok := value.([]any)
		if !ok || len(vs) != 2 {
			return nil, mismatch("two bounds")
		}
		return Between(col, vs[0], vs[1]), nil
	case filter.OpIsNull:
		v, ok := value.(bool)
		if !ok {
			return nil, mismatch("a boolean")
		}
		if v {
			return IsNull(col), nil
		}
		return NotNull(col), nil
	case filter.OpContains:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch("a string")
		}
		return Contains(col, s), nil
	case filter.OpContainsFold:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch("a string")
		}
		return ContainsFold(col, s), nil
	case filter.OpHasPrefix:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch("a string")
		}
		return HasPrefix(col, s), nil
	case filter.OpHasSuffix:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch("a string")
		}
		return HasSuffix(col, s), nil
	case filter.OpEqualFold:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch("a string")
		}
		return EqualFold(col, s), nil
	default:
		return nil, &gqlfilter.TypeMismatchError{
			Field:  path,
			Lookup: string(op),
			Reason: "lookup has no SQL form",
		}
	}
}

var _ gqlfilter.Builder[*Predicate] = (*FilterBuilder)(nil)
var _ gqlfilter.SearchBuilder[*Predicate] = (*FilterBuilder)(nil)
