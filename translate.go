package gqlfilter

import (
	"fmt"
	"strings"

	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// Builder assembles backend predicates from filter expressions. P is the
// backend predicate type, *sql.Predicate for the bundled SQL builder.
// Implementations must be pure: the same expression always yields the
// same predicate.
type Builder[P any] interface {
	// Field builds a single field predicate. The path addresses the field
	// through zero or more relations, joined with Separator().
	Field(path string, op filter.Op, value any) (P, error)
	// And, Or and Not combine predicates. And and Or receive at least one
	// operand.
	And(...P) P
	Or(...P) P
	Not(P) P
	// Separator joins relation hops into the path handed to Field.
	Separator() string
}

// SearchBuilder is an optional capability for builders that support full
// text search predicates. Field receives the *filter.SearchQuery,
// *filter.SearchRank or *filter.Trigram value when the builder implements
// this interface; otherwise search lookups fail with ErrTypeMismatch.
type SearchBuilder[P any] interface {
	Search(path string, value any) (P, error)
}

// translator lowers a filter expression onto a backend builder, checking
// every field path against the registry a second time. Parsing already
// validated the tree, but expressions can also be constructed directly.
type translator[P any] struct {
	reg     *schema.Registry
	builder Builder[P]
}

// Translate lowers expr for entity onto the builder. A nil expression
// returns the zero predicate, meaning unconstrained.
func Translate[P any](reg *schema.Registry, entity *schema.Entity, b Builder[P], expr filter.Expr) (P, error) {
	t := &translator[P]{reg: reg, builder: b}
	var zero P
	if expr == nil {
		return zero, nil
	}
	return t.translate(entity, expr)
}

func (t *translator[P]) translate(entity *schema.Entity, expr filter.Expr) (P, error) {
	var zero P
	switch expr := expr.(type) {
	case *filter.And:
		ps, err := t.children(entity, expr.Exprs, "conjunction")
		if err != nil {
			return zero, err
		}
		if len(ps) == 1 {
			return ps[0], nil
		}
		return t.builder.And(ps...), nil
	case *filter.Or:
		ps, err := t.children(entity, expr.Exprs, "disjunction")
		if err != nil {
			return zero, err
		}
		if len(ps) == 1 {
			return ps[0], nil
		}
		return t.builder.Or(ps...), nil
	case *filter.Not:
		if expr.Expr == nil {
			return zero, &MalformedFilterError{Reason: "negation has no operand"}
		}
		p, err := t.translate(entity, expr.Expr)
		if err != nil {
			return zero, err
		}
		return t.builder.Not(p), nil
	case *filter.Pred:
		return t.pred(entity, expr)
	default:
		return zero, &MalformedFilterError{Reason: fmt.Sprintf("unsupported expression %T", expr)}
	}
}

func (t *translator[P]) children(entity *schema.Entity, exprs []filter.Expr, kind string) ([]P, error) {
	if len(exprs) == 0 {
		return nil, &MalformedFilterError{Reason: "empty " + kind}
	}
	ps := make([]P, 0, len(exprs))
	for _, expr := range exprs {
		p, err := t.translate(entity, expr)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// pred resolves the predicate path against the schema and hands the leaf
// to the builder.
func (t *translator[P]) pred(entity *schema.Entity, pred *filter.Pred) (P, error) {
	var zero P
	if len(pred.Path) == 0 {
		return zero, &MalformedFilterError{Reason: "predicate has no field path"}
	}
	field, err := t.resolve(entity, pred.Path)
	if err != nil {
		return zero, err
	}
	path := strings.Join(pred.Path, t.builder.Separator())
	if pred.Op.Search() {
		sb, ok := any(t.builder).(SearchBuilder[P])
		if !ok {
			return zero, &TypeMismatchError{
				Field:  path,
				Lookup: string(pred.Op),
				Reason: "backend does not support full text search",
			}
		}
		if !field.Searchable {
			return zero, &TypeMismatchError{Field: path, Lookup: string(pred.Op), Reason: "field is not searchable"}
		}
		return sb.Search(path, pred.Value)
	}
	if !pred.Op.Valid() {
		return zero, &SchemaMismatchError{Entity: entity.Name, Name: string(pred.Op), Path: path}
	}
	return t.builder.Field(path, pred.Op, pred.Value)
}

// resolve walks the path through the entity graph: every segment but the
// last must name a traversable relation, the last a field.
func (t *translator[P]) resolve(entity *schema.Entity, path []string) (*schema.Field, error) {
	cur := entity
	for i, seg := range path {
		if i == len(path)-1 {
			field, ok := cur.FieldByName(seg)
			if !ok {
				return nil, &SchemaMismatchError{Entity: cur.Name, Name: seg, Path: strings.Join(path, ".")}
			}
			return field, nil
		}
		rel, ok := cur.RelationByName(seg)
		if !ok {
			return nil, &SchemaMismatchError{Entity: cur.Name, Name: seg, Path: strings.Join(path, ".")}
		}
		if rel.Excluded {
			return nil, &ForbiddenRelationError{Entity: cur.Name, Relation: rel.Name}
		}
		next, ok := t.reg.Lookup(rel.Target)
		if !ok {
			return nil, &SchemaMismatchError{Entity: cur.Name, Name: rel.Target, Path: strings.Join(path, ".")}
		}
		cur = next
	}
	return nil, &MalformedFilterError{Reason: "predicate has no field path"}
}
