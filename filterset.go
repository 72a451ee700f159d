package gqlfilter

import (
	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// Filters turns GraphQL filter arguments into filter expressions for the
// entities of one registry. It is safe for concurrent use.
type Filters struct {
	cfg Config
	reg *schema.Registry
}

// New builds a Filters over reg. The registry is validated once, so a
// broken entity graph fails at startup instead of per request.
func New(reg *schema.Registry, opts ...Option) (*Filters, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Filters{cfg: cfg, reg: reg}, nil
}

// MustNew is like New but panics on error. It simplifies package level
// initialization where the registry is known to be valid.
func MustNew(reg *schema.Registry, opts ...Option) *Filters {
	f, err := New(reg, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Registry returns the registry the filters were built over.
func (f *Filters) Registry() *schema.Registry { return f.reg }

// Config returns a copy of the effective configuration.
func (f *Filters) Config() Config { return f.cfg }

// Parse parses a filter argument for the named entity into a normalized
// expression. A nil or empty input yields a nil expression, the identity
// filter.
func (f *Filters) Parse(entity string, input map[string]any) (filter.Expr, error) {
	e, ok := f.reg.Lookup(entity)
	if !ok {
		return nil, &SchemaMismatchError{Entity: entity, Name: entity, Path: entity}
	}
	p := &parser{cfg: f.cfg, reg: f.reg}
	expr, err := p.Parse(e, input)
	if err != nil {
		return nil, err
	}
	return filter.Normalize(expr), nil
}

// Set binds a Filters to a backend builder for one entity, yielding a
// FilterSet that compiles filter arguments straight to backend predicates.
func Set[P any](f *Filters, entity string, b Builder[P]) (*FilterSet[P], error) {
	e, ok := f.reg.Lookup(entity)
	if !ok {
		return nil, &SchemaMismatchError{Entity: entity, Name: entity, Path: entity}
	}
	return &FilterSet[P]{filters: f, entity: e, builder: b}, nil
}

// FilterSet compiles filter arguments for a single entity into backend
// predicates of type P. It is safe for concurrent use.
type FilterSet[P any] struct {
	filters *Filters
	entity  *schema.Entity
	builder Builder[P]
}

// Entity returns the entity the set filters.
func (s *FilterSet[P]) Entity() *schema.Entity { return s.entity }

// Parse parses input into a normalized expression without compiling it.
func (s *FilterSet[P]) Parse(input map[string]any) (filter.Expr, error) {
	return s.filters.Parse(s.entity.Name, input)
}

// Compile parses input and lowers it onto the builder. An empty input
// returns the zero predicate, which backends treat as unconstrained.
func (s *FilterSet[P]) Compile(input map[string]any) (P, error) {
	var zero P
	expr, err := s.Parse(input)
	if err != nil {
		return zero, err
	}
	return Translate(s.filters.reg, s.entity, s.builder, expr)
}

// CompileExpr lowers an already parsed expression onto the builder. The
// expression is normalized first, so logically equal trees compile to the
// same predicate.
func (s *FilterSet[P]) CompileExpr(expr filter.Expr) (P, error) {
	return Translate(s.filters.reg, s.entity, s.builder, filter.Normalize(expr))
}
