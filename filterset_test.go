package gqlfilter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlfilter"
	"github.com/syssam/gqlfilter/filter"
)

// TestFilterSetCompile checks the end to end path from a filter argument
// to a builder predicate.
func TestFilterSetCompile(t *testing.T) {
	t.Parallel()
	filters := gqlfilter.MustNew(newTestRegistry())
	users, err := gqlfilter.Set[string](filters, "User", exprBuilder{})
	require.NoError(t, err)
	assert.Equal(t, "User", users.Entity().Name)

	tests := []struct {
		name  string
		input map[string]any
		want  string
	}{
		{
			name: "and over or",
			input: map[string]any{
				"and": []any{
					map[string]any{"age__gt": 18},
					map[string]any{"or": []any{
						map[string]any{"city": "NYC"},
						map[string]any{"city": "LA"},
					}},
				},
			},
			want: `age > 18 && (city == "NYC" || city == "LA")`,
		},
		{
			name:  "negation",
			input: map[string]any{"not": map[string]any{"role": "admin"}},
			want:  `!(role == "admin")`,
		},
		{
			name:  "relation path reaches the builder joined",
			input: map[string]any{"pets__tags__label": "cute"},
			want:  `pets.tags.label == "cute"`,
		},
		{
			name:  "search reaches the search capability",
			input: map[string]any{"bio__search": map[string]any{"value": "gopher"}},
			want:  `search(bio, "gopher")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := users.Compile(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestFilterSetIdentity checks that the empty filter compiles to the zero
// predicate.
func TestFilterSetIdentity(t *testing.T) {
	t.Parallel()
	filters := gqlfilter.MustNew(newTestRegistry())
	users, err := gqlfilter.Set[string](filters, "User", exprBuilder{})
	require.NoError(t, err)

	got, err := users.Compile(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = users.Compile(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestFilterSetDeterminism compiles the same input many times and expects
// byte identical predicates.
func TestFilterSetDeterminism(t *testing.T) {
	t.Parallel()
	filters := gqlfilter.MustNew(newTestRegistry())
	users, err := gqlfilter.Set[string](filters, "User", exprBuilder{})
	require.NoError(t, err)

	input := map[string]any{
		"city": "NYC",
		"age":  map[string]any{"gte": 18, "lte": 65},
		"name": map[string]any{"hasPrefix": "j"},
		"or": []any{
			map[string]any{"role": "admin"},
			map[string]any{"active": true},
		},
	}
	first, err := users.Compile(input)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		got, err := users.Compile(input)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

// TestCompileExprNormalizes checks that hand built expressions are
// normalized before translation, so logically equal trees compile
// identically.
func TestCompileExprNormalizes(t *testing.T) {
	t.Parallel()
	filters := gqlfilter.MustNew(newTestRegistry())
	users, err := gqlfilter.Set[string](filters, "User", exprBuilder{})
	require.NoError(t, err)

	plain := filter.NewPred("city", filter.OpEQ, "NYC")
	doubled := filter.NewNot(filter.NewNot(filter.NewPred("city", filter.OpEQ, "NYC")))

	a, err := users.CompileExpr(plain)
	require.NoError(t, err)
	b, err := users.CompileExpr(doubled)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestTranslateRevalidates checks that translation rejects hand built
// expressions that parsing never saw.
func TestTranslateRevalidates(t *testing.T) {
	t.Parallel()
	filters := gqlfilter.MustNew(newTestRegistry())
	users, err := gqlfilter.Set[string](filters, "User", exprBuilder{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		expr  filter.Expr
		check func(error) bool
	}{
		{
			name:  "unknown field",
			expr:  filter.NewPred("height", filter.OpEQ, 1),
			check: gqlfilter.IsSchemaMismatch,
		},
		{
			name:  "excluded relation",
			expr:  &filter.Pred{Path: []string{"vault", "secret"}, Op: filter.OpEQ, Value: "x"},
			check: gqlfilter.IsForbiddenRelation,
		},
		{
			name:  "field used as relation",
			expr:  &filter.Pred{Path: []string{"city", "name"}, Op: filter.OpEQ, Value: "x"},
			check: gqlfilter.IsSchemaMismatch,
		},
		{
			name:  "empty conjunction",
			expr:  &filter.And{},
			check: gqlfilter.IsMalformedFilter,
		},
		{
			name:  "negation without operand",
			expr:  &filter.Not{},
			check: gqlfilter.IsMalformedFilter,
		},
		{
			name:  "predicate without path",
			expr:  &filter.Pred{Op: filter.OpEQ, Value: 1},
			check: gqlfilter.IsMalformedFilter,
		},
		{
			name:  "search on plain field",
			expr:  &filter.Pred{Path: []string{"name"}, Op: filter.OpSearch, Value: &filter.SearchQuery{Value: "x"}},
			check: gqlfilter.IsTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := users.CompileExpr(tt.expr)
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
		})
	}
}

// noSearchBuilder is exprBuilder without the search capability.
type noSearchBuilder struct{}

func (noSearchBuilder) Field(path string, op filter.Op, value any) (string, error) {
	return exprBuilder{}.Field(path, op, value)
}

func (noSearchBuilder) And(ps ...string) string { return exprBuilder{}.And(ps...) }

func (noSearchBuilder) Or(ps ...string) string { return exprBuilder{}.Or(ps...) }

func (noSearchBuilder) Not(p string) string { return exprBuilder{}.Not(p) }

func (noSearchBuilder) Separator() string { return "." }

// TestSearchWithoutCapability checks that search lookups fail on builders
// that do not implement SearchBuilder.
func TestSearchWithoutCapability(t *testing.T) {
	t.Parallel()
	filters := gqlfilter.MustNew(newTestRegistry())
	users, err := gqlfilter.Set[string](filters, "User", noSearchBuilder{})
	require.NoError(t, err)

	_, err = users.Compile(map[string]any{"bio__search": map[string]any{"value": "x"}})
	require.Error(t, err)
	assert.True(t, gqlfilter.IsTypeMismatch(err))
}
