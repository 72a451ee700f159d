package filter_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/gqlfilter/filter"
)

// TestExprString tests the textual rendering of expression trees.
func TestExprString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr filter.Expr
		s    string
	}{
		{
			expr: filter.NewAnd(
				filter.NewPred("name", filter.OpEQ, "a8m"),
				filter.NewPred("org", filter.OpIn, []any{"fb", "ent"}),
			),
			s: `name == "a8m" && org in ["fb","ent"]`,
		},
		{
			expr: filter.NewOr(
				filter.NewNot(filter.NewPred("name", filter.OpEQ, "mashraki")),
				filter.NewPred("org", filter.OpIn, []any{"fb", "ent"}),
			),
			s: `(!(name == "mashraki") || org in ["fb","ent"])`,
		},
		{
			expr: filter.NewAnd(
				filter.NewPred("age", filter.OpGT, 30),
				filter.NewPred("workplace", filter.OpContains, "fb"),
			),
			s: `age > 30 && contains(workplace, "fb")`,
		},
		{
			expr: filter.NewNot(filter.NewPred("score", filter.OpLT, 32.23)),
			s:    `!(score < 32.23)`,
		},
		{
			expr: filter.NewAnd(
				filter.NewPred("active", filter.OpIsNull, true),
				filter.NewPred("name", filter.OpIsNull, false),
			),
			s: `active == nil && name != nil`,
		},
		{
			expr: filter.NewOr(
				filter.NewPred("id", filter.OpNotIn, []any{1, 2, 3}),
				filter.NewPred("name", filter.OpHasSuffix, "admin"),
			),
			s: `(id not in [1,2,3] || has_suffix(name, "admin"))`,
		},
		{
			expr: &filter.Pred{Path: []string{"author", "city"}, Op: filter.OpEQ, Value: "NYC"},
			s:    `author.city == "NYC"`,
		},
		{
			expr: filter.NewPred("name", filter.OpContainsFold, "john"),
			s:    `contains_fold(name, "john")`,
		},
	}
	for i := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			assert.Equal(t, tests[i].s, tests[i].expr.String())
		})
	}
}

// TestOpProperties tests the operator classification helpers.
func TestOpProperties(t *testing.T) {
	t.Parallel()

	assert.True(t, filter.OpIn.List())
	assert.True(t, filter.OpRange.List())
	assert.False(t, filter.OpEQ.List())

	assert.True(t, filter.OpGT.Ordered())
	assert.False(t, filter.OpContains.Ordered())

	assert.True(t, filter.OpHasPrefix.Textual())
	assert.False(t, filter.OpLTE.Textual())

	assert.True(t, filter.OpSearch.Search())
	assert.True(t, filter.OpTrigram.Search())
	assert.False(t, filter.OpEQ.Search())

	assert.True(t, filter.OpEqualFold.Valid())
	assert.False(t, filter.Op("like").Valid())
}

// TestSearchValueStrings tests rendering of search predicate values.
func TestSearchValueStrings(t *testing.T) {
	t.Parallel()

	q := &filter.SearchQuery{
		Value: "cheese",
		Or:    []*filter.SearchQuery{{Value: "bread"}},
	}
	assert.Equal(t, `"cheese" or("bread")`, q.String())
	assert.False(t, q.Empty())
	assert.True(t, (&filter.SearchQuery{}).Empty())

	r := &filter.SearchRank{Query: q, Lookup: filter.OpGTE, Threshold: 0.5}
	assert.Equal(t, `rank("cheese" or("bread")) >= 0.5`, r.String())

	tr := &filter.Trigram{Kind: filter.TrigramSimilarity, Value: "jon", Lookup: filter.OpGT, Threshold: 0.3}
	assert.Equal(t, `similarity("jon") > 0.3`, tr.String())
}
