package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// SearchConfig selects the text search configuration for a query or
// vector. When IsField is set, Value names a column holding the
// configuration instead of a configuration name.
type SearchConfig struct {
	Value   string
	IsField bool
}

// SearchQuery is the value of an OpSearch predicate: a full text search
// query with its own recursive boolean combinators, mirroring the
// combinator keys of the filter grammar itself.
//
// A query must carry a value or at least one combinator.
type SearchQuery struct {
	Value  string
	Config *SearchConfig
	And    []*SearchQuery
	Or     []*SearchQuery
	Not    *SearchQuery
}

// Empty reports whether the query carries neither a value nor combinators.
func (q *SearchQuery) Empty() bool {
	return q.Value == "" && len(q.And) == 0 && len(q.Or) == 0 && q.Not == nil
}

// String renders the query in a compact form for logs and tests.
func (q *SearchQuery) String() string {
	var parts []string
	if q.Value != "" {
		parts = append(parts, strconv.Quote(q.Value))
	}
	for _, sub := range q.And {
		parts = append(parts, "and("+sub.String()+")")
	}
	for _, sub := range q.Or {
		parts = append(parts, "or("+sub.String()+")")
	}
	if q.Not != nil {
		parts = append(parts, "not("+q.Not.String()+")")
	}
	return strings.Join(parts, " ")
}

// SearchRankWeights are the per-label weights of a ranked search, in
// D, C, B, A order as the backend expects them.
type SearchRankWeights struct {
	D float64
	C float64
	B float64
	A float64
}

// DefaultSearchRankWeights returns the backend's documented defaults.
func DefaultSearchRankWeights() SearchRankWeights {
	return SearchRankWeights{D: 0.1, C: 0.2, B: 0.4, A: 1.0}
}

// SearchRank is the value of an OpSearchRank predicate: a float comparison
// against the rank of a full text search query. One predicate carries one
// comparison; an input with several rank lookups expands to several
// predicates.
type SearchRank struct {
	Query         *SearchQuery
	Weights       *SearchRankWeights
	CoverDensity  bool
	Normalization *int
	Lookup        Op
	Threshold     float64
}

// String implements fmt.Stringer.
func (r *SearchRank) String() string {
	return fmt.Sprintf("rank(%s) %s %v", r.Query, r.Lookup.symbol(), r.Threshold)
}

// TrigramKind selects between trigram similarity and trigram distance.
type TrigramKind string

// Trigram search kinds.
const (
	TrigramSimilarity TrigramKind = "similarity"
	TrigramDistance   TrigramKind = "distance"
)

// Trigram is the value of an OpTrigram predicate: a float comparison
// against the trigram similarity or distance between the field and Value.
type Trigram struct {
	Kind      TrigramKind
	Value     string
	Lookup    Op
	Threshold float64
}

// String implements fmt.Stringer.
func (t *Trigram) String() string {
	return fmt.Sprintf("%s(%s) %s %v", t.Kind, strconv.Quote(t.Value), t.Lookup.symbol(), t.Threshold)
}
