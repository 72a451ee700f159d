package sql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/gqlfilter"
	"github.com/syssam/gqlfilter/dialect"
	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// Search implements gqlfilter.SearchBuilder. Full text search predicates
// only compile for Postgres; other dialects reject them.
func (f *FilterBuilder) Search(path string, value any) (*Predicate, error) {
	if f.dialect != dialect.Postgres {
		return nil, &gqlfilter.TypeMismatchError{
			Field:  path,
			Lookup: "search",
			Reason: fmt.Sprintf("full text search requires postgres, not %s", f.dialect),
		}
	}
	segs := strings.Split(path, ".")
	return f.compile(f.entity, f.entity.Table, segs, 1, func(col string) (*Predicate, error) {
		switch v := value.(type) {
		case *filter.SearchQuery:
			return searchMatch(col, v), nil
		case *filter.SearchRank:
			return searchRank(col, v), nil
		case *filter.Trigram:
			return trigram(col, v), nil
		default:
			return nil, &gqlfilter.TypeMismatchError{
				Field:  path,
				Lookup: "search",
				Reason: fmt.Sprintf("unsupported search value %T", value),
			}
		}
	})
}

// searchMatch renders `to_tsvector(col) @@ <tsquery>`.
func searchMatch(col string, q *filter.SearchQuery) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("to_tsvector(").Ident(col).WriteString(") @@ ")
		tsquery(b, q)
	})
}

// tsquery renders a SearchQuery as a composed tsquery expression using
// the &&, || and !! tsquery operators. The value, each and child, the
// or children folded into one alternation, and the negated child form
// independent groups joined with &&, so mixing combinators keeps the
// alternatives grouped and the negation negated.
func tsquery(b *Builder, q *filter.SearchQuery) {
	groups := tsqueryGroups(q)
	if len(groups) == 1 {
		groups[0](b)
		return
	}
	b.Wrap(func(b *Builder) {
		for i, group := range groups {
			if i > 0 {
				b.WriteString(" && ")
			}
			group(b)
		}
	})
}

// tsqueryGroups collects the conjunct groups of a query.
func tsqueryGroups(q *filter.SearchQuery) []func(*Builder) {
	var groups []func(*Builder)
	if q.Value != "" {
		value := q.Value
		config := q.Config
		groups = append(groups, func(b *Builder) {
			b.WriteString("plainto_tsquery(")
			if config != nil {
				if config.IsField {
					b.Ident(config.Value).WriteString("::regconfig")
				} else {
					b.Arg(config.Value).WriteString("::regconfig")
				}
				b.WriteString(", ")
			}
			b.Arg(value).WriteString(")")
		})
	}
	for _, sub := range q.And {
		sub := sub
		groups = append(groups, func(b *Builder) { tsquery(b, sub) })
	}
	if len(q.Or) > 0 {
		ors := q.Or
		groups = append(groups, func(b *Builder) {
			if len(ors) == 1 {
				tsquery(b, ors[0])
				return
			}
			b.Wrap(func(b *Builder) {
				for i, sub := range ors {
					if i > 0 {
						b.WriteString(" || ")
					}
					tsquery(b, sub)
				}
			})
		})
	}
	if q.Not != nil {
		not := q.Not
		groups = append(groups, func(b *Builder) {
			b.WriteString("!!")
			tsquery(b, not)
		})
	}
	return groups
}

// searchRank renders a ts_rank comparison.
func searchRank(col string, r *filter.SearchRank) *Predicate {
	return P(func(b *Builder) {
		fn := "ts_rank"
		if r.CoverDensity {
			fn = "ts_rank_cd"
		}
		b.WriteString(fn + "(")
		if r.Weights != nil {
			b.Arg(weightsLiteral(r.Weights)).WriteString("::float4[], ")
		}
		b.WriteString("to_tsvector(").Ident(col).WriteString("), ")
		tsquery(b, r.Query)
		if r.Normalization != nil {
			b.WriteString(", " + strconv.Itoa(*r.Normalization))
		}
		b.WriteString(") " + cmpSymbol(r.Lookup) + " ").Arg(r.Threshold)
	})
}

// weightsLiteral renders the weights as a postgres array literal, in the
// D, C, B, A order ts_rank expects.
func weightsLiteral(w *filter.SearchRankWeights) string {
	return fmt.Sprintf("{%v,%v,%v,%v}", w.D, w.C, w.B, w.A)
}

// trigram renders a pg_trgm similarity or distance comparison.
func trigram(col string, t *filter.Trigram) *Predicate {
	return P(func(b *Builder) {
		if t.Kind == filter.TrigramDistance {
			b.Wrap(func(b *Builder) {
				b.Ident(col).WriteString(" <-> ").Arg(t.Value)
			})
		} else {
			b.WriteString("SIMILARITY(").Ident(col).WriteString(", ").Arg(t.Value).WriteString(")")
		}
		b.WriteString(" " + cmpSymbol(t.Lookup) + " ").Arg(t.Threshold)
	})
}

// cmpSymbol maps a float lookup to its SQL comparison operator.
func cmpSymbol(op filter.Op) string {
	switch op {
	case filter.OpGT:
		return ">"
	case filter.OpGTE:
		return ">="
	case filter.OpLT:
		return "<"
	case filter.OpLTE:
		return "<="
	default:
		return "="
	}
}

// TrigramSupported reports whether the pg_trgm extension is installed on
// the connected database.
func TrigramSupported(ctx context.Context, drv dialect.Driver) (bool, error) {
	if drv.Dialect() != dialect.Postgres {
		return false, nil
	}
	rows := &Rows{}
	query := "SELECT COUNT(*) FROM pg_extension WHERE extname = $1"
	if err := drv.Query(ctx, query, []any{"pg_trgm"}, rows); err != nil {
		return false, err
	}
	defer rows.Close()
	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return false, err
		}
	}
	return n > 0, rows.Err()
}

// SearchableColumns returns the searchable columns of an entity, used by
// callers that build combined search vectors.
func SearchableColumns(e *schema.Entity) []string {
	fields := e.SearchableFields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.ColumnName()
	}
	return cols
}
