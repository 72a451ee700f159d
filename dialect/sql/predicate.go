package sql

import (
	"strings"

	"github.com/syssam/gqlfilter/dialect"
)

// Predicate is a deferred WHERE clause fragment. Fragments render into a
// shared Builder so placeholder numbering stays consistent across nested
// subqueries.
type Predicate struct {
	fns []func(*Builder)
}

// P returns a predicate from the given render functions.
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// Append adds a render function to the predicate and returns it.
func (p *Predicate) Append(f func(*Builder)) *Predicate {
	p.fns = append(p.fns, f)
	return p
}

// Render writes the predicate into b.
func (p *Predicate) Render(b *Builder) {
	for _, f := range p.fns {
		f(b)
	}
}

// Query renders the predicate on its own for the given dialect.
func (p *Predicate) Query(dialect string) (string, []any, error) {
	b := NewBuilder(dialect)
	p.Render(b)
	q, args := b.Query()
	return q, args, b.Err()
}

// binary renders `col <op> arg`.
func binary(col, op string, v any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" " + op + " ").Arg(v)
	})
}

// EQ returns a `col = v` predicate.
func EQ(col string, v any) *Predicate { return binary(col, "=", v) }

// NEQ returns a `col <> v` predicate.
func NEQ(col string, v any) *Predicate { return binary(col, "<>", v) }

// GT returns a `col > v` predicate.
func GT(col string, v any) *Predicate { return binary(col, ">", v) }

// GTE returns a `col >= v` predicate.
func GTE(col string, v any) *Predicate { return binary(col, ">=", v) }

// LT returns a `col < v` predicate.
func LT(col string, v any) *Predicate { return binary(col, "<", v) }

// LTE returns a `col <= v` predicate.
func LTE(col string, v any) *Predicate { return binary(col, "<=", v) }

// In returns a `col IN (vs...)` predicate.
func In(col string, vs ...any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IN ").Wrap(func(b *Builder) {
			b.Args(vs...)
		})
	})
}

// NotIn returns a `col NOT IN (vs...)` predicate.
func NotIn(col string, vs ...any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" NOT IN ").Wrap(func(b *Builder) {
			b.Args(vs...)
		})
	})
}

// ColumnsEQ returns a `col1 = col2` predicate comparing two columns,
// used for correlated subquery joins.
func ColumnsEQ(col1, col2 string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col1).WriteString(" = ").Ident(col2)
	})
}

// Between returns a `col >= lo AND col <= hi` predicate.
func Between(col string, lo, hi any) *Predicate {
	return And(GTE(col, lo), LTE(col, hi))
}

// IsNull returns a `col IS NULL` predicate.
func IsNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NULL")
	})
}

// NotNull returns a `col IS NOT NULL` predicate.
func NotNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NOT NULL")
	})
}

// like returns a `col LIKE pattern` predicate, lowering both sides when
// fold is set. SQLite has no default escape character, so escaped
// patterns carry an explicit ESCAPE clause there.
func like(col, pattern string, fold bool) *Predicate {
	return P(func(b *Builder) {
		if fold {
			b.WriteString("LOWER(").Ident(col).WriteString(") LIKE ").Arg(pattern)
		} else {
			b.Ident(col).WriteString(" LIKE ").Arg(pattern)
		}
		if b.Dialect() == dialect.SQLite && strings.Contains(pattern, `\`) {
			b.WriteString(` ESCAPE '\'`)
		}
	})
}

// escapeLike escapes the LIKE wildcard characters in a literal value.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Contains returns a substring match predicate.
func Contains(col, sub string) *Predicate {
	return like(col, "%"+escapeLike(sub)+"%", false)
}

// ContainsFold returns a case insensitive substring match predicate.
func ContainsFold(col, sub string) *Predicate {
	return like(col, "%"+escapeLike(strings.ToLower(sub))+"%", true)
}

// HasPrefix returns a prefix match predicate.
func HasPrefix(col, prefix string) *Predicate {
	return like(col, escapeLike(prefix)+"%", false)
}

// HasSuffix returns a suffix match predicate.
func HasSuffix(col, suffix string) *Predicate {
	return like(col, "%"+escapeLike(suffix), false)
}

// EqualFold returns a case insensitive equality predicate.
func EqualFold(col, v string) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("LOWER(").Ident(col).WriteString(") = ").Arg(strings.ToLower(v))
	})
}

// And returns the conjunction of the given predicates. A single predicate
// passes through unchanged.
func And(ps ...*Predicate) *Predicate {
	if len(ps) == 1 {
		return ps[0]
	}
	return P(func(b *Builder) {
		b.Wrap(func(b *Builder) {
			for i, p := range ps {
				if i > 0 {
					b.WriteString(" AND ")
				}
				p.Render(b)
			}
		})
	})
}

// Or returns the disjunction of the given predicates. A single predicate
// passes through unchanged.
func Or(ps ...*Predicate) *Predicate {
	if len(ps) == 1 {
		return ps[0]
	}
	return P(func(b *Builder) {
		b.Wrap(func(b *Builder) {
			for i, p := range ps {
				if i > 0 {
					b.WriteString(" OR ")
				}
				p.Render(b)
			}
		})
	})
}

// Not negates the given predicate.
func Not(p *Predicate) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("NOT ")
		b.Wrap(func(b *Builder) {
			p.Render(b)
		})
	})
}

// Exists returns an `EXISTS (SELECT ...)` predicate over the selector.
// The subquery renders into the enclosing builder, keeping postgres
// placeholder numbering consistent.
func Exists(s *Selector) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("EXISTS ")
		b.Wrap(func(b *Builder) {
			s.render(b)
		})
	})
}
