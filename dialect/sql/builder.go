package sql

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/syssam/gqlfilter/dialect"
)

// Builder is the low-level SQL string builder. It tracks the dialect for
// identifier quoting and placeholder style, and collects bound arguments
// as the statement is written.
type Builder struct {
	sb      strings.Builder
	dialect string
	args    []any
	errs    []error
}

// NewBuilder returns a fresh builder for the given dialect.
func NewBuilder(dialect string) *Builder {
	return &Builder{dialect: dialect}
}

// Dialect returns the builder's dialect.
func (b *Builder) Dialect() string { return b.dialect }

// WriteString appends raw SQL text.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Ident appends a quoted identifier. Dotted names are quoted per part, so
// "t1.age" becomes "t1"."age".
func (b *Builder) Ident(name string) *Builder {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if i > 0 {
			b.sb.WriteByte('.')
		}
		if part == "*" {
			b.sb.WriteByte('*')
			continue
		}
		b.sb.WriteString(b.quote(part))
	}
	return b
}

// quote quotes one identifier part for the builder's dialect.
func (b *Builder) quote(part string) string {
	switch b.dialect {
	case dialect.Postgres:
		return pq.QuoteIdentifier(part)
	case dialect.MySQL:
		return "`" + strings.ReplaceAll(part, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
	}
}

// Arg appends a placeholder and binds v to it. Postgres placeholders are
// positional; everything else uses "?".
func (b *Builder) Arg(v any) *Builder {
	b.args = append(b.args, v)
	if b.dialect == dialect.Postgres {
		b.sb.WriteByte('$')
		b.sb.WriteString(strconv.Itoa(len(b.args)))
		return b
	}
	b.sb.WriteByte('?')
	return b
}

// Args appends a comma separated placeholder list binding all values.
func (b *Builder) Args(vs ...any) *Builder {
	for i, v := range vs {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.Arg(v)
	}
	return b
}

// Wrap writes f's output inside parentheses.
func (b *Builder) Wrap(f func(*Builder)) *Builder {
	b.sb.WriteByte('(')
	f(b)
	b.sb.WriteByte(')')
	return b
}

// AddError records an error observed while building. The first error is
// reported by Err.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns the errors collected while building, joined.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// String returns the SQL written so far.
func (b *Builder) String() string { return b.sb.String() }

// Query returns the statement and its bound arguments.
func (b *Builder) Query() (string, []any) {
	return b.sb.String(), b.args
}
