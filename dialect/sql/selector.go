package sql

import "strconv"

// Selector builds SELECT statements. It covers the surface the filter
// backends need: projection, joins, predicates and pagination.
type Selector struct {
	dialect string
	columns []string
	raw     bool
	table   string
	as      string
	joins   []join
	where   *Predicate
	orderBy []order
	limit   *int
	offset  *int
}

type join struct {
	table string
	as    string
	on    *Predicate
}

type order struct {
	column string
	desc   bool
}

// Select returns a selector projecting the given columns. An empty list
// selects "*".
func Select(columns ...string) *Selector {
	return &Selector{columns: columns}
}

// SelectRaw is like Select but writes the columns verbatim, for
// expressions such as "COUNT(*)" or "1".
func SelectRaw(exprs ...string) *Selector {
	return &Selector{columns: exprs, raw: true}
}

// Dialect sets the dialect the statement renders for.
func (s *Selector) Dialect(name string) *Selector {
	s.dialect = name
	return s
}

// From sets the table the statement selects from.
func (s *Selector) From(table string) *Selector {
	s.table = table
	return s
}

// As aliases the selected table.
func (s *Selector) As(alias string) *Selector {
	s.as = alias
	return s
}

// C returns the given column qualified with the table alias, if set.
func (s *Selector) C(column string) string {
	if s.as != "" {
		return s.as + "." + column
	}
	if s.table != "" {
		return s.table + "." + column
	}
	return column
}

// Join adds an inner join on the given table.
func (s *Selector) Join(table, alias string, on *Predicate) *Selector {
	s.joins = append(s.joins, join{table: table, as: alias, on: on})
	return s
}

// Where conjoins p with the current predicate. A nil predicate leaves the
// statement unconstrained.
func (s *Selector) Where(p *Predicate) *Selector {
	switch {
	case p == nil:
	case s.where == nil:
		s.where = p
	default:
		s.where = And(s.where, p)
	}
	return s
}

// P returns the selector's current predicate.
func (s *Selector) P() *Predicate { return s.where }

// OrderBy appends an ascending order term.
func (s *Selector) OrderBy(column string) *Selector {
	s.orderBy = append(s.orderBy, order{column: column})
	return s
}

// OrderByDesc appends a descending order term.
func (s *Selector) OrderByDesc(column string) *Selector {
	s.orderBy = append(s.orderBy, order{column: column, desc: true})
	return s
}

// Limit bounds the number of returned rows.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

// Offset skips the first n rows.
func (s *Selector) Offset(n int) *Selector {
	s.offset = &n
	return s
}

// Query renders the statement and its arguments.
func (s *Selector) Query() (string, []any, error) {
	b := NewBuilder(s.dialect)
	s.render(b)
	q, args := b.Query()
	return q, args, b.Err()
}

// render writes the statement into b. Subqueries render into their
// parent's builder so placeholder numbering stays global.
func (s *Selector) render(b *Builder) {
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	}
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		if s.raw {
			b.WriteString(c)
		} else {
			b.Ident(c)
		}
	}
	b.WriteString(" FROM ").Ident(s.table)
	if s.as != "" {
		b.WriteString(" AS ").Ident(s.as)
	}
	for _, j := range s.joins {
		b.WriteString(" JOIN ").Ident(j.table)
		if j.as != "" {
			b.WriteString(" AS ").Ident(j.as)
		}
		if j.on != nil {
			b.WriteString(" ON ")
			j.on.Render(b)
		}
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		s.where.Render(b)
	}
	for i, o := range s.orderBy {
		if i == 0 {
			b.WriteString(" ORDER BY ")
		} else {
			b.WriteString(", ")
		}
		b.Ident(o.column)
		if o.desc {
			b.WriteString(" DESC")
		}
	}
	if s.limit != nil {
		b.WriteString(" LIMIT " + strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		b.WriteString(" OFFSET " + strconv.Itoa(*s.offset))
	}
}
