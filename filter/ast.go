package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a node of a filter expression tree. It is a closed interface:
// the only implementations are And, Or, Not and Pred.
//
// Trees are request-scoped and owned top-down; a child belongs to exactly
// one parent and the whole tree is discarded after translation.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// And is the conjunction of one or more child expressions.
type And struct {
	Exprs []Expr
}

func (And) isExpr() {}

// Or is the disjunction of one or more child expressions.
type Or struct {
	Exprs []Expr
}

func (Or) isExpr() {}

// Not negates exactly one child expression.
type Not struct {
	Expr Expr
}

func (Not) isExpr() {}

// Pred is a single field lookup: a field path, an operator and a value.
// Path holds the traversal segments; every segment except the last names a
// relation, the last names a field.
type Pred struct {
	Path  []string
	Op    Op
	Value any
}

func (Pred) isExpr() {}

// NewAnd returns the conjunction of the given expressions.
func NewAnd(exprs ...Expr) *And { return &And{Exprs: exprs} }

// NewOr returns the disjunction of the given expressions.
func NewOr(exprs ...Expr) *Or { return &Or{Exprs: exprs} }

// NewNot returns the negation of expr.
func NewNot(expr Expr) *Not { return &Not{Expr: expr} }

// NewPred returns a single-field predicate. The path is given in its
// separator-free segment form.
func NewPred(field string, op Op, value any) *Pred {
	return &Pred{Path: []string{field}, Op: op, Value: value}
}

// String renders the conjunction as `a && b && c`.
func (e *And) String() string {
	return joinChildren(e.Exprs, " && ")
}

// String renders the disjunction as `(a || b || c)`.
func (e *Or) String() string {
	if len(e.Exprs) == 1 {
		return e.Exprs[0].String()
	}
	return "(" + joinChildren(e.Exprs, " || ") + ")"
}

// String renders the negation as `!(child)`.
func (e *Not) String() string {
	if e.Expr == nil {
		return "!()"
	}
	return "!(" + e.Expr.String() + ")"
}

// String renders the predicate, e.g. `age > 18` or `contains(name, "jo")`.
func (e *Pred) String() string {
	field := strings.Join(e.Path, ".")
	switch {
	case e.Op == OpIsNull:
		if v, ok := e.Value.(bool); ok && !v {
			return field + " != nil"
		}
		return field + " == nil"
	case e.Op.Textual():
		return fmt.Sprintf("%s(%s, %s)", snakeOp(e.Op), field, formatValue(e.Value))
	case e.Op.Search():
		return fmt.Sprintf("%s(%s, %s)", snakeOp(e.Op), field, formatValue(e.Value))
	default:
		return fmt.Sprintf("%s %s %s", field, e.Op.symbol(), formatValue(e.Value))
	}
}

// snakeOp renders camelCase operator names in function form, e.g.
// containsFold -> contains_fold.
func snakeOp(op Op) string {
	var sb strings.Builder
	for _, r := range string(op) {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('_')
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func joinChildren(exprs []Expr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	case fmt.Stringer:
		return v.String()
	case []any:
		parts := make([]string, len(v))
		for i := range v {
			parts[i] = formatValue(v[i])
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
