package filter

// Normalize returns a simplified expression that is logically equivalent
// to expr:
//
//   - double negation is removed: !!p becomes p
//   - single-child connectives collapse: and(p) becomes p
//   - directly nested connectives of the same operator are flattened:
//     and(a, and(b, c)) becomes and(a, b, c)
//
// Child order is preserved throughout, so normalization is deterministic
// and the printed form of equal inputs is identical. A nil expression (the
// identity filter) normalizes to nil.
func Normalize(expr Expr) Expr {
	switch e := expr.(type) {
	case nil:
		return nil
	case *And:
		children := flatten[*And](e.Exprs, func(x *And) []Expr { return x.Exprs })
		if len(children) == 1 {
			return children[0]
		}
		return &And{Exprs: children}
	case *Or:
		children := flatten[*Or](e.Exprs, func(x *Or) []Expr { return x.Exprs })
		if len(children) == 1 {
			return children[0]
		}
		return &Or{Exprs: children}
	case *Not:
		child := Normalize(e.Expr)
		if inner, ok := child.(*Not); ok {
			return inner.Expr
		}
		return &Not{Expr: child}
	default:
		return expr
	}
}

// flatten normalizes each child and splices children of the same connective
// type into the parent's child list.
func flatten[T Expr](exprs []Expr, children func(T) []Expr) []Expr {
	out := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		n := Normalize(e)
		if same, ok := n.(T); ok {
			out = append(out, children(same)...)
			continue
		}
		out = append(out, n)
	}
	return out
}
