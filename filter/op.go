package filter

// Op is a lookup operator applied to a single field.
type Op string

// Supported lookup operators. The names double as the GraphQL input field
// names generated for each lookup.
const (
	OpEQ           Op = "eq"
	OpNEQ          Op = "neq"
	OpGT           Op = "gt"
	OpGTE          Op = "gte"
	OpLT           Op = "lt"
	OpLTE          Op = "lte"
	OpIn           Op = "in"
	OpNotIn        Op = "notIn"
	OpIsNull       Op = "isNull"
	OpRange        Op = "range"
	OpContains     Op = "contains"
	OpContainsFold Op = "containsFold"
	OpHasPrefix    Op = "hasPrefix"
	OpHasSuffix    Op = "hasSuffix"
	OpEqualFold    Op = "equalFold"

	// Full text search lookups. Only generated for searchable fields and
	// only compiled by backends that support them.
	OpSearch     Op = "search"
	OpSearchRank Op = "searchRank"
	OpTrigram    Op = "trigram"
)

// DefaultOp is the lookup assumed when a bare field name is given a scalar
// value, e.g. {"city": "NYC"}.
const DefaultOp = OpEQ

// Valid reports whether op is a known lookup operator.
func (op Op) Valid() bool {
	switch op {
	case OpEQ, OpNEQ, OpGT, OpGTE, OpLT, OpLTE, OpIn, OpNotIn, OpIsNull,
		OpRange, OpContains, OpContainsFold, OpHasPrefix, OpHasSuffix,
		OpEqualFold, OpSearch, OpSearchRank, OpTrigram:
		return true
	}
	return false
}

// List reports whether the operator takes a list of values.
func (op Op) List() bool {
	return op == OpIn || op == OpNotIn || op == OpRange
}

// Ordered reports whether the operator requires an orderable field.
func (op Op) Ordered() bool {
	switch op {
	case OpGT, OpGTE, OpLT, OpLTE, OpRange:
		return true
	}
	return false
}

// Textual reports whether the operator only applies to string fields.
func (op Op) Textual() bool {
	switch op {
	case OpContains, OpContainsFold, OpHasPrefix, OpHasSuffix, OpEqualFold:
		return true
	}
	return false
}

// Search reports whether the operator is a full text search lookup.
func (op Op) Search() bool {
	return op == OpSearch || op == OpSearchRank || op == OpTrigram
}

// symbol returns the operator's textual form used by Expr.String.
func (op Op) symbol() string {
	switch op {
	case OpEQ:
		return "=="
	case OpNEQ:
		return "!="
	case OpGT:
		return ">"
	case OpGTE:
		return ">="
	case OpLT:
		return "<"
	case OpLTE:
		return "<="
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	default:
		return string(op)
	}
}
