package graphql

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/syssam/gqlfilter/schema"
)

// Shared input type names. Lookup inputs are shared across entities;
// enum lookups are generated per enum field.
const (
	StringLookupInput     = "StringLookupInput"
	SearchableLookupInput = "SearchableStringLookupInput"
	IntLookupInput        = "IntLookupInput"
	FloatLookupInput      = "FloatLookupInput"
	BooleanLookupInput    = "BooleanLookupInput"
	TimeLookupInput       = "TimeLookupInput"
	IDLookupInput         = "IDLookupInput"

	SearchQueryInput  = "SearchQueryInput"
	SearchConfigInput = "SearchConfigInput"
	SearchRankInput   = "SearchRankInput"
	RankWeightsInput  = "SearchRankWeightsInput"
	FloatLookupsInput = "FloatLookupsInput"
	TrigramInput      = "TrigramInput"
	TrigramKindEnum   = "TrigramKind"
)

// FilterNames holds the generated type names for one entity.
type FilterNames struct {
	Node        string // GraphQL node type, e.g. "User"
	FilterInput string // filter input type, e.g. "UserFilterInput"
	Model       string // generated Go model, e.g. "UserFilter"
}

// filterNames returns the generated names for a node type.
func filterNames(node string) *FilterNames {
	return &FilterNames{
		Node:        node,
		FilterInput: fmt.Sprintf("%sFilterInput", node),
		Model:       fmt.Sprintf("%sFilter", node),
	}
}

// enumTypeName returns the GraphQL enum type generated for an enum field,
// e.g. "UserRoleEnum".
func enumTypeName(entity string, f *schema.Field) string {
	return fmt.Sprintf("%s%sEnum", entity, inflect.Camelize(f.Name))
}

// enumLookupName returns the lookup input generated for an enum field,
// e.g. "UserRoleEnumLookupInput".
func enumLookupName(entity string, f *schema.Field) string {
	return enumTypeName(entity, f) + "LookupInput"
}

// lookupInputName maps a field to its lookup input type name.
func lookupInputName(entity string, f *schema.Field) string {
	switch f.Kind {
	case schema.KindString:
		if f.Searchable {
			return SearchableLookupInput
		}
		return StringLookupInput
	case schema.KindInt:
		return IntLookupInput
	case schema.KindFloat:
		return FloatLookupInput
	case schema.KindBool:
		return BooleanLookupInput
	case schema.KindTime:
		return TimeLookupInput
	case schema.KindUUID:
		return IDLookupInput
	case schema.KindEnum:
		return enumLookupName(entity, f)
	default:
		return StringLookupInput
	}
}

// goFieldName returns the exported Go identifier for a GraphQL field
// name, e.g. "createdAt" becomes "CreatedAt".
func goFieldName(name string) string {
	return inflect.Camelize(name)
}
