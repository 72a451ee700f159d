package graphql

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/gqlfilter/filter"
)

var titleCaser = cases.Title(language.English)

// lookupDescription returns the doc string attached to a lookup field.
func lookupDescription(op filter.Op) string {
	switch op {
	case filter.OpEQ:
		return "Match values equal to the given value."
	case filter.OpNEQ:
		return "Match values not equal to the given value."
	case filter.OpGT:
		return "Match values greater than the given value."
	case filter.OpGTE:
		return "Match values greater than or equal to the given value."
	case filter.OpLT:
		return "Match values less than the given value."
	case filter.OpLTE:
		return "Match values less than or equal to the given value."
	case filter.OpIn:
		return "Match values contained in the given list."
	case filter.OpNotIn:
		return "Match values not contained in the given list."
	case filter.OpIsNull:
		return "Match null (true) or non-null (false) values."
	case filter.OpRange:
		return "Match values between the two given bounds, inclusive."
	case filter.OpContains:
		return "Match values containing the given substring."
	case filter.OpContainsFold:
		return "Match values containing the given substring, ignoring case."
	case filter.OpHasPrefix:
		return "Match values starting with the given prefix."
	case filter.OpHasSuffix:
		return "Match values ending with the given suffix."
	case filter.OpEqualFold:
		return "Match values equal to the given value, ignoring case."
	case filter.OpSearch:
		return "Match values by full text search."
	case filter.OpSearchRank:
		return "Match values by full text search rank."
	case filter.OpTrigram:
		return "Match values by trigram similarity or distance."
	default:
		return ""
	}
}

// fieldDescription returns the doc string attached to an entity's filter
// field.
func fieldDescription(entity, field string) string {
	return fmt.Sprintf("Filter by the %s field of %s.", field, titleCaser.String(entity))
}

// relationDescription returns the doc string attached to a relation
// filter field.
func relationDescription(relation, target string) string {
	return fmt.Sprintf("Filter by related %s through the %s edge.", titleCaser.String(target), relation)
}

// enumValueDescription returns the doc string attached to a generated
// enum value.
func enumValueDescription(value string) string {
	return titleCaser.String(value) + "."
}
