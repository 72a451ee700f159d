package gqlfilter

import (
	"fmt"
	"slices"

	"github.com/99designs/gqlgen/graphql"
	"github.com/google/uuid"

	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// coerceValue validates the operator against the field's kind and coerces
// the client-supplied value into its canonical Go representation. Scalar
// coercion reuses the gqlgen runtime unmarshalers so accepted shapes match
// what the GraphQL layer accepts elsewhere.
func coerceValue(field *schema.Field, op filter.Op, fieldPath string, value any) (any, error) {
	if op.Textual() && !field.Kind.Textual() {
		return nil, &TypeMismatchError{
			Field:  fieldPath,
			Lookup: string(op),
			Reason: fmt.Sprintf("lookup applies to string fields, not %s", field.Kind),
		}
	}
	if op.Ordered() && !field.Kind.Comparable() {
		return nil, &TypeMismatchError{
			Field:  fieldPath,
			Lookup: string(op),
			Reason: fmt.Sprintf("lookup requires an orderable field, not %s", field.Kind),
		}
	}

	switch {
	case op == filter.OpIsNull:
		if !field.Nullable {
			return nil, &TypeMismatchError{
				Field:  fieldPath,
				Lookup: string(op),
				Reason: "field is not nullable",
			}
		}
		v, err := graphql.UnmarshalBoolean(value)
		if err != nil {
			return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(op), Reason: "expects a boolean"}
		}
		return v, nil

	case op.List():
		items, ok := value.([]any)
		if !ok {
			return nil, &TypeMismatchError{
				Field:  fieldPath,
				Lookup: string(op),
				Reason: fmt.Sprintf("expects a list, got %T", value),
			}
		}
		if len(items) == 0 {
			return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(op), Reason: "expects a non-empty list"}
		}
		if op == filter.OpRange && len(items) != 2 {
			return nil, &TypeMismatchError{
				Field:  fieldPath,
				Lookup: string(op),
				Reason: fmt.Sprintf("expects exactly two bounds, got %d", len(items)),
			}
		}
		coerced := make([]any, len(items))
		for i, item := range items {
			v, err := coerceScalar(field, op, fieldPath, item)
			if err != nil {
				return nil, err
			}
			coerced[i] = v
		}
		return coerced, nil

	default:
		return coerceScalar(field, op, fieldPath, value)
	}
}

// coerceScalar coerces one scalar to the field's kind.
func coerceScalar(field *schema.Field, op filter.Op, fieldPath string, value any) (any, error) {
	mismatch := func(want string) error {
		return &TypeMismatchError{
			Field:  fieldPath,
			Lookup: string(op),
			Reason: fmt.Sprintf("expects %s, got %T", want, value),
		}
	}
	switch field.Kind {
	case schema.KindString:
		// Strict: the gqlgen unmarshaler stringifies numbers, which is
		// never what a filter means.
		s, ok := value.(string)
		if !ok {
			return nil, mismatch("a string")
		}
		return s, nil
	case schema.KindInt:
		v, err := graphql.UnmarshalInt64(value)
		if err != nil {
			return nil, mismatch("an integer")
		}
		return v, nil
	case schema.KindFloat:
		v, err := graphql.UnmarshalFloat(value)
		if err != nil {
			return nil, mismatch("a float")
		}
		return v, nil
	case schema.KindBool:
		v, err := graphql.UnmarshalBoolean(value)
		if err != nil {
			return nil, mismatch("a boolean")
		}
		return v, nil
	case schema.KindTime:
		v, err := graphql.UnmarshalTime(value)
		if err != nil {
			return nil, mismatch("an RFC3339 timestamp")
		}
		return v, nil
	case schema.KindUUID:
		s, err := graphql.UnmarshalID(value)
		if err != nil {
			return nil, mismatch("a UUID")
		}
		v, err := uuid.Parse(s)
		if err != nil {
			return nil, mismatch("a UUID")
		}
		return v, nil
	case schema.KindEnum:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch("an enum value")
		}
		if !slices.Contains(field.Values, s) {
			return nil, &TypeMismatchError{
				Field:  fieldPath,
				Lookup: string(op),
				Reason: fmt.Sprintf("%q is not a value of the enum", s),
			}
		}
		return s, nil
	default:
		return nil, mismatch("a supported scalar")
	}
}
