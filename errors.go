package gqlfilter

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for filter processing. Every typed error below
// matches one of these through errors.Is, so callers can classify failures
// without knowing the concrete type.
var (
	// ErrSchemaMismatch is returned when a filter names a field or
	// relation the entity does not have.
	ErrSchemaMismatch = errors.New("gqlfilter: unknown field or relation")

	// ErrTypeMismatch is returned when a supplied value's shape does not
	// match the lookup operator's requirement.
	ErrTypeMismatch = errors.New("gqlfilter: value does not match lookup")

	// ErrMalformedFilter is returned when the filter tree itself is
	// structurally invalid.
	ErrMalformedFilter = errors.New("gqlfilter: malformed filter")

	// ErrForbiddenRelation is returned when a filter path traverses a
	// relation that is excluded from filtering.
	ErrForbiddenRelation = errors.New("gqlfilter: relation excluded from filtering")
)

// SchemaMismatchError reports a filter key that does not resolve against
// the target entity's fields or relations.
type SchemaMismatchError struct {
	Entity string // Entity being filtered
	Name   string // Unresolved field or relation name
	Path   string // Full path as written by the client, if different
}

// Error returns the error string.
func (e *SchemaMismatchError) Error() string {
	if e.Path != "" && e.Path != e.Name {
		return fmt.Sprintf("gqlfilter: %s has no field or relation %q (in %q)", e.Entity, e.Name, e.Path)
	}
	return fmt.Sprintf("gqlfilter: %s has no field or relation %q", e.Entity, e.Name)
}

// Is reports whether the target error matches SchemaMismatchError.
func (e *SchemaMismatchError) Is(err error) bool {
	return err == ErrSchemaMismatch
}

// IsSchemaMismatch returns true if the error is a SchemaMismatchError.
func IsSchemaMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrSchemaMismatch)
}

// TypeMismatchError reports a value whose shape or type does not satisfy
// the lookup operator applied to a field.
type TypeMismatchError struct {
	Field  string // Field path as written by the client
	Lookup string // Lookup operator name
	Reason string // Human-readable shape requirement
}

// Error returns the error string.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("gqlfilter: %s.%s: %s", e.Field, e.Lookup, e.Reason)
}

// Is reports whether the target error matches TypeMismatchError.
func (e *TypeMismatchError) Is(err error) bool {
	return err == ErrTypeMismatch
}

// IsTypeMismatch returns true if the error is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *TypeMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrTypeMismatch)
}

// MalformedFilterError reports a structurally invalid filter tree, such as
// an empty connective or a list supplied to the NOT operator.
type MalformedFilterError struct {
	Reason string
}

// Error returns the error string.
func (e *MalformedFilterError) Error() string {
	return fmt.Sprintf("gqlfilter: malformed filter: %s", e.Reason)
}

// Is reports whether the target error matches MalformedFilterError.
func (e *MalformedFilterError) Is(err error) bool {
	return err == ErrMalformedFilter
}

// IsMalformedFilter returns true if the error is a MalformedFilterError.
func IsMalformedFilter(err error) bool {
	if err == nil {
		return false
	}
	var e *MalformedFilterError
	return errors.As(err, &e) || errors.Is(err, ErrMalformedFilter)
}

// ForbiddenRelationError reports a filter path that traverses a relation
// whose schema marks it as excluded from filtering.
type ForbiddenRelationError struct {
	Entity   string // Entity owning the relation
	Relation string // Excluded relation name
}

// Error returns the error string.
func (e *ForbiddenRelationError) Error() string {
	return fmt.Sprintf("gqlfilter: filtering across %s.%s is not allowed", e.Entity, e.Relation)
}

// Is reports whether the target error matches ForbiddenRelationError.
func (e *ForbiddenRelationError) Is(err error) bool {
	return err == ErrForbiddenRelation
}

// IsForbiddenRelation returns true if the error is a ForbiddenRelationError.
func IsForbiddenRelation(err error) bool {
	if err == nil {
		return false
	}
	var e *ForbiddenRelationError
	return errors.As(err, &e) || errors.Is(err, ErrForbiddenRelation)
}

// GenerationError wraps a failure during input type generation. These are
// startup-time errors; a service must treat them as fatal rather than
// surfacing them to clients.
type GenerationError struct {
	Entity string // Entity being generated, if known
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *GenerationError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("gqlfilter: generating %s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("gqlfilter: generating: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsGenerationError returns true if the error is a GenerationError.
func IsGenerationError(err error) bool {
	if err == nil {
		return false
	}
	var e *GenerationError
	return errors.As(err, &e)
}

// AggregateError collects several request-level errors. Parsing stops at
// the first error by default; AggregateError exists for callers that
// validate whole documents at startup.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "gqlfilter: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("gqlfilter: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
