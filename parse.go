package gqlfilter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// parser builds filter expression trees from decoded GraphQL filter
// arguments. It is stateless; one instance serves concurrent requests.
type parser struct {
	cfg Config
	reg *schema.Registry
}

// Parse converts a decoded filter argument into an expression tree rooted
// at the given entity. An empty input yields a nil expression, the
// identity filter.
//
// Because Go maps do not preserve client order, sibling parts of one
// object are assembled deterministically: field lookups in sorted key
// order, then the AND children, the OR children and the NOT child. Child
// order inside and/or lists is preserved as sent.
func (p *parser) Parse(entity *schema.Entity, input map[string]any) (filter.Expr, error) {
	return p.parseObject(entity, input, nil, 0)
}

func (p *parser) parseObject(entity *schema.Entity, input map[string]any, prefix []string, depth int) (filter.Expr, error) {
	if depth > p.cfg.MaxDepth {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("filter exceeds maximum depth %d", p.cfg.MaxDepth)}
	}
	if len(input) == 0 {
		return nil, nil
	}

	var parts []filter.Expr
	for _, key := range sortedFieldKeys(input, &p.cfg) {
		expr, err := p.parseEntry(entity, key, input[key], prefix, depth)
		if err != nil {
			return nil, err
		}
		parts = append(parts, expr)
	}

	if raw, ok := input[p.cfg.AndKey]; ok {
		children, err := p.parseList(entity, p.cfg.AndKey, raw, prefix, depth)
		if err != nil {
			return nil, err
		}
		parts = append(parts, children...)
	}
	if raw, ok := input[p.cfg.OrKey]; ok {
		children, err := p.parseList(entity, p.cfg.OrKey, raw, prefix, depth)
		if err != nil {
			return nil, err
		}
		parts = append(parts, &filter.Or{Exprs: children})
	}
	if raw, ok := input[p.cfg.NotKey]; ok {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, &MalformedFilterError{Reason: fmt.Sprintf("%q expects a single filter object, got %T", p.cfg.NotKey, raw)}
		}
		expr, err := p.parseObject(entity, child, prefix, depth+1)
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, &MalformedFilterError{Reason: fmt.Sprintf("%q expects a non-empty filter object", p.cfg.NotKey)}
		}
		parts = append(parts, &filter.Not{Expr: expr})
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return &filter.And{Exprs: parts}, nil
}

// parseList parses the value of an and/or key: a non-empty list of
// non-empty filter objects.
func (p *parser) parseList(entity *schema.Entity, key string, raw any, prefix []string, depth int) ([]filter.Expr, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("%q expects a list of filter objects, got %T", key, raw)}
	}
	if len(items) == 0 {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("%q expects at least one filter object", key)}
	}
	children := make([]filter.Expr, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedFilterError{Reason: fmt.Sprintf("%q[%d] expects a filter object, got %T", key, i, item)}
		}
		expr, err := p.parseObject(entity, obj, prefix, depth+1)
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, &MalformedFilterError{Reason: fmt.Sprintf("%q[%d] is an empty filter object", key, i)}
		}
		children = append(children, expr)
	}
	return children, nil
}

// parseEntry parses one non-connective key. The key may be a field name, a
// relation name, or a flat path such as "author__city__eq".
func (p *parser) parseEntry(entity *schema.Entity, key string, value any, prefix []string, depth int) (filter.Expr, error) {
	segments := []string{key}
	if p.cfg.LookupSep != "" && strings.Contains(key, p.cfg.LookupSep) {
		segments = strings.Split(key, p.cfg.LookupSep)
	}

	cur := entity
	path := append([]string(nil), prefix...)
	for i, seg := range segments {
		if rel, ok := cur.RelationByName(seg); ok {
			if rel.Excluded {
				return nil, &ForbiddenRelationError{Entity: cur.Name, Relation: rel.Name}
			}
			target, ok := p.reg.Lookup(rel.Target)
			if !ok {
				// Unreachable on a validated registry.
				return nil, &SchemaMismatchError{Entity: cur.Name, Name: rel.Target, Path: key}
			}
			path = append(path, seg)
			if i == len(segments)-1 {
				obj, ok := value.(map[string]any)
				if !ok {
					return nil, &TypeMismatchError{
						Field:  strings.Join(path, "."),
						Lookup: string(filter.DefaultOp),
						Reason: fmt.Sprintf("relation %q expects a nested filter object, got %T", seg, value),
					}
				}
				expr, err := p.parseObject(target, obj, path, depth+1)
				if err != nil {
					return nil, err
				}
				if expr == nil {
					return nil, &MalformedFilterError{Reason: fmt.Sprintf("relation %q has an empty filter object", strings.Join(path, "."))}
				}
				return expr, nil
			}
			cur = target
			continue
		}

		field, ok := cur.FieldByName(seg)
		if !ok {
			return nil, &SchemaMismatchError{Entity: cur.Name, Name: seg, Path: key}
		}
		path = append(path, seg)
		rest := segments[i+1:]
		switch len(rest) {
		case 0:
			return p.parseFieldValue(field, path, value)
		case 1:
			op := filter.Op(rest[0])
			if !op.Valid() {
				return nil, &SchemaMismatchError{Entity: cur.Name, Name: rest[0], Path: key}
			}
			return p.pred(field, path, op, value)
		default:
			return nil, &SchemaMismatchError{Entity: cur.Name, Name: rest[1], Path: key}
		}
	}
	// Unreachable: the loop always returns on the last segment.
	return nil, &SchemaMismatchError{Entity: entity.Name, Name: key, Path: key}
}

// parseFieldValue parses the value attached to a plain field key: either a
// lookup object or a scalar for the default lookup.
func (p *parser) parseFieldValue(field *schema.Field, path []string, value any) (filter.Expr, error) {
	lookups, ok := value.(map[string]any)
	if !ok {
		return p.pred(field, path, filter.DefaultOp, value)
	}
	if len(lookups) == 0 {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("field %q has an empty lookup object", strings.Join(path, "."))}
	}
	names := make([]string, 0, len(lookups))
	for name := range lookups {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]filter.Expr, 0, len(names))
	for _, name := range names {
		op := filter.Op(name)
		if !op.Valid() {
			return nil, &SchemaMismatchError{Entity: field.Name, Name: name, Path: strings.Join(path, ".") + "." + name}
		}
		expr, err := p.pred(field, path, op, lookups[name])
		if err != nil {
			return nil, err
		}
		parts = append(parts, expr)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return &filter.And{Exprs: parts}, nil
}

// pred builds the predicate(s) for one field lookup, coercing the value to
// the field's kind and the operator's shape.
func (p *parser) pred(field *schema.Field, path []string, op filter.Op, value any) (filter.Expr, error) {
	fieldPath := strings.Join(path, ".")
	if op.Search() {
		return p.parseSearch(field, path, op, value)
	}
	coerced, err := coerceValue(field, op, fieldPath, value)
	if err != nil {
		return nil, err
	}
	return &filter.Pred{Path: append([]string(nil), path...), Op: op, Value: coerced}, nil
}

// sortedFieldKeys returns the non-connective keys of input in sorted order.
func sortedFieldKeys(input map[string]any, cfg *Config) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		if cfg.reserved(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
