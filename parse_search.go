package gqlfilter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/99designs/gqlgen/graphql"

	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// Float lookups accepted inside rank and trigram inputs.
var floatLookups = map[string]filter.Op{
	"eq":  filter.OpEQ,
	"gt":  filter.OpGT,
	"gte": filter.OpGTE,
	"lt":  filter.OpLT,
	"lte": filter.OpLTE,
}

// parseSearch parses a full text search lookup value. Search lookups only
// exist on fields marked searchable; rank and trigram inputs expand to one
// predicate per float lookup, joined with AND in sorted lookup order.
func (p *parser) parseSearch(field *schema.Field, path []string, op filter.Op, value any) (filter.Expr, error) {
	fieldPath := strings.Join(path, ".")
	if !field.Searchable {
		return nil, &TypeMismatchError{
			Field:  fieldPath,
			Lookup: string(op),
			Reason: "field is not searchable",
		}
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{
			Field:  fieldPath,
			Lookup: string(op),
			Reason: fmt.Sprintf("expects an input object, got %T", value),
		}
	}
	switch op {
	case filter.OpSearch:
		q, err := p.parseSearchQuery(fieldPath, obj, 0)
		if err != nil {
			return nil, err
		}
		return &filter.Pred{Path: append([]string(nil), path...), Op: op, Value: q}, nil
	case filter.OpSearchRank:
		return p.parseSearchRank(field, path, obj)
	default:
		return p.parseTrigram(field, path, obj)
	}
}

// parseSearchQuery parses the recursive search query input: a value with
// optional config plus and/or/not combinators.
func (p *parser) parseSearchQuery(fieldPath string, obj map[string]any, depth int) (*filter.SearchQuery, error) {
	if depth > p.cfg.MaxDepth {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("search query exceeds maximum depth %d", p.cfg.MaxDepth)}
	}
	q := &filter.SearchQuery{}
	for key, raw := range obj {
		switch key {
		case "value":
			s, ok := raw.(string)
			if !ok {
				return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(filter.OpSearch), Reason: "query value expects a string"}
			}
			q.Value = s
		case "config":
			cfg, err := p.parseSearchConfig(fieldPath, raw)
			if err != nil {
				return nil, err
			}
			q.Config = cfg
		case p.cfg.AndKey, p.cfg.OrKey:
			items, ok := raw.([]any)
			if !ok {
				return nil, &MalformedFilterError{Reason: fmt.Sprintf("search query %q expects a list", key)}
			}
			for _, item := range items {
				sub, ok := item.(map[string]any)
				if !ok {
					return nil, &MalformedFilterError{Reason: fmt.Sprintf("search query %q expects input objects", key)}
				}
				child, err := p.parseSearchQuery(fieldPath, sub, depth+1)
				if err != nil {
					return nil, err
				}
				if key == p.cfg.AndKey {
					q.And = append(q.And, child)
				} else {
					q.Or = append(q.Or, child)
				}
			}
		case p.cfg.NotKey:
			sub, ok := raw.(map[string]any)
			if !ok {
				return nil, &MalformedFilterError{Reason: fmt.Sprintf("search query %q expects a single input object", p.cfg.NotKey)}
			}
			child, err := p.parseSearchQuery(fieldPath, sub, depth+1)
			if err != nil {
				return nil, err
			}
			q.Not = child
		default:
			return nil, &SchemaMismatchError{Entity: fieldPath, Name: key, Path: fieldPath + "." + key}
		}
	}
	if q.Empty() {
		return nil, &MalformedFilterError{
			Reason: fmt.Sprintf("search query on %q must carry a value or a %q, %q or %q combinator",
				fieldPath, p.cfg.AndKey, p.cfg.OrKey, p.cfg.NotKey),
		}
	}
	return q, nil
}

func (p *parser) parseSearchConfig(fieldPath string, raw any) (*filter.SearchConfig, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(filter.OpSearch), Reason: "config expects an input object"}
	}
	cfg := &filter.SearchConfig{}
	if v, ok := obj["value"].(string); ok {
		cfg.Value = v
	}
	if cfg.Value == "" {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("search config on %q has no value", fieldPath)}
	}
	if v, ok := obj["isField"]; ok {
		b, err := graphql.UnmarshalBoolean(v)
		if err != nil {
			return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(filter.OpSearch), Reason: "config isField expects a boolean"}
		}
		cfg.IsField = b
	}
	return cfg, nil
}

// parseSearchRank parses a rank input and expands its float lookups into
// predicates.
func (p *parser) parseSearchRank(field *schema.Field, path []string, obj map[string]any) (filter.Expr, error) {
	fieldPath := strings.Join(path, ".")
	rawQuery, ok := obj["query"].(map[string]any)
	if !ok {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("rank lookup on %q requires a query", fieldPath)}
	}
	query, err := p.parseSearchQuery(fieldPath, rawQuery, 0)
	if err != nil {
		return nil, err
	}

	base := filter.SearchRank{Query: query}
	if raw, ok := obj["weights"]; ok {
		w, err := p.parseRankWeights(fieldPath, raw)
		if err != nil {
			return nil, err
		}
		base.Weights = w
	}
	if raw, ok := obj["coverDensity"]; ok {
		b, err := graphql.UnmarshalBoolean(raw)
		if err != nil {
			return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(filter.OpSearchRank), Reason: "coverDensity expects a boolean"}
		}
		base.CoverDensity = b
	}
	if raw, ok := obj["normalization"]; ok {
		n, err := graphql.UnmarshalInt(raw)
		if err != nil {
			return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(filter.OpSearchRank), Reason: "normalization expects an integer"}
		}
		base.Normalization = &n
	}

	return p.expandFloatLookups(field, path, filter.OpSearchRank, obj["lookups"], func(op filter.Op, threshold float64) any {
		r := base
		r.Lookup, r.Threshold = op, threshold
		return &r
	})
}

func (p *parser) parseRankWeights(fieldPath string, raw any) (*filter.SearchRankWeights, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(filter.OpSearchRank), Reason: "weights expects an input object"}
	}
	w := filter.DefaultSearchRankWeights()
	for key, dst := range map[string]*float64{"d": &w.D, "c": &w.C, "b": &w.B, "a": &w.A} {
		if raw, ok := obj[key]; ok {
			v, err := graphql.UnmarshalFloat(raw)
			if err != nil {
				return nil, &TypeMismatchError{Field: fieldPath, Lookup: string(filter.OpSearchRank), Reason: fmt.Sprintf("weight %q expects a float", key)}
			}
			*dst = v
		}
	}
	return &w, nil
}

// parseTrigram parses a trigram input and expands its float lookups into
// predicates.
func (p *parser) parseTrigram(field *schema.Field, path []string, obj map[string]any) (filter.Expr, error) {
	fieldPath := strings.Join(path, ".")
	value, ok := obj["value"].(string)
	if !ok || value == "" {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("trigram lookup on %q requires a string value", fieldPath)}
	}
	kind := filter.TrigramSimilarity
	if raw, ok := obj["kind"]; ok {
		s, _ := raw.(string)
		switch filter.TrigramKind(s) {
		case filter.TrigramSimilarity, filter.TrigramDistance:
			kind = filter.TrigramKind(s)
		default:
			return nil, &TypeMismatchError{
				Field:  fieldPath,
				Lookup: string(filter.OpTrigram),
				Reason: fmt.Sprintf("kind must be %q or %q", filter.TrigramSimilarity, filter.TrigramDistance),
			}
		}
	}
	return p.expandFloatLookups(field, path, filter.OpTrigram, obj["lookups"], func(op filter.Op, threshold float64) any {
		return &filter.Trigram{Kind: kind, Value: value, Lookup: op, Threshold: threshold}
	})
}

// expandFloatLookups turns a {gt: 0.3, lte: 0.9} lookup object into one
// predicate per lookup, in sorted lookup order.
func (p *parser) expandFloatLookups(field *schema.Field, path []string, op filter.Op, raw any, mk func(filter.Op, float64) any) (filter.Expr, error) {
	fieldPath := strings.Join(path, ".")
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil, &MalformedFilterError{Reason: fmt.Sprintf("%s lookup on %q requires at least one float lookup", op, fieldPath)}
	}
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]filter.Expr, 0, len(names))
	for _, name := range names {
		cmp, ok := floatLookups[name]
		if !ok {
			return nil, &SchemaMismatchError{Entity: fieldPath, Name: name, Path: fieldPath + "." + name}
		}
		threshold, err := graphql.UnmarshalFloat(obj[name])
		if err != nil {
			return nil, &TypeMismatchError{Field: fieldPath, Lookup: name, Reason: "expects a float"}
		}
		parts = append(parts, &filter.Pred{
			Path:  append([]string(nil), path...),
			Op:    op,
			Value: mk(cmp, threshold),
		})
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return &filter.And{Exprs: parts}, nil
}
