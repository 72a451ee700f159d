package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FilterMap converts a generated filter model into the map form the
// parser consumes. The conversion goes through the json tags of the
// model, so only set fields survive. Numbers come back as json.Number,
// which the lookup coercion accepts.
func FilterMap(model any) (map[string]any, error) {
	if model == nil {
		return nil, nil
	}
	raw, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("gqlfilter: encode filter model: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("gqlfilter: decode filter model: %w", err)
	}
	return m, nil
}
