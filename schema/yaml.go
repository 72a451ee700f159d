package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the YAML shape of a schema file.
type document struct {
	Entities []*Entity `yaml:"entities"`
}

// Load reads a registry from a YAML document:
//
//	entities:
//	  - name: User
//	    table: users
//	    fields:
//	      - {name: name, kind: string}
//	      - {name: age, kind: int}
//	    relations:
//	      - {name: posts, target: Post, columns: [author_id], inverse: true}
//	  - name: Post
//	    table: posts
//	    fields:
//	      - {name: title, kind: string, searchable: true}
//
// The returned registry is fully validated.
func Load(rd io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	reg := NewRegistry()
	for _, e := range doc.Entities {
		if err := reg.Add(e); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return reg, nil
}

// LoadFile reads a registry from the YAML file at path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schema: open %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
