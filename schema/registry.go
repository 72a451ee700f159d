package schema

import (
	"fmt"
	"sort"
)

// Registry holds the entity schemas known to the filter layer.
//
// A Registry is assembled and validated once at startup. After Validate
// returns nil the registry must not be mutated; the request path reads it
// concurrently without locking.
type Registry struct {
	entities map[string]*Entity
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// Add registers an entity. It fails on duplicate entity names, duplicate
// field or relation names within the entity, and unknown field kinds.
func (r *Registry) Add(e *Entity) error {
	if e.Name == "" {
		return fmt.Errorf("entity has no name")
	}
	if e.Table == "" {
		return fmt.Errorf("entity %q has no table", e.Name)
	}
	if _, ok := r.entities[e.Name]; ok {
		return fmt.Errorf("entity %q registered twice", e.Name)
	}
	for _, f := range e.Fields {
		if !f.Kind.Valid() {
			return fmt.Errorf("entity %q field %q has unknown kind %q", e.Name, f.Name, f.Kind)
		}
		if f.Kind == KindEnum && len(f.Values) == 0 {
			return fmt.Errorf("entity %q enum field %q has no values", e.Name, f.Name)
		}
		if f.Searchable && f.Kind != KindString {
			return fmt.Errorf("entity %q field %q: only string fields can be searchable", e.Name, f.Name)
		}
	}
	if err := e.index(); err != nil {
		return err
	}
	r.entities[e.Name] = e
	r.order = append(r.order, e.Name)
	return nil
}

// MustAdd is like Add but panics on error. Intended for static
// registration at startup.
func (r *Registry) MustAdd(e *Entity) {
	if err := r.Add(e); err != nil {
		panic(err)
	}
}

// Lookup returns the entity with the given name.
func (r *Registry) Lookup(name string) (*Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Entities returns all registered entities in registration order.
func (r *Registry) Entities() []*Entity {
	entities := make([]*Entity, 0, len(r.order))
	for _, name := range r.order {
		entities = append(entities, r.entities[name])
	}
	return entities
}

// Names returns the registered entity names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks cross-entity consistency: every relation must point at a
// registered entity and carry a usable join description. A registry that
// fails validation must not be used; generation and filtering against it
// are undefined.
func (r *Registry) Validate() error {
	for _, name := range r.order {
		e := r.entities[name]
		for _, rel := range e.Relations {
			if _, ok := r.entities[rel.Target]; !ok {
				return fmt.Errorf("entity %q relation %q targets unknown entity %q", e.Name, rel.Name, rel.Target)
			}
			switch {
			case rel.M2M():
				if len(rel.Columns) != 2 {
					return fmt.Errorf("entity %q relation %q: join table %q needs two columns, got %d",
						e.Name, rel.Name, rel.Table, len(rel.Columns))
				}
			default:
				if len(rel.Columns) != 1 {
					return fmt.Errorf("entity %q relation %q needs one foreign key column, got %d",
						e.Name, rel.Name, len(rel.Columns))
				}
			}
		}
	}
	return nil
}
