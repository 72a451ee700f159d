package schema

import "fmt"

// Kind is the logical type of a field. It determines which lookup
// operators apply to the field and how client-supplied values are coerced.
type Kind string

// Supported field kinds.
const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindTime   Kind = "time"
	KindUUID   Kind = "uuid"
	KindEnum   Kind = "enum"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindInt, KindFloat, KindBool, KindTime, KindUUID, KindEnum:
		return true
	}
	return false
}

// Numeric reports whether values of this kind are ordered numbers.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Comparable reports whether values of this kind support ordering
// lookups (gt, gte, lt, lte, range).
func (k Kind) Comparable() bool {
	switch k {
	case KindString, KindInt, KindFloat, KindTime, KindUUID:
		return true
	}
	return false
}

// Textual reports whether values of this kind support string matching
// lookups (contains, hasPrefix, hasSuffix, equalFold, ...).
func (k Kind) Textual() bool {
	return k == KindString
}

// Field describes a single filterable attribute of an entity.
type Field struct {
	// Name is the GraphQL-facing field name (camelCase by convention).
	Name string `yaml:"name"`

	// Column is the database column name. Defaults to Name when empty.
	Column string `yaml:"column,omitempty"`

	// Kind is the logical field type.
	Kind Kind `yaml:"kind"`

	// Nullable marks the column as nullable; only nullable fields accept
	// the isNull lookup.
	Nullable bool `yaml:"nullable,omitempty"`

	// Values holds the permitted values for KindEnum fields.
	Values []string `yaml:"values,omitempty"`

	// Searchable marks a string field as participating in full text
	// search lookups on backends that support them.
	Searchable bool `yaml:"searchable,omitempty"`
}

// ColumnName returns the database column for the field.
func (f *Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// Relation describes a traversable edge to another entity.
type Relation struct {
	// Name is the GraphQL-facing relation name.
	Name string `yaml:"name"`

	// Target is the name of the related entity in the registry.
	Target string `yaml:"target"`

	// Table is the join table for many-to-many relations. Empty for
	// relations joined through a foreign key column.
	Table string `yaml:"table,omitempty"`

	// Columns holds the join columns. For foreign-key relations it has a
	// single element: the owning side's foreign key column. For
	// many-to-many relations it has two: the column in Table referencing
	// this entity and the column referencing the target.
	Columns []string `yaml:"columns"`

	// Inverse reports that the foreign key lives on the target's table
	// (a has-many seen from this side).
	Inverse bool `yaml:"inverse,omitempty"`

	// Unique reports a to-one relation.
	Unique bool `yaml:"unique,omitempty"`

	// Excluded removes the relation from filtering. Traversing an
	// excluded relation in a filter path is rejected.
	Excluded bool `yaml:"excluded,omitempty"`
}

// M2M reports whether the relation is joined through a join table.
func (r *Relation) M2M() bool {
	return r.Table != ""
}

// Entity describes one filterable GraphQL type and its backing table.
type Entity struct {
	// Name is the GraphQL type name (PascalCase by convention).
	Name string `yaml:"name"`

	// Table is the database table name.
	Table string `yaml:"table"`

	// ID is the primary key column. Defaults to "id" when empty.
	ID string `yaml:"id,omitempty"`

	// Fields are the filterable attributes.
	Fields []*Field `yaml:"fields"`

	// Relations are the traversable edges.
	Relations []*Relation `yaml:"relations,omitempty"`

	fields    map[string]*Field
	relations map[string]*Relation
}

// IDColumn returns the primary key column of the entity.
func (e *Entity) IDColumn() string {
	if e.ID != "" {
		return e.ID
	}
	return "id"
}

// FieldByName returns the field with the given name, if any.
func (e *Entity) FieldByName(name string) (*Field, bool) {
	f, ok := e.fields[name]
	return f, ok
}

// RelationByName returns the relation with the given name, if any.
func (e *Entity) RelationByName(name string) (*Relation, bool) {
	r, ok := e.relations[name]
	return r, ok
}

// SearchableFields returns the fields marked searchable, in declaration order.
func (e *Entity) SearchableFields() []*Field {
	var fields []*Field
	for _, f := range e.Fields {
		if f.Searchable {
			fields = append(fields, f)
		}
	}
	return fields
}

// index builds the name lookup maps. Called by Registry on Add.
func (e *Entity) index() error {
	e.fields = make(map[string]*Field, len(e.Fields))
	e.relations = make(map[string]*Relation, len(e.Relations))
	for _, f := range e.Fields {
		if f.Name == "" {
			return fmt.Errorf("entity %q has a field with no name", e.Name)
		}
		if _, ok := e.fields[f.Name]; ok {
			return fmt.Errorf("entity %q declares field %q twice", e.Name, f.Name)
		}
		e.fields[f.Name] = f
	}
	for _, r := range e.Relations {
		if r.Name == "" {
			return fmt.Errorf("entity %q has a relation with no name", e.Name)
		}
		if _, ok := e.fields[r.Name]; ok {
			return fmt.Errorf("entity %q declares %q as both field and relation", e.Name, r.Name)
		}
		if _, ok := e.relations[r.Name]; ok {
			return fmt.Errorf("entity %q declares relation %q twice", e.Name, r.Name)
		}
		e.relations[r.Name] = r
	}
	return nil
}
