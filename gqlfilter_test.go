package gqlfilter_test

import (
	"fmt"
	"strings"

	"github.com/syssam/gqlfilter/filter"
	"github.com/syssam/gqlfilter/schema"
)

// newTestRegistry builds the entity graph shared by the package tests:
// users with pets and a vault relation excluded from filtering, pets with
// an inverse owner edge and a many-to-many tags edge.
func newTestRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.MustAdd(&schema.Entity{
		Name:  "User",
		Table: "users",
		Fields: []*schema.Field{
			{Name: "name", Kind: schema.KindString},
			{Name: "age", Kind: schema.KindInt},
			{Name: "city", Kind: schema.KindString},
			{Name: "score", Kind: schema.KindFloat, Nullable: true},
			{Name: "active", Kind: schema.KindBool},
			{Name: "createdAt", Column: "created_at", Kind: schema.KindTime},
			{Name: "uid", Kind: schema.KindUUID},
			{Name: "role", Kind: schema.KindEnum, Values: []string{"admin", "member"}},
			{Name: "bio", Kind: schema.KindString, Searchable: true},
		},
		Relations: []*schema.Relation{
			{Name: "pets", Target: "Pet", Columns: []string{"owner_id"}, Inverse: true},
			{Name: "vault", Target: "Vault", Columns: []string{"vault_id"}, Unique: true, Excluded: true},
		},
	})
	reg.MustAdd(&schema.Entity{
		Name:  "Pet",
		Table: "pets",
		Fields: []*schema.Field{
			{Name: "name", Kind: schema.KindString},
			{Name: "age", Kind: schema.KindInt},
		},
		Relations: []*schema.Relation{
			{Name: "owner", Target: "User", Columns: []string{"owner_id"}, Unique: true},
			{Name: "tags", Target: "Tag", Table: "pet_tags", Columns: []string{"pet_id", "tag_id"}},
		},
	})
	reg.MustAdd(&schema.Entity{
		Name:  "Tag",
		Table: "tags",
		Fields: []*schema.Field{
			{Name: "label", Kind: schema.KindString},
		},
	})
	reg.MustAdd(&schema.Entity{
		Name:  "Vault",
		Table: "vaults",
		Fields: []*schema.Field{
			{Name: "secret", Kind: schema.KindString},
		},
	})
	return reg
}

// exprBuilder compiles expressions to their rendered string form. It keeps
// backend concerns out of the parser and translator tests.
type exprBuilder struct{}

func (exprBuilder) Field(path string, op filter.Op, value any) (string, error) {
	p := filter.Pred{Path: strings.Split(path, "."), Op: op, Value: value}
	return p.String(), nil
}

func (exprBuilder) And(ps ...string) string { return strings.Join(ps, " && ") }

func (exprBuilder) Or(ps ...string) string { return "(" + strings.Join(ps, " || ") + ")" }

func (exprBuilder) Not(p string) string { return "!(" + p + ")" }

func (exprBuilder) Separator() string { return "." }

func (exprBuilder) Search(path string, value any) (string, error) {
	return fmt.Sprintf("search(%s, %v)", path, value), nil
}
