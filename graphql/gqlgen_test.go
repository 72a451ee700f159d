package graphql_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlfilter/graphql"
)

// TestLoadGQLGenConfig loads an existing config and accepts both the
// scalar and the list form of the schema entry.
func TestLoadGQLGenConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "gqlgen.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
schema: graph/schema.graphql
model:
  filename: graph/models_gen.go
  package: graph
models:
  DateTime:
    model: github.com/99designs/gqlgen/graphql.Time
`), 0o644))

	cfg, err := graphql.LoadGQLGenConfig(path)
	require.NoError(t, err)
	assert.Equal(t, graphql.StringList{"graph/schema.graphql"}, cfg.SchemaFilename)
	assert.Equal(t, "graph", cfg.Model.Package)
	assert.Equal(t, graphql.StringList{"github.com/99designs/gqlgen/graphql.Time"}, cfg.Models["DateTime"].Model)
}

// TestLoadGQLGenConfigMissing yields an empty config for a missing file.
func TestLoadGQLGenConfigMissing(t *testing.T) {
	t.Parallel()
	cfg, err := graphql.LoadGQLGenConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.SchemaFilename)
	assert.NotNil(t, cfg.Models)
}

// TestInjectFilterBindings adds the schema path, the autobind entry and
// the model bindings autobind cannot resolve.
func TestInjectFilterBindings(t *testing.T) {
	t.Parallel()
	gen, err := graphql.NewGenerator(newTestRegistry(t))
	require.NoError(t, err)

	cfg := &graphql.GQLGenConfig{}
	gen.InjectFilterBindings(cfg, "example.com/app/graph", "graph/filter.graphql")

	assert.Contains(t, cfg.SchemaFilename, "graph/filter.graphql")
	assert.Contains(t, cfg.Autobind, "example.com/app/graph")
	assert.Equal(t, graphql.StringList{"example.com/app/graph.UserFilter"}, cfg.Models["UserFilterInput"].Model)
	assert.Equal(t, graphql.StringList{"example.com/app/graph.StringLookup"}, cfg.Models[graphql.StringLookupInput].Model)
	assert.Equal(t, graphql.StringList{"example.com/app/graph.UserRoleEnumLookup"}, cfg.Models["UserRoleEnumLookupInput"].Model)
	assert.Equal(t, graphql.StringList{"github.com/99designs/gqlgen/graphql.Time"}, cfg.Models["Time"].Model)

	// Injection is idempotent.
	gen.InjectFilterBindings(cfg, "example.com/app/graph", "graph/filter.graphql")
	assert.Len(t, cfg.SchemaFilename, 1)
	assert.Len(t, cfg.Models["UserFilterInput"].Model, 1)
}

// TestSaveGQLGenConfig round-trips a config through disk.
func TestSaveGQLGenConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "gqlgen.yml")
	cfg := &graphql.GQLGenConfig{}
	cfg.AddSchemaPath("graph/filter.graphql")
	cfg.SetModel("Time", "github.com/99designs/gqlgen/graphql.Time")
	require.NoError(t, graphql.SaveGQLGenConfig(path, cfg))

	loaded, err := graphql.LoadGQLGenConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.SchemaFilename, loaded.SchemaFilename)
	assert.Equal(t, cfg.Models["Time"], loaded.Models["Time"])
}
