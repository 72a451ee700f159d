package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlfilter/schema"
)

const schemaYAML = `
entities:
  - name: User
    table: users
    fields:
      - {name: name, kind: string}
      - {name: age, kind: int}
      - {name: status, kind: enum, values: [active, suspended]}
    relations:
      - {name: posts, target: Post, columns: [author_id], inverse: true}
  - name: Post
    table: posts
    fields:
      - {name: title, kind: string, searchable: true}
    relations:
      - {name: author, target: User, columns: [author_id], unique: true}
`

// TestLoad tests loading a registry from YAML.
func TestLoad(t *testing.T) {
	t.Parallel()

	reg, err := schema.Load(strings.NewReader(schemaYAML))
	require.NoError(t, err)

	user, ok := reg.Lookup("User")
	require.True(t, ok)
	status, ok := user.FieldByName("status")
	require.True(t, ok)
	assert.Equal(t, schema.KindEnum, status.Kind)
	assert.Equal(t, []string{"active", "suspended"}, status.Values)

	post, ok := reg.Lookup("Post")
	require.True(t, ok)
	author, ok := post.RelationByName("author")
	require.True(t, ok)
	assert.True(t, author.Unique)

	assert.Equal(t, []string{"Post", "User"}, reg.Names())
}

// TestLoadErrors tests that malformed documents fail fast.
func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		yaml   string
		errstr string
	}{
		{
			name:   "unknown key",
			yaml:   "entities:\n  - name: T\n    table: t\n    colour: red\n",
			errstr: "decode",
		},
		{
			name:   "dangling relation",
			yaml:   "entities:\n  - name: T\n    table: t\n    relations:\n      - {name: x, target: Gone, columns: [x_id]}\n",
			errstr: "unknown entity",
		},
		{
			name:   "bad kind",
			yaml:   "entities:\n  - name: T\n    table: t\n    fields:\n      - {name: x, kind: blob}\n",
			errstr: "unknown kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errstr)
		})
	}
}

// TestLoadFile tests reading a schema document from disk.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(schemaYAML), 0o644))

	reg, err := schema.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, reg.Entities(), 2)

	_, err = schema.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
