package graphql

import (
	"bytes"

	"github.com/vektah/gqlparser/v2/formatter"
)

// SDL renders the generated definitions as GraphQL schema language. The
// output is stable across runs and suitable for checking into a repo
// next to the rest of the schema.
func (g *Generator) SDL() string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(g.SchemaDocument())
	return buf.String()
}
