package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlfilter/dialect"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name     string
		p        *Predicate
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "eq",
			p:        EQ("name", "john"),
			wantSQL:  `"name" = $1`,
			wantArgs: []any{"john"},
		},
		{
			name:     "qualified column",
			p:        GT("users.age", 18),
			wantSQL:  `"users"."age" > $1`,
			wantArgs: []any{18},
		},
		{
			name:     "in",
			p:        In("status", "active", "pending"),
			wantSQL:  `"status" IN ($1, $2)`,
			wantArgs: []any{"active", "pending"},
		},
		{
			name:     "not in",
			p:        NotIn("status", "deleted"),
			wantSQL:  `"status" NOT IN ($1)`,
			wantArgs: []any{"deleted"},
		},
		{
			name:     "between",
			p:        Between("age", 18, 65),
			wantSQL:  `("age" >= $1 AND "age" <= $2)`,
			wantArgs: []any{18, 65},
		},
		{
			name:    "is null",
			p:       IsNull("deleted_at"),
			wantSQL: `"deleted_at" IS NULL`,
		},
		{
			name:    "not null",
			p:       NotNull("email"),
			wantSQL: `"email" IS NOT NULL`,
		},
		{
			name:     "contains",
			p:        Contains("name", "john"),
			wantSQL:  `"name" LIKE $1`,
			wantArgs: []any{"%john%"},
		},
		{
			name:     "contains escapes wildcards",
			p:        Contains("name", "50%_off"),
			wantSQL:  `"name" LIKE $1`,
			wantArgs: []any{`%50\%\_off%`},
		},
		{
			name:     "contains fold",
			p:        ContainsFold("name", "John"),
			wantSQL:  `LOWER("name") LIKE $1`,
			wantArgs: []any{"%john%"},
		},
		{
			name:     "has prefix",
			p:        HasPrefix("email", "admin"),
			wantSQL:  `"email" LIKE $1`,
			wantArgs: []any{"admin%"},
		},
		{
			name:     "has suffix",
			p:        HasSuffix("email", "@corp.io"),
			wantSQL:  `"email" LIKE $1`,
			wantArgs: []any{"%@corp.io"},
		},
		{
			name:     "equal fold",
			p:        EqualFold("name", "John"),
			wantSQL:  `LOWER("name") = $1`,
			wantArgs: []any{"john"},
		},
		{
			name:     "and",
			p:        And(EQ("a", 1), EQ("b", 2)),
			wantSQL:  `("a" = $1 AND "b" = $2)`,
			wantArgs: []any{1, 2},
		},
		{
			name:     "or",
			p:        Or(EQ("a", 1), EQ("b", 2), EQ("c", 3)),
			wantSQL:  `("a" = $1 OR "b" = $2 OR "c" = $3)`,
			wantArgs: []any{1, 2, 3},
		},
		{
			name:     "single child passes through",
			p:        And(EQ("a", 1)),
			wantSQL:  `"a" = $1`,
			wantArgs: []any{1},
		},
		{
			name:     "not",
			p:        Not(EQ("a", 1)),
			wantSQL:  `NOT ("a" = $1)`,
			wantArgs: []any{1},
		},
		{
			name:    "columns eq",
			p:       ColumnsEQ("t1.owner_id", "users.id"),
			wantSQL: `"t1"."owner_id" = "users"."id"`,
		},
		{
			name: "exists",
			p: Exists(SelectRaw("1").From("pets").As("t1").
				Where(ColumnsEQ("t1.owner_id", "users.id")).
				Where(EQ("t1.name", "rex"))),
			wantSQL:  `EXISTS (SELECT 1 FROM "pets" AS "t1" WHERE ("t1"."owner_id" = "users"."id" AND "t1"."name" = $1))`,
			wantArgs: []any{"rex"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.p.Query(dialect.Postgres)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

// TestPredicateDialects checks quoting and placeholder styles per dialect.
func TestPredicateDialects(t *testing.T) {
	p := And(EQ("users.name", "john"), GT("users.age", 18))

	query, args, err := p.Query(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "(`users`.`name` = ? AND `users`.`age` > ?)", query)
	assert.Equal(t, []any{"john", 18}, args)

	query, _, err = p.Query(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `("users"."name" = ? AND "users"."age" > ?)`, query)
}

// TestLikeEscapeSQLite checks the explicit ESCAPE clause on escaped
// patterns.
func TestLikeEscapeSQLite(t *testing.T) {
	query, args, err := Contains("name", "50%").Query(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `"name" LIKE ? ESCAPE '\'`, query)
	assert.Equal(t, []any{`%50\%%`}, args)

	query, _, err = Contains("name", "rex").Query(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `"name" LIKE ?`, query)
}

func TestSelector(t *testing.T) {
	query, args, err := Select("id", "name").
		Dialect(dialect.Postgres).
		From("users").
		Where(GT("age", 18)).
		OrderBy("name").
		OrderByDesc("id").
		Limit(10).
		Offset(20).
		Query()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id", "name" FROM "users" WHERE "age" > $1 ORDER BY "name", "id" DESC LIMIT 10 OFFSET 20`, query)
	assert.Equal(t, []any{18}, args)
}

// TestSelectorNilWhere checks that a nil predicate leaves the statement
// unconstrained.
func TestSelectorNilWhere(t *testing.T) {
	query, args, err := Select().Dialect(dialect.SQLite).From("users").Where(nil).Query()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users"`, query)
	assert.Empty(t, args)
}

// TestPlaceholderNumbering checks that nested subqueries keep global
// postgres placeholder numbering.
func TestPlaceholderNumbering(t *testing.T) {
	p := And(
		EQ("users.city", "NYC"),
		Exists(SelectRaw("1").From("pets").As("t1").
			Where(ColumnsEQ("t1.owner_id", "users.id")).
			Where(EQ("t1.name", "rex"))),
		GT("users.age", 18),
	)
	query, args, err := p.Query(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t,
		`("users"."city" = $1 AND EXISTS (SELECT 1 FROM "pets" AS "t1" WHERE ("t1"."owner_id" = "users"."id" AND "t1"."name" = $2)) AND "users"."age" > $3)`,
		query,
	)
	assert.Equal(t, []any{"NYC", "rex", 18}, args)
}
