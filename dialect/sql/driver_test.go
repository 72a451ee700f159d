package sql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlfilter/dialect"
)

func TestDriverQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)
	defer drv.Close()

	mock.ExpectQuery(`SELECT "id" FROM "users" WHERE "users"."age" > \$1`).
		WithArgs(int64(18)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectClose()

	query, args, err := Select("id").
		Dialect(dialect.Postgres).
		From("users").
		Where(GT("users.age", int64(18))).
		Query()
	require.NoError(t, err)

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), query, args, rows))
	var ids []int
	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	assert.Equal(t, []int{1, 2}, ids)
	require.NoError(t, drv.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 3))

	var res Result
	require.NoError(t, drv.Exec(context.Background(), "UPDATE users SET active = false", []any{}, &res))
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestDriverTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	rows := &Rows{}
	require.NoError(t, tx.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverArgTypes(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)

	err = drv.Query(context.Background(), "SELECT 1", "bad", &Rows{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect []any")

	err = drv.Query(context.Background(), "SELECT 1", []any{}, "bad")
	require.Error(t, err)

	err = drv.Exec(context.Background(), "SELECT 1", []any{}, "bad")
	require.Error(t, err)
}

func TestDriverDialect(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{dialect.Postgres, dialect.Postgres},
		{dialect.MySQL, dialect.MySQL},
		{"sqlite3", dialect.SQLite},
		{"pgx", "pgx"},
	}
	for _, tt := range tests {
		drv := Driver{dialect: tt.driver}
		assert.Equal(t, tt.want, drv.Dialect())
	}
}

func TestNormalizeMySQL(t *testing.T) {
	dsn, err := normalizeMySQL("root:pass@tcp(localhost:3306)/app")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")

	_, err = normalizeMySQL("://not-a-dsn")
	require.Error(t, err)
}

// TestTrigramSupportedProbe checks the extension probe against a mocked
// catalog.
func TestTrigramSupportedProbe(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := OpenDB(dialect.Postgres, db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM pg_extension").
		WithArgs("pg_trgm").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := TrigramSupported(context.Background(), drv)
	require.NoError(t, err)
	assert.True(t, ok)

	sqlite := OpenDB(dialect.SQLite, db)
	ok, err = TrigramSupported(context.Background(), sqlite)
	require.NoError(t, err)
	assert.False(t, ok)
}
