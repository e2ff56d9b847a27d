package sqldb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/sqlkit/sqldb"
	"github.com/zeptools/sqlkit/sqldb/impls/sqlite"
)

// testAccess builds an access layer over a throwaway sqlite database.
func testAccess(t *testing.T) *sqldb.Access {
	t.Helper()
	sqlite.Register()
	client, err := sqldb.New("sqlite", &sqldb.Conf{
		Type:       "sqlite",
		Path:       filepath.Join(t.TempDir(), "test.db"),
		TimeoutSec: 5,
	})
	require.NoError(t, err)
	a := sqldb.NewAccess(client, zerolog.Nop())
	t.Cleanup(func() {
		_ = a.Close()
	})
	return a
}

func createUsersTable(t *testing.T, a *sqldb.Access) {
	t.Helper()
	ok := a.CreateTable(context.Background(), "users", []sqldb.ColumnDef{
		{Name: "id", Def: "INTEGER PRIMARY KEY AUTOINCREMENT"},
		{Name: "name", Def: "TEXT NOT NULL"},
		{Name: "age", Def: "INTEGER"},
	}, true)
	require.True(t, ok, "create users table")
}
