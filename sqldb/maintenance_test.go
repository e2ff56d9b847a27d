package sqldb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/sqlkit/sqldb"
	"github.com/zeptools/sqlkit/sqldb/impls/sqlite"
)

func TestBackupProducesWorkingCopy(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)
	require.True(t, a.InsertMany(ctx, "users", []sqldb.Record{
		{"name": "A", "age": 20},
		{"name": "B", "age": 30},
	}, false))

	backupPath := filepath.Join(t.TempDir(), "backup.db")
	require.True(t, a.Backup(ctx, backupPath))

	sqlite.Register()
	client, err := sqldb.New("sqlite", &sqldb.Conf{Type: "sqlite", Path: backupPath})
	require.NoError(t, err)
	b := sqldb.NewAccess(client, zerolog.Nop())
	defer func() {
		_ = b.Close()
	}()
	assert.EqualValues(t, 2, b.Count(ctx, "users", ""))
}

func TestVacuum(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	assert.True(t, a.Vacuum(ctx))
}

func TestSize(t *testing.T) {
	a := testAccess(t)
	createUsersTable(t, a)

	assert.Positive(t, a.Size())
}
