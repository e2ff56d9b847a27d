package sqldb_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/sqlkit/sqldb"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	require.True(t, a.InsertMany(ctx, "users", []sqldb.Record{
		{"name": "A", "age": 20},
		{"name": "B", "age": 30},
		{"name": "C", "age": 40},
	}, false))

	path := filepath.Join(t.TempDir(), "users.json")
	require.True(t, a.ExportJSON(ctx, "users", path))

	// The file is a human-readable JSON array of objects.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)

	require.True(t, a.DropTable(ctx, "users", false))
	createUsersTable(t, a)
	require.True(t, a.ImportJSON(ctx, "users", path, false))

	// Same row set, independent of ordering.
	rows := a.Select(ctx, "users", sqldb.SelectOpts{})
	require.Len(t, rows, 3)
	ages := map[string]int64{}
	for _, row := range rows {
		ages[row["name"].(string)] = row["age"].(int64)
	}
	assert.Equal(t, map[string]int64{"A": 20, "B": 30, "C": 40}, ages)
}

func TestExportEmptyTable(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	path := filepath.Join(t.TempDir(), "empty.json")
	require.True(t, a.ExportJSON(ctx, "users", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	assert.True(t, a.ImportJSON(ctx, "users", path, false), "empty import succeeds")
	assert.EqualValues(t, 0, a.Count(ctx, "users", ""))
}

func TestImportMissingFileSoftFails(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	assert.False(t, a.ImportJSON(ctx, "users", filepath.Join(t.TempDir(), "nope.json"), false))
}
