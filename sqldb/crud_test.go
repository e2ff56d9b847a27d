package sqldb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/sqlkit/sqldb"
)

func TestCreateTableListedOnce(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	tables := a.Tables(ctx)
	occurrences := 0
	for _, name := range tables {
		if name == "users" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences, "new table appears exactly once")

	info := a.TableInfo(ctx, "users")
	require.Len(t, info, 3)
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	assert.True(t, a.DropTable(ctx, "users", false))
	assert.NotContains(t, a.Tables(ctx), "users")
	assert.True(t, a.DropTable(ctx, "users", true), "IF EXISTS makes a second drop succeed")
	assert.False(t, a.DropTable(ctx, "users", false), "dropping a missing table soft-fails")
}

func TestInsertThenSelectOne(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	id, ok := a.Insert(ctx, "users", sqldb.Record{"name": "A", "age": 20}, false)
	require.True(t, ok)
	require.Positive(t, id)

	row, found := a.SelectOne(ctx, "users", sqldb.SelectOpts{
		Where: "id = ?",
		Args:  []any{id},
	})
	require.True(t, found)
	assert.Equal(t, "A", row["name"])
	assert.EqualValues(t, 20, row["age"])
}

func TestInsertOrReplace(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	id, ok := a.Insert(ctx, "users", sqldb.Record{"name": "A", "age": 20}, false)
	require.True(t, ok)

	_, ok = a.Insert(ctx, "users", sqldb.Record{"id": id, "name": "A", "age": 99}, true)
	require.True(t, ok)

	assert.EqualValues(t, 1, a.Count(ctx, "users", ""))
	row, found := a.SelectOne(ctx, "users", sqldb.SelectOpts{Where: "id = ?", Args: []any{id}})
	require.True(t, found)
	assert.EqualValues(t, 99, row["age"])
}

func TestInsertManyIncreasesCountByN(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	records := []sqldb.Record{
		{"name": "A", "age": 20},
		{"name": "B", "age": 30},
		{"name": "C", "age": 40},
	}
	require.True(t, a.InsertMany(ctx, "users", records, false))
	assert.EqualValues(t, len(records), a.Count(ctx, "users", ""))

	assert.True(t, a.InsertMany(ctx, "users", nil, false), "empty batch is a successful no-op")
	assert.EqualValues(t, len(records), a.Count(ctx, "users", ""))
}

func TestInsertManyAbortsAtomically(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	// The second record violates NOT NULL; no partial rows may survive.
	records := []sqldb.Record{
		{"name": "A", "age": 20},
		{"name": nil, "age": 30},
	}
	assert.False(t, a.InsertMany(ctx, "users", records, false))
	assert.EqualValues(t, 0, a.Count(ctx, "users", ""))

	// Non-uniform keys abort the batch the same way.
	records = []sqldb.Record{
		{"name": "A", "age": 20},
		{"age": 30},
	}
	assert.False(t, a.InsertMany(ctx, "users", records, false))
	assert.EqualValues(t, 0, a.Count(ctx, "users", ""))
}

func TestUpdateScenario(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	_, ok := a.Insert(ctx, "users", sqldb.Record{"name": "A", "age": 20}, false)
	require.True(t, ok)
	assert.EqualValues(t, 1, a.Count(ctx, "users", ""))

	affected := a.Update(ctx, "users", sqldb.Record{"age": 21}, "name = ?", "A")
	assert.EqualValues(t, 1, affected)

	row, found := a.SelectOne(ctx, "users", sqldb.SelectOpts{Where: "name = ?", Args: []any{"A"}})
	require.True(t, found)
	assert.EqualValues(t, 21, row["age"])
}

func TestDeleteNonMatchingLeavesRows(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	require.True(t, a.InsertMany(ctx, "users", []sqldb.Record{
		{"name": "A", "age": 20},
		{"name": "B", "age": 30},
	}, false))

	assert.EqualValues(t, 0, a.Delete(ctx, "users", "name = ?", "missing"))
	assert.EqualValues(t, 2, a.Count(ctx, "users", ""))

	assert.EqualValues(t, 1, a.Delete(ctx, "users", "name = ?", "A"))
	assert.EqualValues(t, 1, a.Count(ctx, "users", ""))
}

func TestCountAndExists(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	require.True(t, a.InsertMany(ctx, "users", []sqldb.Record{
		{"name": "A", "age": 20},
		{"name": "B", "age": 30},
	}, false))

	assert.EqualValues(t, 2, a.Count(ctx, "users", ""))
	assert.EqualValues(t, 1, a.Count(ctx, "users", "age >= ?", 30))
	assert.True(t, a.Exists(ctx, "users", "name = ?", "A"))
	assert.False(t, a.Exists(ctx, "users", "name = ?", "Z"))
}

func TestSelectOrderLimitOffset(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	require.True(t, a.InsertMany(ctx, "users", []sqldb.Record{
		{"name": "A", "age": 20},
		{"name": "B", "age": 30},
		{"name": "C", "age": 40},
	}, false))

	order := sqldb.OrderByClause([]sqldb.OrderBy{
		{Column: sqldb.NewColumnOrPanic("age"), Desc: true},
	})
	rows := a.Select(ctx, "users", sqldb.SelectOpts{
		Columns: []string{"name", "age"},
		OrderBy: order,
		Limit:   2,
		Offset:  1,
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0]["name"])
	assert.Equal(t, "A", rows[1]["name"])
}

func TestSelectEmptyOnNoMatchOrError(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	assert.Empty(t, a.Select(ctx, "users", sqldb.SelectOpts{Where: "age > ?", Args: []any{100}}))
	assert.Empty(t, a.Select(ctx, "missing_table", sqldb.SelectOpts{}), "error is swallowed into an empty result")

	_, found := a.SelectOne(ctx, "users", sqldb.SelectOpts{Where: "age > ?", Args: []any{100}})
	assert.False(t, found)
}

func TestInvalidIdentifiersSoftFail(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	assert.False(t, a.CreateTable(ctx, "users; DROP TABLE users", []sqldb.ColumnDef{{Name: "id", Def: "INTEGER"}}, true))
	assert.False(t, a.CreateTable(ctx, "t", []sqldb.ColumnDef{{Name: "bad name", Def: "TEXT"}}, true))

	_, ok := a.Insert(ctx, "users", sqldb.Record{"age; --": 1}, false)
	assert.False(t, ok)

	assert.Nil(t, a.Select(ctx, "users where 1=1", sqldb.SelectOpts{}))
	assert.EqualValues(t, 0, a.Update(ctx, "users", sqldb.Record{"bad col": 1}, "1 = 1"))
	assert.EqualValues(t, 0, a.Delete(ctx, "bad table", "1 = 1"))
}
