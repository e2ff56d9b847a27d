package sqldb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/sqlkit/sqldb"
)

func TestConnectCloseLifecycle(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)

	require.NoError(t, a.Connect(ctx))
	require.NoError(t, a.Connect(ctx), "connect is reusable")
	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "close is idempotent")

	// The layer reopens after close.
	require.NoError(t, a.Connect(ctx))
	createUsersTable(t, a)
}

func TestConnectReopensDeadHandle(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)
	_, ok := a.Insert(ctx, "users", sqldb.Record{"name": "A", "age": 20}, false)
	require.True(t, ok)

	// Kill the handle directly; the layer still believes it is open.
	require.NoError(t, a.Client().Close())

	require.NoError(t, a.Connect(ctx), "failed liveness probe triggers a reopen")
	assert.EqualValues(t, 1, a.Count(ctx, "users", ""), "committed state survives the reopen")
}

func TestExecuteAndCommit(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	_, err := a.Execute(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", "A", 20)
	require.NoError(t, err)
	require.NoError(t, a.Commit(ctx))

	var count int64
	require.NoError(t, a.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count))
	assert.EqualValues(t, 1, count)
}

func TestRollbackDiscardsScope(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	_, err := a.Execute(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", "A", 20)
	require.NoError(t, err)
	require.NoError(t, a.Rollback(ctx))

	assert.EqualValues(t, 0, a.Count(ctx, "users", ""))
}

func TestCommitRollbackWithoutScope(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	require.NoError(t, a.Connect(ctx))

	assert.NoError(t, a.Commit(ctx), "commit with no active scope is a no-op")
	assert.NoError(t, a.Rollback(ctx), "rollback with no active scope is a no-op")
}

func TestExecuteMany(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	affected, err := a.ExecuteMany(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", [][]any{
		{"A", 20},
		{"B", 30},
		{"C", 40},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, affected)
	require.NoError(t, a.Commit(ctx))
	assert.EqualValues(t, 3, a.Count(ctx, "users", ""))
}

func TestTransactionCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	err := a.Transaction(ctx, func(ctx context.Context) error {
		if _, err := a.Execute(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", "A", 20); err != nil {
			return err
		}
		_, err := a.Execute(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", "B", 30)
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, a.Count(ctx, "users", ""))
}

func TestTransactionRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	boom := errors.New("boom")
	err := a.Transaction(ctx, func(ctx context.Context) error {
		if _, err := a.Execute(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", "A", 20); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom, "caller observes the original failure")
	assert.EqualValues(t, 0, a.Count(ctx, "users", ""), "table state identical to before the scope")
}

func TestSessionRollsBackAndCloses(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	boom := errors.New("boom")
	err := a.Session(ctx, func(ctx context.Context) error {
		if _, err := a.Execute(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", "A", 20); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The handle was closed; the layer reopens on next use and the
	// uncommitted insert is gone.
	assert.EqualValues(t, 0, a.Count(ctx, "users", ""))
}

func TestQueryRowNoRows(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)
	createUsersTable(t, a)

	var name string
	err := a.QueryRow(ctx, "SELECT name FROM users WHERE id = ?", 42).Scan(&name)
	assert.ErrorIs(t, err, sqldb.ErrNoRows)
}

func TestExecuteErrorPropagates(t *testing.T) {
	ctx := context.Background()
	a := testAccess(t)

	_, err := a.Execute(ctx, "INSERT INTO missing_table (x) VALUES (?)", 1)
	assert.Error(t, err, "raw execute propagates driver errors")
}
