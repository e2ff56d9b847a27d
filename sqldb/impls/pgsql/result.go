package pgsql

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeptools/sqlkit/sqldb"
)

type Result struct {
	tag pgconn.CommandTag
}

// Ensure pgsql.Result implements sqldb.Result interface
var _ sqldb.Result = (*Result)(nil)

func (r *Result) RowsAffected() (int64, error) {
	return r.tag.RowsAffected(), nil
}

// LastInsertId - PostgreSQL does not support LastInsertId; inserts go
// through `RETURNING id` instead.
func (r *Result) LastInsertId() (int64, error) {
	return 0, sqldb.ErrUnsupported("LastInsertId", Type)
}
