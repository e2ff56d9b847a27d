package sqlite

import (
	"context"
	"database/sql"

	"github.com/zeptools/sqlkit/sqldb"
)

type Handle struct {
	db *sql.DB
}

// Ensure sqlite.Handle implements sqldb.Handle interface
var _ sqldb.Handle = (*Handle)(nil)

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	result, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Result{result: result}, nil
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return &Row{row: h.db.QueryRowContext(ctx, query, args...)}
}
