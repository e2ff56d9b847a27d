package sqldb

import "errors"

// ErrNoRows is returned by Row.Scan when the statement matched nothing.
var ErrNoRows = errors.New("sqldb: no rows in result set")

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Close() error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

// errRow satisfies Row for lazy query paths that fail before reaching
// the driver (e.g. a dead handle that cannot be reopened).
type errRow struct{ err error }

func (r errRow) Scan(_ ...any) error { return r.err }
