package sqldb

import "context"

type Handle interface {
	// Exec executes SQL statements like INSERT, UPDATE, DELETE.
	Exec(ctx context.Context, query string, args ...any) (Result, error)

	QueryRows(ctx context.Context, query string, args ...any) (Rows, error) // Eager. Fail upfront on statement execution
	QueryRow(ctx context.Context, query string, args ...any) Row            // Lazy. only fails at Scan()
}
