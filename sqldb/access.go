// Package sqldb provides a relational data access layer over pluggable
// engine clients (sqlite, mysql, pgsql under impls/).
//
// Operations come in two tiers. The lifecycle and raw statement methods
// (Connect, Close, Execute, ExecuteMany, Query, Commit, Rollback) log
// and propagate driver errors. The table convenience methods (Insert,
// Select, Update, ...) log driver errors and report failure through
// their return value instead — callers of that tier cannot distinguish
// "no rows" from "query failed" without consulting the log.
package sqldb

import (
	"context"

	"github.com/rs/zerolog"
)

// Access owns one database client and provides statement execution, a
// scoped transaction, and table convenience operations.
//
// An Access instance holds a single handle and performs no internal
// locking; callers issuing concurrent operations against the same
// instance must synchronize externally or accept engine-level locking.
type Access struct {
	client Client
	log    zerolog.Logger
	tx     Tx // active transaction scope, nil when none
	opened bool
}

func NewAccess(client Client, logger zerolog.Logger) *Access {
	return &Access{
		client: client,
		log: logger.With().
			Str("component", "sqldb").
			Str("db", client.Conf().Type).
			Logger(),
	}
}

// Client exposes the underlying engine client.
func (a *Access) Client() Client { return a.client }

// Connect ensures the handle is open and alive, reopening it when the
// liveness probe fails. An active transaction scope counts as proof of
// life (probing through the driver could contend with the scope's
// connection). Driver errors are logged and propagated.
func (a *Access) Connect(ctx context.Context) error {
	if a.opened {
		if a.tx != nil {
			return nil
		}
		if err := a.client.Ping(ctx); err == nil {
			return nil
		}
		// Dead handle: drop it and open a fresh one.
		_ = a.client.Close()
		a.opened = false
	}
	if err := a.client.Init(); err != nil {
		a.log.Error().Err(err).Msg("connect failed")
		return err
	}
	if err := a.client.Open(ctx); err != nil {
		a.log.Error().Err(err).Msg("connect failed")
		return err
	}
	a.opened = true
	a.log.Info().Str("dsn", a.client.DSN()).Msg("connected")
	return nil
}

// Close releases the handle. A pending transaction scope is rolled back
// first, matching the engine's behavior for a handle closed mid-scope.
// Calling Close on an already-closed layer is a no-op.
func (a *Access) Close() error {
	if !a.opened {
		return nil
	}
	if a.tx != nil {
		if err := a.tx.Rollback(context.Background()); err != nil {
			a.log.Error().Err(err).Msg("rollback on close failed")
		}
		a.tx = nil
	}
	a.opened = false
	if err := a.client.Close(); err != nil {
		a.log.Error().Err(err).Msg("close failed")
		return err
	}
	a.log.Info().Msg("connection closed")
	return nil
}

// Session runs fn with the layer as a managed resource: the connection
// is opened on entry; a failure exit rolls back the pending scope; the
// handle is always closed afterwards.
func (a *Access) Session(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := a.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()
	if err := fn(ctx); err != nil {
		if rbErr := a.Rollback(ctx); rbErr != nil {
			a.log.Error().Err(rbErr).Msg("rollback on session exit failed")
		}
		return err
	}
	return nil
}

func (a *Access) beginIfNeeded(ctx context.Context) (Tx, error) {
	if a.tx != nil {
		return a.tx, nil
	}
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("begin transaction failed")
		return nil, err
	}
	a.tx = tx
	return tx, nil
}

// Execute runs one statement inside the active transaction scope,
// beginning one if none is active. Values are bound by the driver;
// the SQL text may contain caller-assembled identifiers.
func (a *Access) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	if err := a.Connect(ctx); err != nil {
		return nil, err
	}
	tx, err := a.beginIfNeeded(ctx)
	if err != nil {
		return nil, err
	}
	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("execute failed")
		return nil, err
	}
	a.log.Debug().Str("sql", query).Msg("executed")
	return result, nil
}

// ExecuteMany applies the same statement to each parameter set in
// sequence and returns the total affected-row count. A failure aborts
// the batch and propagates; no partial-success reporting.
func (a *Access) ExecuteMany(ctx context.Context, query string, argsList [][]any) (int64, error) {
	if err := a.Connect(ctx); err != nil {
		return 0, err
	}
	tx, err := a.beginIfNeeded(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, args := range argsList {
		result, err := tx.Exec(ctx, query, args...)
		if err != nil {
			a.log.Error().Err(err).Str("sql", query).Msg("execute many failed")
			return total, err
		}
		if n, err := result.RowsAffected(); err == nil {
			total += n
		}
	}
	a.log.Debug().Str("sql", query).Int("batch", len(argsList)).Msg("executed many")
	return total, nil
}

// Query runs a select-style statement, inside the active transaction
// scope when one exists (uncommitted writes stay visible to it).
func (a *Access) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	if err := a.Connect(ctx); err != nil {
		return nil, err
	}
	var (
		rows Rows
		err  error
	)
	if a.tx != nil {
		rows, err = a.tx.Query(ctx, query, args...)
	} else {
		rows, err = a.client.Handle().QueryRows(ctx, query, args...)
	}
	if err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("query failed")
		return nil, err
	}
	return rows, nil
}

// QueryRow runs a single-row select. Errors surface at Scan.
func (a *Access) QueryRow(ctx context.Context, query string, args ...any) Row {
	if err := a.Connect(ctx); err != nil {
		return errRow{err: err}
	}
	if a.tx != nil {
		return a.tx.QueryRow(ctx, query, args...)
	}
	return a.client.Handle().QueryRow(ctx, query, args...)
}

// Commit ends the active transaction scope. Calling Commit with no
// active scope is a no-op.
func (a *Access) Commit(ctx context.Context) error {
	if a.tx == nil {
		return nil
	}
	tx := a.tx
	a.tx = nil
	if err := tx.Commit(ctx); err != nil {
		a.log.Error().Err(err).Msg("commit failed")
		return err
	}
	a.log.Debug().Msg("transaction committed")
	return nil
}

// Rollback discards the active transaction scope. Calling Rollback with
// no active scope is a no-op.
func (a *Access) Rollback(ctx context.Context) error {
	if a.tx == nil {
		return nil
	}
	tx := a.tx
	a.tx = nil
	if err := tx.Rollback(ctx); err != nil {
		a.log.Error().Err(err).Msg("rollback failed")
		return err
	}
	a.log.Debug().Msg("transaction rolled back")
	return nil
}

// Transaction runs fn as one scoped transaction: the scope begins with
// the first statement fn executes, commits on normal return and rolls
// back when fn fails, re-returning fn's error. When the rollback itself
// fails, the rollback error supersedes the original one; the original
// failure is still logged. Nested scopes share the active transaction —
// there is no savepoint isolation.
func (a *Access) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := a.Connect(ctx); err != nil {
		return err
	}
	if err := fn(ctx); err != nil {
		a.log.Error().Err(err).Msg("transaction failed, rolling back")
		if rbErr := a.Rollback(ctx); rbErr != nil {
			return rbErr
		}
		return err
	}
	return a.Commit(ctx)
}
