package sqldb

import (
	"context"
	"os"
)

// Backup writes an engine-native full copy of the database to path.
// A pending transaction scope is committed first: the copy statements
// cannot run inside a transaction.
func (a *Access) Backup(ctx context.Context, path string) bool {
	query, args, err := a.client.Dialect().BackupQuery(path)
	if err != nil {
		a.log.Error().Err(err).Msg("backup failed")
		return false
	}
	if err := a.Connect(ctx); err != nil {
		return false
	}
	if err := a.Commit(ctx); err != nil {
		return false
	}
	if _, err := a.client.Handle().Exec(ctx, query, args...); err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("backup failed")
		return false
	}
	a.log.Info().Str("path", path).Msg("database backed up")
	return true
}

// Vacuum runs the engine's compaction/reclaim call. Like Backup it
// commits any pending scope first.
func (a *Access) Vacuum(ctx context.Context) bool {
	query, err := a.client.Dialect().VacuumQuery()
	if err != nil {
		a.log.Error().Err(err).Msg("vacuum failed")
		return false
	}
	if err := a.Connect(ctx); err != nil {
		return false
	}
	if err := a.Commit(ctx); err != nil {
		return false
	}
	if _, err := a.client.Handle().Exec(ctx, query); err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("vacuum failed")
		return false
	}
	a.log.Info().Msg("database vacuumed")
	return true
}

// Size returns the database file size in bytes for file-backed engines,
// 0 otherwise or on failure.
func (a *Access) Size() int64 {
	path := a.client.Conf().Path
	if path == "" {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("stat database file failed")
		return 0
	}
	return fi.Size()
}
