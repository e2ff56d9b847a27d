package sqldb

import (
	"context"
	"os"

	"github.com/goccy/go-json"
)

// ExportJSON writes every row of table to path as an indented,
// UTF-8 JSON array of column-name to value objects.
func (a *Access) ExportJSON(ctx context.Context, table string, path string) bool {
	rows := a.Select(ctx, table, SelectOpts{})
	if rows == nil {
		rows = []RowMap{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		a.log.Error().Err(err).Str("table", table).Msg("export failed")
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("export failed")
		return false
	}
	a.log.Info().Str("table", table).Str("path", path).Int("rows", len(rows)).Msg("table exported")
	return true
}

// ImportJSON bulk-inserts the records of a JSON array file produced by
// ExportJSON (or hand-written in the same shape). The batch goes
// through InsertMany, so it commits atomically. An empty file imports
// nothing and succeeds.
func (a *Access) ImportJSON(ctx context.Context, table string, path string, orReplace bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("import failed")
		return false
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("import failed")
		return false
	}
	if len(records) == 0 {
		return true
	}
	if !a.InsertMany(ctx, table, records, orReplace) {
		return false
	}
	a.log.Info().Str("table", table).Str("path", path).Int("rows", len(records)).Msg("table imported")
	return true
}
