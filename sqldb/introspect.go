package sqldb

import "context"

// Tables lists the user table names through the engine's metadata
// facilities. Soft-fail: an empty list on error.
func (a *Access) Tables(ctx context.Context) []string {
	query, args := a.client.Dialect().TablesQuery()
	rows, err := a.Query(ctx, query, args...)
	if err != nil {
		return nil
	}
	defer func() {
		_ = rows.Close()
	}()
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			a.log.Error().Err(err).Str("sql", query).Msg("list tables failed")
			return nil
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("list tables failed")
		return nil
	}
	return tables
}

// TableInfo describes the columns of table. Soft-fail: nil on error.
func (a *Access) TableInfo(ctx context.Context, table string) []RowMap {
	if !a.validIdent(table) {
		return nil
	}
	query, args := a.client.Dialect().TableInfoQuery(table)
	rows, err := a.Query(ctx, query, args...)
	if err != nil {
		return nil
	}
	defer func() {
		_ = rows.Close()
	}()
	info, err := CollectRows(rows)
	if err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("table info failed")
		return nil
	}
	return info
}
