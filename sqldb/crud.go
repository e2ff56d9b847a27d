package sqldb

import (
	"context"
	"fmt"
	"strings"
)

// ColumnDef pairs a column name with its raw type/constraint text for
// CreateTable. The name is identifier-validated; the definition text is
// trusted, like every other clause fragment in this tier.
type ColumnDef struct {
	Name string
	Def  string
}

// SelectOpts narrows a Select. The zero value selects everything.
// Where/OrderBy are raw clause fragments (identifiers trusted, values
// bound through Args with '?' placeholders).
type SelectOpts struct {
	Columns []string
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
}

// The operations below form the soft-fail tier: driver errors are
// logged together with the statement text and reported through a
// false/zero/empty return value instead of propagating.

// CreateTable creates table with the given column definitions.
func (a *Access) CreateTable(ctx context.Context, table string, columns []ColumnDef, ifNotExists bool) bool {
	if !a.validIdent(table) || len(columns) == 0 {
		return false
	}
	defs := make([]string, len(columns))
	for i, col := range columns {
		if !a.validIdent(col.Name) {
			return false
		}
		defs[i] = col.Name + " " + col.Def
	}
	var clause string
	if ifNotExists {
		clause = "IF NOT EXISTS "
	}
	query := fmt.Sprintf("CREATE TABLE %s%s (%s)", clause, table, strings.Join(defs, ", "))
	if _, err := a.Execute(ctx, query); err != nil {
		return false
	}
	if err := a.Commit(ctx); err != nil {
		return false
	}
	a.log.Info().Str("table", table).Msg("table created")
	return true
}

// DropTable removes table.
func (a *Access) DropTable(ctx context.Context, table string, ifExists bool) bool {
	if !a.validIdent(table) {
		return false
	}
	var clause string
	if ifExists {
		clause = "IF EXISTS "
	}
	if _, err := a.Execute(ctx, "DROP TABLE "+clause+table); err != nil {
		return false
	}
	if err := a.Commit(ctx); err != nil {
		return false
	}
	a.log.Info().Str("table", table).Msg("table dropped")
	return true
}

// Insert adds one record and returns the new row id. ok is false when
// the statement failed (the id is then meaningless). Engines without
// LastInsertId fetch the id with a RETURNING clause on the dialect's
// key column; for pgsql the table's primary key must be named "id".
func (a *Access) Insert(ctx context.Context, table string, rec Record, orReplace bool) (id int64, ok bool) {
	if !a.validIdent(table) || len(rec) == 0 {
		return 0, false
	}
	cols := sortedColumns(rec)
	for _, name := range cols {
		if !a.validIdent(name) {
			return 0, false
		}
	}
	args, err := valuesFor(rec, cols)
	if err != nil {
		a.log.Error().Err(err).Str("table", table).Msg("insert failed")
		return 0, false
	}
	dialect := a.client.Dialect()
	head, err := dialect.InsertHead(orReplace)
	if err != nil {
		a.log.Error().Err(err).Str("table", table).Msg("insert failed")
		return 0, false
	}
	query := fmt.Sprintf("%s %s (%s) VALUES (%s)",
		head, table, strings.Join(cols, ", "),
		Placeholders(dialect.PlaceholderPrefix(), len(cols)))

	if idCol := dialect.ReturningIDColumn(); idCol != "" {
		id, ok = a.insertReturning(ctx, query, idCol, args)
	} else {
		res, execErr := a.Execute(ctx, query, args...)
		if execErr != nil {
			return 0, false
		}
		if id, err = res.LastInsertId(); err != nil {
			a.log.Error().Err(err).Str("sql", query).Msg("last insert id failed")
			return 0, false
		}
		ok = true
	}
	if !ok {
		return 0, false
	}
	if err := a.Commit(ctx); err != nil {
		return 0, false
	}
	a.log.Info().Str("table", table).Int64("id", id).Msg("record inserted")
	return id, true
}

// insertReturning runs the insert with a RETURNING clause for engines
// without LastInsertId.
func (a *Access) insertReturning(ctx context.Context, query string, idCol string, args []any) (int64, bool) {
	query += " RETURNING " + idCol
	if err := a.Connect(ctx); err != nil {
		return 0, false
	}
	tx, err := a.beginIfNeeded(ctx)
	if err != nil {
		return 0, false
	}
	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("insert failed")
		return 0, false
	}
	return id, true
}

// InsertMany adds records as one scoped transaction: either every row
// commits or none do. The column set is taken from the first record and
// every record must supply exactly those columns. An empty batch is a
// successful no-op.
func (a *Access) InsertMany(ctx context.Context, table string, records []Record, orReplace bool) bool {
	if len(records) == 0 {
		return true
	}
	if !a.validIdent(table) {
		return false
	}
	cols := sortedColumns(records[0])
	for _, name := range cols {
		if !a.validIdent(name) {
			return false
		}
	}
	dialect := a.client.Dialect()
	head, err := dialect.InsertHead(orReplace)
	if err != nil {
		a.log.Error().Err(err).Str("table", table).Msg("insert many failed")
		return false
	}
	query := fmt.Sprintf("%s %s (%s) VALUES (%s)",
		head, table, strings.Join(cols, ", "),
		Placeholders(dialect.PlaceholderPrefix(), len(cols)))

	txErr := a.Transaction(ctx, func(ctx context.Context) error {
		for _, rec := range records {
			args, err := valuesFor(rec, cols)
			if err != nil {
				return err
			}
			if _, err := a.Execute(ctx, query, args...); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		a.log.Error().Err(txErr).Str("table", table).Msg("insert many failed")
		return false
	}
	a.log.Info().Str("table", table).Int("records", len(records)).Msg("records inserted")
	return true
}

// Select returns the matching rows, or an empty result on failure.
func (a *Access) Select(ctx context.Context, table string, opts SelectOpts) []RowMap {
	if !a.validIdent(table) {
		return nil
	}
	colList := "*"
	if len(opts.Columns) > 0 {
		for _, name := range opts.Columns {
			if !a.validIdent(name) {
				return nil
			}
		}
		colList = strings.Join(opts.Columns, ", ")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", colList, table)
	if opts.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(opts.Where)
	}
	if opts.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(opts.OrderBy)
	}
	if opts.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", opts.Limit)
	}
	if opts.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", opts.Offset)
	}
	query := ReplaceStaticPlaceholders(b.String(), a.client.Dialect().PlaceholderPrefix())

	rows, err := a.Query(ctx, query, opts.Args...)
	if err != nil {
		return nil
	}
	defer func() {
		_ = rows.Close()
	}()
	out, err := CollectRows(rows)
	if err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("select failed")
		return nil
	}
	a.log.Debug().Str("table", table).Int("rows", len(out)).Msg("selected")
	return out
}

// SelectOne returns the first matching row. ok is false when nothing
// matched or the statement failed.
func (a *Access) SelectOne(ctx context.Context, table string, opts SelectOpts) (RowMap, bool) {
	opts.Limit = 1
	rows := a.Select(ctx, table, opts)
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}

// Update sets the record's columns on every row matching where and
// returns the affected-row count (0 on failure). Record values bind
// first, then whereArgs.
func (a *Access) Update(ctx context.Context, table string, rec Record, where string, whereArgs ...any) int64 {
	if !a.validIdent(table) || len(rec) == 0 {
		return 0
	}
	cols := sortedColumns(rec)
	sets := make([]string, len(cols))
	for i, name := range cols {
		if !a.validIdent(name) {
			return 0
		}
		sets[i] = name + " = ?"
	}
	args, err := valuesFor(rec, cols)
	if err != nil {
		a.log.Error().Err(err).Str("table", table).Msg("update failed")
		return 0
	}
	args = append(args, whereArgs...)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), where)
	query = ReplaceStaticPlaceholders(query, a.client.Dialect().PlaceholderPrefix())

	res, err := a.Execute(ctx, query, args...)
	if err != nil {
		return 0
	}
	if err := a.Commit(ctx); err != nil {
		return 0
	}
	affected, err := res.RowsAffected()
	if err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("rows affected failed")
		return 0
	}
	a.log.Info().Str("table", table).Int64("rows", affected).Msg("records updated")
	return affected
}

// Delete removes every row matching where and returns the affected-row
// count (0 on failure).
func (a *Access) Delete(ctx context.Context, table string, where string, args ...any) int64 {
	if !a.validIdent(table) {
		return 0
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", table, where)
	query = ReplaceStaticPlaceholders(query, a.client.Dialect().PlaceholderPrefix())

	res, err := a.Execute(ctx, query, args...)
	if err != nil {
		return 0
	}
	if err := a.Commit(ctx); err != nil {
		return 0
	}
	affected, err := res.RowsAffected()
	if err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("rows affected failed")
		return 0
	}
	a.log.Info().Str("table", table).Int64("rows", affected).Msg("records deleted")
	return affected
}

// Count returns the number of rows matching where (all rows when where
// is empty), 0 on failure.
func (a *Access) Count(ctx context.Context, table string, where string, args ...any) int64 {
	if !a.validIdent(table) {
		return 0
	}
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	query = ReplaceStaticPlaceholders(query, a.client.Dialect().PlaceholderPrefix())

	var count int64
	if err := a.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		a.log.Error().Err(err).Str("sql", query).Msg("count failed")
		return 0
	}
	return count
}

// Exists reports whether any row matches where.
func (a *Access) Exists(ctx context.Context, table string, where string, args ...any) bool {
	return a.Count(ctx, table, where, args...) > 0
}

func (a *Access) validIdent(name string) bool {
	if ValidIdentifier(name) {
		return true
	}
	a.log.Error().Str("identifier", name).Msg("invalid SQL identifier")
	return false
}
