package sqldb

// Dialect captures the SQL-text differences between engines. Everything
// else in the layer is engine-agnostic: statements are assembled with
// '?' placeholders and rewritten through ReplaceStaticPlaceholders for
// ordinal engines.
type Dialect interface {
	Name() string

	// PlaceholderPrefix returns '?' for anonymous placeholders or the
	// ordinal prefix ('$' for pgsql).
	PlaceholderPrefix() byte

	// InsertHead returns the statement head up to (and including) INTO,
	// honoring the engine's closest or-replace form. Engines without one
	// return an error for orReplace.
	InsertHead(orReplace bool) (string, error)

	// ReturningIDColumn names the key column an insert must RETURN to
	// obtain the new row id, or "" when Result.LastInsertId serves.
	ReturningIDColumn() string

	// TablesQuery lists user table names, one per row.
	TablesQuery() (string, []any)

	// TableInfoQuery describes the columns of table. The table name has
	// already been identifier-validated by the caller.
	TableInfoQuery(table string) (string, []any)

	// BackupQuery produces an engine-native full copy to path, when the
	// engine supports it.
	BackupQuery(path string) (string, []any, error)

	VacuumQuery() (string, error)
}
