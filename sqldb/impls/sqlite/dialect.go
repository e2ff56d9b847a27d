package sqlite

import "github.com/zeptools/sqlkit/sqldb"

type dialect struct{}

// Ensure sqlite.dialect implements sqldb.Dialect interface
var _ sqldb.Dialect = dialect{}

func (dialect) Name() string { return Type }

func (dialect) PlaceholderPrefix() byte { return '?' }

func (dialect) InsertHead(orReplace bool) (string, error) {
	if orReplace {
		return "INSERT OR REPLACE INTO", nil
	}
	return "INSERT INTO", nil
}

func (dialect) ReturningIDColumn() string { return "" }

func (dialect) TablesQuery() (string, []any) {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'", nil
}

func (dialect) TableInfoQuery(table string) (string, []any) {
	// PRAGMA takes no bound parameters; the caller validated the name.
	return "PRAGMA table_info(" + table + ")", nil
}

func (dialect) BackupQuery(path string) (string, []any, error) {
	return "VACUUM INTO ?", []any{path}, nil
}

func (dialect) VacuumQuery() (string, error) {
	return "VACUUM", nil
}
