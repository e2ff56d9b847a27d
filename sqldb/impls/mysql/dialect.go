package mysql

import "github.com/zeptools/sqlkit/sqldb"

type dialect struct{}

// Ensure mysql.dialect implements sqldb.Dialect interface
var _ sqldb.Dialect = dialect{}

func (dialect) Name() string { return Type }

func (dialect) PlaceholderPrefix() byte { return '?' }

func (dialect) InsertHead(orReplace bool) (string, error) {
	if orReplace {
		// Closest native equivalent of an insert-or-replace.
		return "REPLACE INTO", nil
	}
	return "INSERT INTO", nil
}

func (dialect) ReturningIDColumn() string { return "" }

func (dialect) TablesQuery() (string, []any) {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE()", nil
}

func (dialect) TableInfoQuery(table string) (string, []any) {
	return "SELECT column_name AS name, data_type AS type, is_nullable, column_key, column_default " +
		"FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? " +
		"ORDER BY ordinal_position", []any{table}
}

func (dialect) BackupQuery(_ string) (string, []any, error) {
	return "", nil, sqldb.ErrUnsupported("backup", Type)
}

func (dialect) VacuumQuery() (string, error) {
	return "", sqldb.ErrUnsupported("vacuum", Type)
}
