package pgsql

import "github.com/zeptools/sqlkit/sqldb"

type dialect struct{}

// Ensure pgsql.dialect implements sqldb.Dialect interface
var _ sqldb.Dialect = dialect{}

func (dialect) Name() string { return Type }

func (dialect) PlaceholderPrefix() byte { return '$' }

func (dialect) InsertHead(orReplace bool) (string, error) {
	if orReplace {
		// No positional replace form; ON CONFLICT needs a target the
		// caller has not supplied.
		return "", sqldb.ErrUnsupported("insert or replace", Type)
	}
	return "INSERT INTO", nil
}

func (dialect) ReturningIDColumn() string { return "id" }

func (dialect) TablesQuery() (string, []any) {
	return "SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = 'public'", nil
}

func (dialect) TableInfoQuery(table string) (string, []any) {
	return "SELECT column_name AS name, data_type AS type, is_nullable, column_default " +
		"FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 " +
		"ORDER BY ordinal_position", []any{table}
}

func (dialect) BackupQuery(_ string) (string, []any, error) {
	return "", nil, sqldb.ErrUnsupported("backup", Type)
}

func (dialect) VacuumQuery() (string, error) {
	return "VACUUM", nil
}
