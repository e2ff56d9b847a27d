package sqldb

import (
	"fmt"
	"sort"
)

// Record is one table row keyed by column name, as supplied by callers
// to the insert/update operations. Column order for SQL assembly is the
// sorted key order, so the generated statement text is deterministic.
type Record map[string]any

// RowMap is one result row keyed by column name. The column order of
// the originating statement is available from Rows.Columns.
type RowMap map[string]any

func sortedColumns(rec Record) []string {
	cols := make([]string, 0, len(rec))
	for name := range rec {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}

// valuesFor extracts the values of rec in cols order. Every column must
// be present: insert-many derives cols from the first record and all
// records must share that column set.
func valuesFor(rec Record, cols []string) ([]any, error) {
	vals := make([]any, len(cols))
	for i, name := range cols {
		v, ok := rec[name]
		if !ok {
			return nil, fmt.Errorf("record missing column %q", name)
		}
		vals[i] = v
	}
	return vals, nil
}

// CollectRows drains rows into name-keyed maps and closes nothing; the
// caller owns rows.
func CollectRows(rows Rows) ([]RowMap, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []RowMap
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %v", err)
		}
		row := make(RowMap, len(cols))
		for i, name := range cols {
			row[name] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during iterating rows: %v", err)
	}
	return out, nil
}
