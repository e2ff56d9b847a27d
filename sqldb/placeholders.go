package sqldb

import (
	"strconv"
	"strings"
)

var PlaceholderPrefixForDBType = map[string]byte{
	"mysql":  '?',
	"pgsql":  '$',
	"mssql":  '@',
	"oracle": ':',
	"sqlite": 0, // NOTE: sqlite supports all of them
}

// Placeholders returns n comma-joined placeholders, e.g. "?, ?, ?" or
// "$3, $4, $5" for ordinal prefixes (start defaults to 1).
func Placeholders(prefix byte, n int, start ...int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(4 * n)
	if prefix == '?' || prefix == 0 {
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('?')
		}
		return b.String()
	}
	ord := 1
	if len(start) > 0 {
		ord = start[0]
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte(prefix)
		b.WriteString(strconv.Itoa(ord))
		ord++
	}
	return b.String()
}

// ReplaceStaticPlaceholders rewrites anonymous '?' placeholders into
// numbered ones ($1, $2, ...) for ordinal engines. '??' escapes are left
// untouched.
func ReplaceStaticPlaceholders(sql string, prefix byte) string {
	if prefix == '?' || prefix == 0 {
		return sql
	}
	var builder strings.Builder
	builder.Grow(len(sql) + 8)
	cnt := 1
	i := 0
	for i < len(sql) {
		if sql[i] == '?' {
			if i+1 < len(sql) && sql[i+1] == '?' {
				builder.WriteByte('?')
				builder.WriteByte('?')
				i += 2
				continue
			}
			builder.WriteByte(prefix)
			builder.WriteString(strconv.Itoa(cnt))
			cnt++
		} else {
			builder.WriteByte(sql[i])
		}
		i++
	}
	return builder.String()
}
