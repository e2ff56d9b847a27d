package sqldb

import "strings"

// OrderBy defines a validated ORDER BY item.
type OrderBy struct {
	Column Column
	Desc   bool
}

func (o OrderBy) String() string {
	if o.Desc {
		return o.Column.Name() + " DESC"
	}
	return o.Column.Name() + " ASC"
}

// OrderByClause joins multiple OrderBy items into a fragment suitable
// for SelectOpts.OrderBy.
func OrderByClause(orders []OrderBy) string {
	if len(orders) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(16 * len(orders)) // rough prealloc: " column DESC, "
	for i, o := range orders {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(o.String())
	}
	return b.String()
}
