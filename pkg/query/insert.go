package query

import (
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
)

// placeholderRow marks an INSERT without parsed value rows.
const placeholderRow = "(?, ?, ?)"

// InsertBuilder is the intermediate form of an INSERT statement.
type InsertBuilder struct {
	Table      string
	Columns    []string
	Values     [][]string // one entry per row; values are literal SQL
	OnConflict string     // conflict clause, rendered verbatim
}

// Kind implements Builder.
func (b *InsertBuilder) Kind() core.QueryType { return core.QueryInsert }

// Render implements Builder.
func (b *InsertBuilder) Render(r Renderer) (string, error) {
	var c clauses
	c.add("INSERT INTO", r.Ident(b.Table))
	if len(b.Columns) > 0 {
		c.add("(" + strings.Join(r.mapList(b.Columns, r.Ident), ", ") + ")")
	}

	rows := make([]string, 0, len(b.Values))
	for _, row := range b.Values {
		rows = append(rows, "("+strings.Join(row, ", ")+")")
	}
	if len(rows) == 0 {
		rows = append(rows, placeholderRow)
	}
	c.add("VALUES", strings.Join(rows, ", "))

	if b.OnConflict != "" {
		c.add(b.OnConflict)
	}
	return c.String(), nil
}
