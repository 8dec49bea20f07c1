package query

import "github.com/leapstack-labs/querykit/pkg/core"

// SelectBuilder is the intermediate form of a SELECT statement.
type SelectBuilder struct {
	Select  []string // output expressions; empty renders *
	From    string
	Joins   []string // full join clauses, rendered verbatim
	Where   []string // AND-combined predicates
	GroupBy []string
	Having  []string // AND-combined predicates
	OrderBy []string // entries may carry ASC/DESC
	Limit   string   // optional; rendered from its leading integer or as NaN
	Offset  string   // optional; rendered from its leading integer or as NaN
}

// Kind implements Builder.
func (b *SelectBuilder) Kind() core.QueryType { return core.QuerySelect }

// Render implements Builder.
func (b *SelectBuilder) Render(r Renderer) (string, error) {
	var c clauses

	cols := []string{"*"}
	if len(b.Select) > 0 {
		cols = r.mapList(b.Select, r.Column)
	}
	c.addList("SELECT", cols, ", ")
	c.add("FROM", r.Ident(b.From))
	c.add(b.Joins...)
	c.addList("WHERE", b.Where, " AND ")
	c.addList("GROUP BY", r.mapList(b.GroupBy, r.Ident), ", ")
	c.addList("HAVING", b.Having, " AND ")
	c.addList("ORDER BY", r.mapList(b.OrderBy, r.OrderTerm), ", ")

	if b.Limit != "" {
		c.add("LIMIT", countValue(b.Limit))
	}
	if b.Offset != "" {
		c.add("OFFSET", countValue(b.Offset))
	}
	return c.String(), nil
}
