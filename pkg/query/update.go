package query

import (
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
)

// UpdateBuilder is the intermediate form of an UPDATE statement.
type UpdateBuilder struct {
	Table string
	Set   []string // assignments such as "status = 'done'"
	Where []string
	Joins []string
}

// Kind implements Builder.
func (b *UpdateBuilder) Kind() core.QueryType { return core.QueryUpdate }

// Render implements Builder.
func (b *UpdateBuilder) Render(r Renderer) (string, error) {
	var c clauses
	c.add("UPDATE", r.Ident(b.Table))
	c.add(b.Joins...)
	c.add("SET", strings.Join(b.Set, ", "))
	c.addList("WHERE", b.Where, " AND ")
	return c.String(), nil
}

// DeleteBuilder is the intermediate form of a DELETE statement.
type DeleteBuilder struct {
	Table string
	Where []string
	Joins []string
}

// Kind implements Builder.
func (b *DeleteBuilder) Kind() core.QueryType { return core.QueryDelete }

// Render implements Builder.
func (b *DeleteBuilder) Render(r Renderer) (string, error) {
	var c clauses
	c.add("DELETE FROM", r.Ident(b.Table))
	c.add(b.Joins...)
	c.addList("WHERE", b.Where, " AND ")
	return c.String(), nil
}
