package query

import (
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
)

// CreateTableBuilder is the intermediate form of a CREATE TABLE statement.
type CreateTableBuilder struct {
	Table       string
	IfNotExists bool
	Columns     []string // column definitions: "id INT NOT NULL"
	PrimaryKey  []string
	Options     string // trailing table options, rendered verbatim
}

// Kind implements Builder.
func (b *CreateTableBuilder) Kind() core.QueryType { return core.QueryCreate }

// Render implements Builder.
func (b *CreateTableBuilder) Render(r Renderer) (string, error) {
	var c clauses
	c.add("CREATE TABLE")
	if b.IfNotExists {
		c.add("IF NOT EXISTS")
	}
	c.add(r.Ident(b.Table))

	defs := r.mapList(b.Columns, r.columnDef)
	if len(b.PrimaryKey) > 0 {
		defs = append(defs, "PRIMARY KEY ("+strings.Join(r.mapList(b.PrimaryKey, r.Ident), ", ")+")")
	}
	c.add("(" + strings.Join(defs, ", ") + ")")

	if b.Options != "" {
		c.add(b.Options)
	}
	return c.String(), nil
}

// columnDef quotes the leading column name of a definition. Table-level
// constraints are left alone.
func (r Renderer) columnDef(def string) string {
	name, rest, found := strings.Cut(def, " ")
	if !found {
		return r.Ident(def)
	}
	switch strings.ToUpper(name) {
	case "PRIMARY", "FOREIGN", "UNIQUE", "CONSTRAINT", "CHECK", "INDEX", "KEY":
		return def
	}
	return r.Ident(name) + " " + rest
}
