package intent

import (
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
)

// Field identifies the builder field a line feeds.
type Field string

// Fields recognized by the parser.
const (
	FieldColumns     Field = "columns"
	FieldTable       Field = "table"
	FieldJoin        Field = "join"
	FieldWhere       Field = "where"
	FieldGroupBy     Field = "group_by"
	FieldHaving      Field = "having"
	FieldOrderBy     Field = "order_by"
	FieldLimit       Field = "limit"
	FieldOffset      Field = "offset"
	FieldValues      Field = "values"
	FieldOnConflict  Field = "on_conflict"
	FieldSet         Field = "set"
	FieldPrimaryKey  Field = "primary_key"
	FieldOptions     Field = "options"
	FieldIfNotExists Field = "if_not_exists"
)

// Alias maps a line prefix to a field. Prefixes are matched
// case-insensitively against the start of a trimmed line.
type Alias struct {
	Prefix string
	Field  Field
	// Verbatim keeps the whole line as the value instead of the text after
	// the prefix.
	Verbatim bool
}

// Value extracts the field value from line, which must start with the
// alias prefix.
func (a Alias) Value(line string) string {
	if a.Verbatim {
		return strings.TrimSpace(line)
	}
	return strings.TrimSpace(line[len(a.Prefix):])
}

// Match reports whether line starts with the alias prefix.
func (a Alias) Match(line string) bool {
	return len(line) >= len(a.Prefix) && strings.EqualFold(line[:len(a.Prefix)], a.Prefix)
}

// Shared alias groups.
var (
	joinAliases = []Alias{
		{Prefix: "joins:", Field: FieldJoin},
		{Prefix: "join:", Field: FieldJoin},
		{Prefix: "inner join ", Field: FieldJoin, Verbatim: true},
		{Prefix: "left outer join ", Field: FieldJoin, Verbatim: true},
		{Prefix: "left join ", Field: FieldJoin, Verbatim: true},
		{Prefix: "right outer join ", Field: FieldJoin, Verbatim: true},
		{Prefix: "right join ", Field: FieldJoin, Verbatim: true},
		{Prefix: "full outer join ", Field: FieldJoin, Verbatim: true},
		{Prefix: "full join ", Field: FieldJoin, Verbatim: true},
		{Prefix: "cross join ", Field: FieldJoin, Verbatim: true},
		{Prefix: "join ", Field: FieldJoin, Verbatim: true},
	}

	whereAliases = []Alias{
		{Prefix: "where:", Field: FieldWhere},
		{Prefix: "where ", Field: FieldWhere},
		{Prefix: "conditions:", Field: FieldWhere},
		{Prefix: "condition:", Field: FieldWhere},
		{Prefix: "filter:", Field: FieldWhere},
	}

	columnAliases = []Alias{
		{Prefix: "columns:", Field: FieldColumns},
		{Prefix: "column:", Field: FieldColumns},
		{Prefix: "fields:", Field: FieldColumns},
	}
)

// SelectAliases is the alias table for SELECT intents.
var SelectAliases = concat(
	[]Alias{
		{Prefix: "select:", Field: FieldColumns},
		{Prefix: "select ", Field: FieldColumns},
	},
	columnAliases,
	[]Alias{
		{Prefix: "from:", Field: FieldTable},
		{Prefix: "from ", Field: FieldTable},
		{Prefix: "table:", Field: FieldTable},
	},
	joinAliases,
	whereAliases,
	[]Alias{
		{Prefix: "group by:", Field: FieldGroupBy},
		{Prefix: "group by ", Field: FieldGroupBy},
		{Prefix: "groupby:", Field: FieldGroupBy},
		{Prefix: "group:", Field: FieldGroupBy},
		{Prefix: "having:", Field: FieldHaving},
		{Prefix: "having ", Field: FieldHaving},
		{Prefix: "order by:", Field: FieldOrderBy},
		{Prefix: "order by ", Field: FieldOrderBy},
		{Prefix: "orderby:", Field: FieldOrderBy},
		{Prefix: "order:", Field: FieldOrderBy},
		{Prefix: "sort:", Field: FieldOrderBy},
		{Prefix: "limit:", Field: FieldLimit},
		{Prefix: "limit ", Field: FieldLimit},
		{Prefix: "offset:", Field: FieldOffset},
		{Prefix: "offset ", Field: FieldOffset},
	},
)

// InsertAliases is the alias table for INSERT intents.
var InsertAliases = concat(
	[]Alias{
		{Prefix: "table:", Field: FieldTable},
		{Prefix: "into:", Field: FieldTable},
		{Prefix: "insert into ", Field: FieldTable},
	},
	columnAliases,
	[]Alias{
		{Prefix: "values:", Field: FieldValues},
		{Prefix: "value:", Field: FieldValues},
		{Prefix: "row:", Field: FieldValues},
		{Prefix: "on conflict:", Field: FieldOnConflict},
		{Prefix: "conflict:", Field: FieldOnConflict},
		{Prefix: "on duplicate:", Field: FieldOnConflict},
		{Prefix: "on conflict ", Field: FieldOnConflict, Verbatim: true},
		{Prefix: "on duplicate key update ", Field: FieldOnConflict, Verbatim: true},
	},
)

// UpdateAliases is the alias table for UPDATE intents.
var UpdateAliases = concat(
	[]Alias{
		{Prefix: "table:", Field: FieldTable},
		{Prefix: "update ", Field: FieldTable},
		{Prefix: "set:", Field: FieldSet},
		{Prefix: "set ", Field: FieldSet},
	},
	joinAliases,
	whereAliases,
)

// DeleteAliases is the alias table for DELETE intents.
var DeleteAliases = concat(
	[]Alias{
		{Prefix: "table:", Field: FieldTable},
		{Prefix: "from:", Field: FieldTable},
		{Prefix: "delete from ", Field: FieldTable},
		{Prefix: "from ", Field: FieldTable},
	},
	joinAliases,
	whereAliases,
)

// CreateAliases is the alias table for CREATE TABLE intents.
var CreateAliases = concat(
	[]Alias{
		{Prefix: "table:", Field: FieldTable},
		{Prefix: "create table ", Field: FieldTable},
	},
	columnAliases,
	[]Alias{
		{Prefix: "primary key:", Field: FieldPrimaryKey},
		{Prefix: "pk:", Field: FieldPrimaryKey},
		{Prefix: "options:", Field: FieldOptions},
		{Prefix: "if not exists", Field: FieldIfNotExists},
	},
)

// Aliases returns a copy of the alias table for kind, or nil when the kind
// has no intent grammar.
func Aliases(kind core.QueryType) []Alias {
	var table []Alias
	switch kind {
	case core.QuerySelect:
		table = SelectAliases
	case core.QueryInsert:
		table = InsertAliases
	case core.QueryUpdate:
		table = UpdateAliases
	case core.QueryDelete:
		table = DeleteAliases
	case core.QueryCreate:
		table = CreateAliases
	default:
		return nil
	}
	return append([]Alias(nil), table...)
}

// Classify finds the first alias in table matching line.
func Classify(line string, table []Alias) (Alias, bool) {
	for _, a := range table {
		if a.Match(line) {
			return a, true
		}
	}
	return Alias{}, false
}

func concat(groups ...[]Alias) []Alias {
	var out []Alias
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
