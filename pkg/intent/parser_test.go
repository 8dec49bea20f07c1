package intent

import (
	"testing"

	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSelect(t *testing.T, raw string) *query.SelectBuilder {
	t.Helper()
	b, err := Parse(raw, core.QuerySelect)
	require.NoError(t, err)
	sb, ok := b.(*query.SelectBuilder)
	require.True(t, ok)
	return sb
}

func TestParseSelect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *query.SelectBuilder
	}{
		{
			name: "basic",
			raw:  "table: users\ncolumns: id, name, email\nwhere: status = 'active'\norder: name ASC",
			want: &query.SelectBuilder{
				Select:  []string{"id", "name", "email"},
				From:    "users",
				Where:   []string{"status = 'active'"},
				OrderBy: []string{"name ASC"},
			},
		},
		{
			name: "keyword style aliases",
			raw:  "SELECT id, COUNT(*)\nFROM orders\nWHERE total > 10\nGROUP BY id\nHAVING COUNT(*) > 1\nORDER BY id DESC\nLIMIT 5\nOFFSET 10",
			want: &query.SelectBuilder{
				Select:  []string{"id", "COUNT(*)"},
				From:    "orders",
				Where:   []string{"total > 10"},
				GroupBy: []string{"id"},
				Having:  []string{"COUNT(*) > 1"},
				OrderBy: []string{"id DESC"},
				Limit:   "5",
				Offset:  "10",
			},
		},
		{
			name: "repeated where lines accumulate in order",
			raw:  "from: t\nwhere: a = 1\ncondition: b = 2\nfilter: c = 3",
			want: &query.SelectBuilder{From: "t", Where: []string{"a = 1", "b = 2", "c = 3"}},
		},
		{
			name: "joins verbatim and by alias",
			raw:  "from: users u\nLEFT JOIN orders o ON o.uid = u.id\njoin: payments p ON p.oid = o.id\njoin: INNER JOIN x ON true",
			want: &query.SelectBuilder{
				From: "users u",
				Joins: []string{
					"LEFT JOIN orders o ON o.uid = u.id",
					"JOIN payments p ON p.oid = o.id",
					"INNER JOIN x ON true",
				},
			},
		},
		{
			name: "commas inside function calls do not split",
			raw:  "columns: COALESCE(a, b), 'x, y', c",
			want: &query.SelectBuilder{Select: []string{"COALESCE(a, b)", "'x, y'", "c"}},
		},
		{
			name: "empty first column collapses to star",
			raw:  "columns: , id\ntable: t",
			want: &query.SelectBuilder{Select: []string{"*"}, From: "t"},
		},
		{
			name: "comments blank and unknown lines are skipped",
			raw:  "# a comment\n\n-- another\nnonsense here\n   table:   t   ",
			want: &query.SelectBuilder{From: "t"},
		},
		{
			name: "case-insensitive prefixes",
			raw:  "TABLE: t\nColumns: a",
			want: &query.SelectBuilder{Select: []string{"a"}, From: "t"},
		},
		{
			name: "missing table is not an error",
			raw:  "where: id = 1",
			want: &query.SelectBuilder{Where: []string{"id = 1"}},
		},
		{
			name: "bad limit is kept for the renderer",
			raw:  "table: t\nlimit: ten",
			want: &query.SelectBuilder{From: "t", Limit: "ten"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSelect(t, tt.raw))
		})
	}
}

func TestParseInsert(t *testing.T) {
	b, err := Parse("table: products\ncolumns: name, price\nvalues: ('Mouse', 29.99)\nvalues: 'bad', 1\nrow: ('Pad, XL', 5)\non conflict: DO NOTHING", core.QueryInsert)
	require.NoError(t, err)

	want := &query.InsertBuilder{
		Table:      "products",
		Columns:    []string{"name", "price"},
		Values:     [][]string{{"'Mouse'", "29.99"}, {"'Pad, XL'", "5"}},
		OnConflict: "DO NOTHING",
	}
	assert.Equal(t, want, b)

	got, err := b.Render(query.NewRenderer(nil, false))
	require.NoError(t, err)
	assert.Contains(t, got, "VALUES ('Mouse', 29.99), ('Pad, XL', 5)")
}

func TestParseInsertVerbatimConflict(t *testing.T) {
	b, err := Parse("insert into t\nvalues: (1)\nON DUPLICATE KEY UPDATE a = 1", core.QueryInsert)
	require.NoError(t, err)
	ib := b.(*query.InsertBuilder)
	assert.Equal(t, "t", ib.Table)
	assert.Equal(t, "ON DUPLICATE KEY UPDATE a = 1", ib.OnConflict)
}

func TestParseUpdate(t *testing.T) {
	b, err := Parse("update users\nset: status = 'inactive'\nset updated_at = NOW()\nwhere: id = 1\ninner join roles r ON r.id = users.role_id", core.QueryUpdate)
	require.NoError(t, err)

	want := &query.UpdateBuilder{
		Table: "users",
		Set:   []string{"status = 'inactive'", "updated_at = NOW()"},
		Where: []string{"id = 1"},
		Joins: []string{"inner join roles r ON r.id = users.role_id"},
	}
	assert.Equal(t, want, b)
}

func TestParseDelete(t *testing.T) {
	tests := []struct {
		raw   string
		table string
	}{
		{"table: logs\nwhere: age > 30", "logs"},
		{"from: logs\nwhere: age > 30", "logs"},
		{"delete from logs\nwhere: age > 30", "logs"},
		{"from logs\nwhere age > 30", "logs"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			b, err := Parse(tt.raw, core.QueryDelete)
			require.NoError(t, err)
			db := b.(*query.DeleteBuilder)
			assert.Equal(t, tt.table, db.Table)
			assert.Equal(t, []string{"age > 30"}, db.Where)
		})
	}
}

func TestParseCreate(t *testing.T) {
	b, err := Parse("table: users\nif not exists\ncolumns: id INT NOT NULL, price DECIMAL(10, 2)\ncolumn: email TEXT\nprimary key: (id)\noptions: ENGINE=InnoDB", core.QueryCreate)
	require.NoError(t, err)

	want := &query.CreateTableBuilder{
		Table:       "users",
		IfNotExists: true,
		Columns:     []string{"id INT NOT NULL", "price DECIMAL(10, 2)", "email TEXT"},
		PrimaryKey:  []string{"id"},
		Options:     "ENGINE=InnoDB",
	}
	assert.Equal(t, want, b)
}

func TestParseCustomUnsupported(t *testing.T) {
	_, err := Parse("select 1", core.QueryCustom)
	require.ErrorIs(t, err, core.ErrUnsupportedQueryType)

	_, err = Parse("select 1", core.QueryType("merge"))
	require.ErrorIs(t, err, core.ErrUnsupportedQueryType)
}

func TestParseKindMatchesBuilder(t *testing.T) {
	for _, kind := range []core.QueryType{core.QuerySelect, core.QueryInsert, core.QueryUpdate, core.QueryDelete, core.QueryCreate} {
		t.Run(string(kind), func(t *testing.T) {
			b, err := Parse("table: t", kind)
			require.NoError(t, err)
			assert.Equal(t, kind, b.Kind())
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	table := []Alias{
		{Prefix: "group by:", Field: FieldGroupBy},
		{Prefix: "group:", Field: FieldGroupBy},
		{Prefix: "g", Field: FieldTable},
	}

	a, ok := Classify("GROUP BY: a", table)
	require.True(t, ok)
	assert.Equal(t, "group by:", a.Prefix)
	assert.Equal(t, "a", a.Value("GROUP BY: a"))

	a, ok = Classify("gizmo", table)
	require.True(t, ok)
	assert.Equal(t, FieldTable, a.Field)

	_, ok = Classify("x", table)
	assert.False(t, ok)
}

func TestAliasesReturnsCopy(t *testing.T) {
	a := Aliases(core.QuerySelect)
	require.NotEmpty(t, a)
	a[0].Prefix = "mutated"
	assert.NotEqual(t, "mutated", SelectAliases[0].Prefix)
	assert.Nil(t, Aliases(core.QueryCustom))
}

func TestScanRecordsLines(t *testing.T) {
	entries := Scan("\ntable: t\n\nwhere: a", SelectAliases)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Field: FieldTable, Value: "t", Line: 2}, entries[0])
	assert.Equal(t, Entry{Field: FieldWhere, Value: "a", Line: 4}, entries[1])
}
