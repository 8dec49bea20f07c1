package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/querykit/internal/testutil"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/dialects/mysql"
	"github.com/leapstack-labs/querykit/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(Config{Logger: testutil.NewTestLogger(t)})
}

func TestProcessEmptyInput(t *testing.T) {
	e := newTestEngine(t)

	for _, input := range []string{"", "   ", "\n\t\n"} {
		for _, kind := range core.QueryTypes {
			res := e.Process(input, testutil.NewConfig(kind, core.DatabaseMySQL))
			assert.False(t, res.Success)
			assert.Equal(t, core.ErrEmptyInput.Error(), res.Error)
			assert.Empty(t, res.Output)
			assert.Nil(t, res.QueryInfo)
		}
	}
}

func TestProcessInvalidConfig(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name string
		cfg  core.Config
		want string
	}{
		{"unknown type", testutil.NewConfig("merge", core.DatabaseMySQL), "unsupported query type"},
		{"unknown database", testutil.NewConfig(core.QuerySelect, "db2"), "unknown database"},
		{"zero indent", core.Config{QueryType: core.QuerySelect, Database: core.DatabaseMySQL}, "indent size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Process("table: t", tt.cfg)
			assert.False(t, res.Success)
			assert.Contains(t, res.Error, tt.want)
		})
	}
}

// stubBuilder is a query.Builder with a canned render outcome.
type stubBuilder struct {
	err   error
	panic any
}

func (b stubBuilder) Kind() core.QueryType { return core.QuerySelect }

func (b stubBuilder) Render(query.Renderer) (string, error) {
	if b.panic != nil {
		panic(b.panic)
	}
	return "", b.err
}

func TestRenderFailures(t *testing.T) {
	e := newTestEngine(t)
	r := query.NewRenderer(mysql.MySQL, false)

	_, err := e.render(stubBuilder{err: errors.New("bad clause")}, r)
	require.EqualError(t, err, "bad clause")

	_, err = e.render(stubBuilder{panic: "boom"}, r)
	require.ErrorIs(t, err, core.ErrBuildFailed)
	assert.Contains(t, err.Error(), "boom")

	res := core.Failure(errors.New(""))
	assert.Equal(t, core.ErrBuildFailed.Error(), res.Error, "empty messages fall back")
}

func TestProcessNonIntegerLimit(t *testing.T) {
	cfg := testutil.Config(core.QuerySelect, core.DatabaseMSSQL, testutil.Unformatted())

	res := newTestEngine(t).Process("select:\ntable: t\nlimit: abc", cfg)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "SELECT * FROM t LIMIT NaN", res.Query)

	res = newTestEngine(t).Process("table: t\nlimit: 10 rows\noffset: 5", cfg)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "SELECT * FROM t LIMIT 10 OFFSET 5", res.Query)
}

func TestProcessCustomKeepsCodeAfterLineComment(t *testing.T) {
	cfg := testutil.NewConfig(core.QueryCustom, core.DatabaseMySQL)

	res := newTestEngine(t).Process("select a, -- primary key\n b from t", cfg)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "SELECT a, -- primary key\nb\nFROM t", res.Query)

	again := newTestEngine(t).Process(res.Query, cfg)
	assert.Equal(t, res.Query, again.Query)
}

func TestProcessOutputAssembly(t *testing.T) {
	e := newTestEngine(t)
	input := "table: users u\njoin: orders o ON o.user_id = u.id\ncolumns: u.id, COUNT(o.id)\ngroup by: u.id"

	t.Run("plain", func(t *testing.T) {
		res := e.Process(input, testutil.NewConfig(core.QuerySelect, core.DatabasePostgreSQL))
		require.True(t, res.Success, res.Error)
		assert.Equal(t, res.Query, res.Output)
		assert.NotContains(t, res.Output, "--")
	})

	t.Run("banner example and analysis", func(t *testing.T) {
		cfg := testutil.Config(core.QuerySelect, core.DatabasePostgreSQL, testutil.WithComments(), testutil.WithExamples())
		res := e.Process(input, cfg)
		require.True(t, res.Success, res.Error)

		lines := strings.Split(res.Output, "\n")
		assert.Equal(t, "-- SQL Query Builder", lines[0])
		assert.Equal(t, "-- Database: PostgreSQL", lines[1])
		assert.Equal(t, "-- Query Type: SELECT", lines[2])
		assert.Contains(t, res.Output, "\n\n"+res.Query+"\n\n-- Example: SELECT")
		assert.True(t, strings.HasSuffix(res.Output,
			"-- Query Analysis:\n-- Complexity: moderate\n-- Tables: users, orders | Joins: yes | Subqueries: no"))
	})

	t.Run("simple query has no analysis block", func(t *testing.T) {
		cfg := testutil.Config(core.QuerySelect, core.DatabaseMySQL, testutil.WithComments())
		res := e.Process("table: t", cfg)
		require.True(t, res.Success)
		assert.NotContains(t, res.Output, "Query Analysis")
		assert.Contains(t, res.Output, "-- Database: MySQL")
	})
}

func TestProcessEscaping(t *testing.T) {
	e := newTestEngine(t)
	input := "table: users\ncolumns: id, name\norder: name DESC"

	tests := []struct {
		db    core.Database
		want  string
		table string
	}{
		{core.DatabaseMySQL, "SELECT `id`, `name`\nFROM `users`\nORDER BY `name` DESC", "users"},
		{core.DatabasePostgreSQL, "SELECT \"id\", \"name\"\nFROM \"users\"\nORDER BY \"name\" DESC", "users"},
		{core.DatabaseMSSQL, "SELECT [id], [name]\nFROM [users]\nORDER BY [name] DESC", "users"},
		{core.DatabaseOracle, "SELECT \"ID\", \"NAME\"\nFROM \"USERS\"\nORDER BY \"NAME\" DESC", "USERS"},
		{core.DatabaseGeneric, "SELECT id, name\nFROM users\nORDER BY name DESC", "users"},
	}

	for _, tt := range tests {
		t.Run(string(tt.db), func(t *testing.T) {
			res := e.Process(input, testutil.Config(core.QuerySelect, tt.db, testutil.WithEscaping()))
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Query)
			assert.Equal(t, []string{tt.table}, res.QueryInfo.Tables)
		})
	}
}

func TestProcessUnformatted(t *testing.T) {
	res := newTestEngine(t).Process("table: t\nwhere: a = 1\nwhere: b = 2",
		testutil.Config(core.QueryDelete, core.DatabaseSQLite, testutil.Unformatted()))
	require.True(t, res.Success)
	assert.Equal(t, "DELETE FROM t WHERE a = 1 AND b = 2", res.Query)
}

func TestProcessSuggestions(t *testing.T) {
	e := newTestEngine(t)
	for _, kind := range []core.QueryType{core.QuerySelect, core.QueryInsert, core.QueryUpdate, core.QueryDelete} {
		res := e.Process("table: t", testutil.NewConfig(kind, core.DatabaseMySQL))
		require.True(t, res.Success, res.Error)
		assert.Len(t, res.Suggestions, 4, string(kind))
	}

	res := e.Process("table: t\ncolumns: id INT", testutil.NewConfig(core.QueryCreate, core.DatabaseMySQL))
	require.True(t, res.Success, res.Error)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, "CREATE", res.QueryInfo.Type)
}

// Builders of each kind render SQL whose analyzed type matches the kind.
func TestProcessKindMatchesAnalysis(t *testing.T) {
	e := newTestEngine(t)
	inputs := map[core.QueryType]string{
		core.QuerySelect: "table: users\ncolumns: id",
		core.QueryInsert: "table: users\ncolumns: id\nvalues: (1)",
		core.QueryUpdate: "table: users\nset: id = 2\nwhere: id = 1",
		core.QueryDelete: "table: users\nwhere: id = 1",
	}

	for kind, input := range inputs {
		for _, db := range core.Databases {
			for _, formatted := range []bool{true, false} {
				cfg := testutil.NewConfig(kind, db)
				cfg.FormatOutput = formatted
				res := e.Process(input, cfg)
				require.True(t, res.Success, res.Error)
				assert.Equal(t, kind.Keyword(), res.QueryInfo.Type, "%s/%s", kind, db)
			}
		}
	}
}

func TestProcessFormattingIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	inputs := []string{
		"table: users u\ncolumns: u.id, u.name, u.email, u.phone, u.created_at, u.updated_at, u.deleted_at\nleft join orders o ON o.user_id = u.id\nwhere: u.active = 1\nwhere: o.total BETWEEN 10 AND 20\norder: u.id DESC\nlimit: 10",
		"table: t\nwhere: id IN (SELECT id FROM s WHERE x = 1 OR y = 2)",
	}

	for _, input := range inputs {
		res := e.Process(input, testutil.NewConfig(core.QuerySelect, core.DatabaseMySQL))
		require.True(t, res.Success)

		again := e.Process(res.Query, testutil.NewConfig(core.QueryCustom, core.DatabaseMySQL))
		require.True(t, again.Success)
		assert.Equal(t, res.Query, again.Query)
	}
}

func TestProcessLogsStages(t *testing.T) {
	logger, buf := testutil.NewCaptureLogger()
	e := New(Config{Logger: logger})

	res := e.Process("table: t", testutil.NewConfig(core.QuerySelect, core.DatabaseMySQL))
	require.True(t, res.Success)
	assert.Contains(t, buf.String(), "rendered query")
	assert.Contains(t, buf.String(), "analyzed query")
}

func TestPackageProcess(t *testing.T) {
	res := Process("select 1", testutil.NewConfig(core.QueryCustom, core.DatabaseGeneric))
	require.True(t, res.Success)
	assert.Equal(t, "SELECT 1", res.Query)
}

func TestExample(t *testing.T) {
	for _, kind := range core.QueryTypes {
		assert.NotEmpty(t, Example(kind), string(kind))
	}
}
