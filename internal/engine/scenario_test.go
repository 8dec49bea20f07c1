package engine

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/querykit/internal/testutil"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioBasicSelect(t *testing.T) {
	input := "table: users\ncolumns: id, name, email\nwhere: status = 'active'\norder: name ASC"
	cfg := core.Config{
		QueryType:         core.QuerySelect,
		Database:          core.DatabaseMySQL,
		FormatOutput:      true,
		UppercaseKeywords: true,
		EscapeIdentifiers: false,
		IndentSize:        2,
	}

	res := newTestEngine(t).Process(input, cfg)
	require.True(t, res.Success, res.Error)

	lines := strings.Split(res.Query, "\n")
	assert.Equal(t, []string{
		"SELECT id, name, email",
		"FROM users",
		"WHERE status = 'active'",
		"ORDER BY name ASC",
	}, lines)
	assert.Equal(t, "SELECT", res.QueryInfo.Type)
	assert.Equal(t, core.ComplexitySimple, res.QueryInfo.Complexity)
}

func TestScenarioInsertExplicitValues(t *testing.T) {
	input := "table: products\ncolumns: name, price\nvalues: ('Mouse', 29.99)"

	for _, formatted := range []bool{true, false} {
		cfg := testutil.NewConfig(core.QueryInsert, core.DatabaseMySQL)
		cfg.FormatOutput = formatted

		res := newTestEngine(t).Process(input, cfg)
		require.True(t, res.Success, res.Error)
		assert.Equal(t, "INSERT INTO products (name, price) VALUES ('Mouse', 29.99)", res.Query)
	}
}

func TestScenarioCustomPassthrough(t *testing.T) {
	for _, formatted := range []bool{true, false} {
		cfg := testutil.NewConfig(core.QueryCustom, core.DatabasePostgreSQL)
		cfg.FormatOutput = formatted

		res := newTestEngine(t).Process("select * from t", cfg)
		require.True(t, res.Success, res.Error)
		require.NotNil(t, res.QueryInfo)
		assert.Equal(t, "SELECT", res.QueryInfo.Type)
		assert.Equal(t, []string{"t"}, res.QueryInfo.Tables)
		assert.Empty(t, res.Suggestions)
	}

	res := newTestEngine(t).Process("select * from t", testutil.Config(core.QueryCustom, core.DatabaseMySQL, testutil.Unformatted()))
	assert.Equal(t, "select * from t", res.Query, "passthrough keeps the text verbatim")
}

func TestScenarioMissingTable(t *testing.T) {
	for _, formatted := range []bool{true, false} {
		cfg := testutil.Config(core.QuerySelect, core.DatabaseMySQL, testutil.WithEscaping())
		cfg.FormatOutput = formatted

		res := newTestEngine(t).Process("where: id = 1", cfg)
		require.True(t, res.Success, res.Error)
		assert.Contains(t, res.Query, "FROM")
		assert.NotContains(t, res.Query, "``", "empty table is not quoted")
		assert.Empty(t, res.QueryInfo.Tables)
	}

	res := newTestEngine(t).Process("where: id = 1", testutil.Config(core.QuerySelect, core.DatabaseMySQL, testutil.Unformatted()))
	assert.Equal(t, "SELECT * FROM  WHERE id = 1", res.Query)
}

func TestScenarioComplexityRaisedByJoinAndSubquery(t *testing.T) {
	e := newTestEngine(t)
	cfg := testutil.NewConfig(core.QuerySelect, core.DatabaseMySQL)

	simple := e.Process("table: users", cfg)
	joined := e.Process("table: users\njoin: orders ON orders.user_id = users.id", cfg)
	both := e.Process("table: users\njoin: orders ON orders.user_id = users.id\nwhere: users.id IN (SELECT user_id FROM vip)", cfg)

	require.True(t, simple.Success)
	require.True(t, joined.Success)
	require.True(t, both.Success)
	assert.Equal(t, core.ComplexitySimple, simple.QueryInfo.Complexity)
	assert.GreaterOrEqual(t, joined.QueryInfo.Complexity.Rank(), core.ComplexityModerate.Rank())
	assert.Equal(t, core.ComplexityComplex, both.QueryInfo.Complexity)
}
