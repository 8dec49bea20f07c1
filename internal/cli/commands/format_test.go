package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "layout and casing",
			stdin: "select a from t where x = 1 and y = 2",
			want:  "SELECT a\nFROM t\nWHERE x = 1\n  AND y = 2\n",
		},
		{
			name:  "keywords only keeps layout",
			stdin: "select a from t where x = 1",
			args:  []string{"--keywords-only"},
			want:  "SELECT a FROM t WHERE x = 1\n",
		},
		{
			name:  "formatting is idempotent",
			stdin: "SELECT a\nFROM t\nWHERE x = 1\n  AND y = 2",
			want:  "SELECT a\nFROM t\nWHERE x = 1\n  AND y = 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewFormatCommand(), textConfig(), tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatKeepsLowercaseWhenDisabled(t *testing.T) {
	cfg := textConfig()
	cfg.UppercaseKeywords = false

	out, _, err := execute(t, NewFormatCommand(), cfg, "select a from t")
	require.NoError(t, err)
	assert.Equal(t, "select a\nfrom t\n", out)
}

func TestFormatMarkdownAndJSON(t *testing.T) {
	out, _, err := execute(t, NewFormatCommand(), testutil.Config(output.ModeMarkdown), "select a from t")
	require.NoError(t, err)
	assert.Equal(t, "```sql\nSELECT a\nFROM t\n```\n", out)

	out, _, err = execute(t, NewFormatCommand(), testutil.Config(output.ModeJSON), "select a from t")
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "SELECT a\nFROM t", got["sql"])
}

func TestFormatEmptyInput(t *testing.T) {
	_, _, err := execute(t, NewFormatCommand(), textConfig(), "  \n")
	require.Error(t, err)
}

const joinSQL = "select u.name, count(o.id) from users u join orders o on o.user_id = u.id group by u.name"

func TestAnalyzeJSON(t *testing.T) {
	out, _, err := execute(t, NewAnalyzeCommand(), testutil.Config(output.ModeJSON), joinSQL)
	require.NoError(t, err)

	var got struct {
		Type        string   `json:"type"`
		Tables      []string `json:"tables"`
		HasJoins    bool     `json:"hasJoins"`
		Complexity  string   `json:"complexity"`
		Aggregation bool     `json:"aggregation"`
		Window      bool     `json:"window"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "SELECT", got.Type)
	assert.Equal(t, []string{"users", "orders"}, got.Tables)
	assert.True(t, got.HasJoins)
	assert.True(t, got.Aggregation)
	assert.False(t, got.Window)
	assert.Equal(t, "moderate", got.Complexity)
}

func TestAnalyzeTable(t *testing.T) {
	out, _, err := execute(t, NewAnalyzeCommand(), textConfig(), joinSQL)
	require.NoError(t, err)

	assert.Contains(t, out, "Query Analysis")
	assert.Contains(t, out, "users, orders")
	assert.Contains(t, out, "moderate")
	testutil.AssertNoANSI(t, out)
}
