package commands

import (
	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/lint"
	"github.com/spf13/cobra"
)

// analyzeOutput is the JSON shape of the analyze command.
type analyzeOutput struct {
	core.QueryInfo
	Aggregation bool `json:"aggregation"`
	Window      bool `json:"window"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Analyze SQL structure and complexity",
		Long: `Report the statement type, referenced tables, joins, subqueries and
complexity of SQL text. Analysis is lexical; the SQL is not validated.`,
		Example: `  querykit analyze report.sql
  cat report.sql | querykit analyze --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args)
		},
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContextWithoutQuery(cmd)
	r := cmdCtx.Renderer

	sql, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	info := cmdCtx.Engine.Analyze(sql)
	features := lint.Detect(sql)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(analyzeOutput{
			QueryInfo:   info,
			Aggregation: features.Aggregation,
			Window:      features.Window,
		})
	}

	r.Header(1, "Query Analysis")
	r.Table([]string{"Property", "Value"}, [][]string{
		{"Type", info.Type},
		{"Tables", joinOrNone(info.Tables)},
		{"Joins", yesNo(info.HasJoins)},
		{"Subqueries", yesNo(info.HasSubqueries)},
		{"Aggregation", yesNo(features.Aggregation)},
		{"Window functions", yesNo(features.Window)},
		{"Complexity", string(info.Complexity)},
	})
	return nil
}
