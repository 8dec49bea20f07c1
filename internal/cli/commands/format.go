package commands

import (
	"fmt"

	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/pkg/dialect"
	"github.com/leapstack-labs/querykit/pkg/format"
	"github.com/spf13/cobra"
)

// FormatOptions holds options for the format command.
type FormatOptions struct {
	LineWidth    int
	KeywordsOnly bool
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}

	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Format existing SQL",
		Long: `Reformat SQL: clause keywords start new lines, AND/OR get a hanging
indent and long select lists wrap at --line-width.

Keyword casing follows --uppercase-keywords and the dialect's keyword
table. --keywords-only upper-cases keywords and keeps the layout.`,
		Example: `  # Format a file for PostgreSQL
  querykit format report.sql --database postgresql

  # Only normalize keyword case
  querykit format report.sql --keywords-only`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.LineWidth, "line-width", format.DefaultLineWidth, "Wrap clause lists longer than this")
	cmd.Flags().BoolVar(&opts.KeywordsOnly, "keywords-only", false, "Upper-case keywords without changing layout")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *FormatOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	sql, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	d, err := dialect.Lookup(cmdCtx.Query.Database)
	if err != nil {
		return err
	}

	var formatted string
	if opts.KeywordsOnly {
		formatted = format.Keywords(sql, d)
	} else {
		formatted = format.SQL(sql, format.Options{
			Dialect:           d,
			UppercaseKeywords: cmdCtx.Query.UppercaseKeywords,
			IndentSize:        cmdCtx.Query.IndentSize,
			LineWidth:         opts.LineWidth,
		})
	}
	cmdCtx.Logger.Debug("formatted sql", "database", d.Name, "bytes", len(formatted))

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]string{"sql": formatted})
	case output.ModeMarkdown:
		r.Println(output.FormatCodeBlock("sql", formatted))
	default:
		r.Println(formatted)
	}
	if formatted == "" {
		return fmt.Errorf("no SQL to format")
	}
	return nil
}
