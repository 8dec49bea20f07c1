package commands

import (
	"fmt"

	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/lint"
	"github.com/spf13/cobra"
)

// NewSuggestionsCommand creates the suggestions command.
func NewSuggestionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions [kind]",
		Short: "List improvement suggestions by query type",
		Long: `List the static suggestions attached to build results, optionally for
one query type. Create and custom queries have none.`,
		Example: `  querykit suggestions
  querykit suggestions delete`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggestions(cmd, args)
		},
	}
}

func runSuggestions(cmd *cobra.Command, args []string) error {
	r := NewCommandContextWithoutQuery(cmd).Renderer

	var kinds []core.QueryType
	if len(args) > 0 {
		kind, ok := core.ParseQueryType(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", core.ErrUnsupportedQueryType, args[0])
		}
		kinds = append(kinds, kind)
	}
	tips := lint.Catalog(kinds...)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if tips == nil {
			tips = []lint.Suggestion{}
		}
		return r.JSON(tips)

	case output.ModeMarkdown:
		var current core.QueryType
		for _, s := range tips {
			if s.Kind != current {
				if current != "" {
					r.Println()
				}
				current = s.Kind
				r.Header(2, string(s.Kind))
			}
			r.Println(fmt.Sprintf("- **%s** (%s): %s", s.ID, s.Group, s.Text))
		}

	default:
		styles := r.Styles()
		var current core.QueryType
		for _, s := range tips {
			if s.Kind != current {
				if current != "" {
					r.Println()
				}
				current = s.Kind
				r.Println(styles.Header.Render(string(s.Kind)))
			}
			r.Println(fmt.Sprintf("  %s %s %s", styles.Keyword.Render(s.ID), styles.Muted.Render("["+s.Group+"]"), s.Text))
		}
	}

	if len(tips) == 0 && r.EffectiveMode() != output.ModeJSON {
		r.Println(r.Muted("no suggestions"))
	}
	return nil
}
