package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects [name]",
		Short: "List supported databases and their quoting rules",
		Example: `  querykit dialects
  querykit dialects postgresql --output json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := make([]string, 0, len(core.Databases))
			for _, d := range core.Databases {
				names = append(names, string(d))
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialects(cmd, args)
		},
	}
}

func runDialects(cmd *cobra.Command, args []string) error {
	r := NewCommandContextWithoutQuery(cmd).Renderer

	infos := dialect.Describe()
	if len(args) > 0 {
		db, ok := core.ParseDatabase(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", core.ErrUnknownDatabase, args[0])
		}
		for _, info := range infos {
			if info.Name == db {
				return renderDialect(r, info)
			}
		}
		return fmt.Errorf("%w: %q", core.ErrUnknownDatabase, args[0])
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			string(info.Name),
			info.DisplayName,
			quoteSample(info.Name),
			yesNo(info.Uppercase),
			strconv.Itoa(len(info.Additions)),
		})
	}
	r.Table([]string{"Name", "Display Name", "Identifier", "Uppercase", "Extra Keywords"}, rows)
	return nil
}

func renderDialect(r *output.Renderer, info dialect.Info) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(info)
	}
	r.Header(1, info.DisplayName)
	r.StatusLine("Name", string(info.Name))
	r.StatusLine("Identifier", quoteSample(info.Name))
	r.StatusLine("Uppercase", yesNo(info.Uppercase))
	r.StatusLine("Keywords", joinOrNone(info.Additions))
	return nil
}

// quoteSample shows how the dialect escapes a sample identifier.
func quoteSample(db core.Database) string {
	s := dialect.Escape("user_id", db)
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
