// Package cli provides the command-line interface for querykit.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/leapstack-labs/querykit/internal/cli/commands"
	"github.com/leapstack-labs/querykit/internal/cli/config"
	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Command group IDs shown in help output and the CLI reference.
const (
	GroupBuild     = "build"
	GroupInspect   = "inspect"
	GroupReference = "reference"
	GroupProject   = "project"
)

// CommandGroups lists the command groups in display order.
var CommandGroups = []*cobra.Group{
	{ID: GroupBuild, Title: "Build SQL from requirements:"},
	{ID: GroupInspect, Title: "Work with existing SQL:"},
	{ID: GroupReference, Title: "Reference:"},
	{ID: GroupProject, Title: "Project and service:"},
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "querykit",
		Short: "querykit - structured requirements to SQL",
		Long: `querykit turns line-oriented query requirements into SQL for MySQL,
PostgreSQL, SQLite, SQL Server, Oracle or generic SQL.

It builds SELECT, INSERT, UPDATE, DELETE and CREATE TABLE statements,
escapes identifiers per dialect, formats SQL and reports the structure and
complexity of a query with improvement suggestions.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

			ctx := context.WithValue(cmd.Context(), config.ConfigKey(), cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Structured requirements to SQL
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./querykit.yaml)")
	flags.String("type", "", "Query type (select|insert|update|delete|create|custom)")
	flags.String("database", "", "Target database (mysql|postgresql|sqlite|mssql|oracle|generic)")
	flags.Bool("format-output", true, "Format the generated SQL")
	flags.Bool("include-comments", false, "Add a comment banner and analysis to the output")
	flags.Bool("validate-syntax", false, "Reserved; accepted for compatibility")
	flags.Bool("generate-examples", false, "Append an example statement")
	flags.Bool("escape-identifiers", false, "Quote table and column names for the database")
	flags.Bool("uppercase-keywords", true, "Upper-case SQL keywords")
	flags.Int("indent-size", 2, "Spaces per indent level")
	flags.Int("concurrency", 0, "Worker limit for batch builds")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		kinds := make([]string, 0, len(core.QueryTypes))
		for _, k := range core.QueryTypes {
			kinds = append(kinds, string(k))
		}
		return kinds, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("database", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		dbs := make([]string, 0, len(core.Databases))
		for _, d := range core.Databases {
			dbs = append(dbs, string(d))
		}
		return dbs, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddGroup(CommandGroups...)
	addGrouped := func(group string, cmds ...*cobra.Command) {
		for _, c := range cmds {
			c.GroupID = group
			rootCmd.AddCommand(c)
		}
	}
	addGrouped(GroupBuild, commands.NewBuildCommand(), commands.NewBatchCommand(), commands.NewReplCommand())
	addGrouped(GroupInspect, commands.NewFormatCommand(), commands.NewAnalyzeCommand())
	addGrouped(GroupReference, commands.NewDialectsCommand(), commands.NewSuggestionsCommand())
	addGrouped(GroupProject, commands.NewInitCommand(), commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for querykit.

To load completions:

Bash:
  $ source <(querykit completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ querykit completion bash > /etc/bash_completion.d/querykit
  # macOS:
  $ querykit completion bash > $(brew --prefix)/etc/bash_completion.d/querykit

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ querykit completion zsh > "${fpath[1]}/_querykit"

Fish:
  $ querykit completion fish | source

  # To load completions for each session, execute once:
  $ querykit completion fish > ~/.config/fish/completions/querykit.fish

PowerShell:
  PS> querykit completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
