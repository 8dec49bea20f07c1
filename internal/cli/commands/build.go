package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces bursts of write events from editors.
const watchDebounce = 100 * time.Millisecond

// errQueryFailed is returned when the engine reports an unsuccessful result.
var errQueryFailed = errors.New("query build failed")

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Watch     bool
	QueryOnly bool
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build [file|-]",
		Short: "Build SQL from structured query requirements",
		Long: `Build a SQL statement from line-oriented requirements such as
"table: users" or "where: status = 'active'".

With --type custom the input is treated as SQL and passed through the
formatter and analyzer unchanged.

Output adapts to environment:
  - Terminal: SQL followed by analysis and suggestions
  - Piped/Scripted: Markdown with a sql code block
Use --output json for the full result envelope.`,
		Example: `  # Build a SELECT from a file
  querykit build users.intent

  # Build an INSERT for PostgreSQL from stdin
  printf 'table: products\ncolumns: name, price\nvalues: (%s, 9.99)\n' "'Mouse'" | \
    querykit build --type insert --database postgresql

  # Print only the SQL
  querykit build users.intent --query-only

  # Rebuild whenever the file changes
  querykit build users.intent --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Rebuild when the input file changes")
	cmd.Flags().BoolVarP(&opts.QueryOnly, "query-only", "q", false, "Print only the generated SQL")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string, opts *BuildOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if opts.Watch {
		if len(args) == 0 || args[0] == "-" {
			return fmt.Errorf("--watch requires an input file")
		}
		return watchBuild(cmd.Context(), cmd, cmdCtx, args[0], opts)
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	return buildOnce(cmdCtx, input, opts)
}

// buildOnce processes input and renders the result.
func buildOnce(cmdCtx *CommandContext, input string, opts *BuildOptions) error {
	res := cmdCtx.Engine.Process(input, cmdCtx.Query)
	renderBuild(cmdCtx.Renderer, res, cmdCtx.Query, opts.QueryOnly)
	if !res.Success {
		return fmt.Errorf("%w: %s", errQueryFailed, res.Error)
	}
	return nil
}

func renderBuild(r *output.Renderer, res core.ToolResult, q core.Config, queryOnly bool) {
	mode := r.EffectiveMode()

	if mode == output.ModeJSON {
		_ = r.JSON(res)
		return
	}
	if !res.Success {
		return
	}
	if queryOnly {
		r.Println(res.Query)
		return
	}

	switch mode {
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("%s query (%s)", strings.ToUpper(string(q.QueryType)), q.Database)))
		r.Println()
		r.Println(output.FormatCodeBlock("sql", res.Output))
		if res.QueryInfo != nil {
			r.Println()
			r.Println(output.FormatHeader(2, "Analysis"))
			r.Println()
			renderInfo(r, *res.QueryInfo)
		}
		if len(res.Suggestions) > 0 {
			r.Println()
			r.Println(output.FormatHeader(2, "Suggestions"))
			r.Println()
			for _, s := range res.Suggestions {
				r.Println("- " + s)
			}
		}
	default:
		r.Println(res.Output)
		if len(res.Suggestions) > 0 {
			r.Println()
			for _, s := range res.Suggestions {
				r.Println(r.Muted("• " + s))
			}
		}
	}
}

// watchBuild builds path once and again on every change until ctx is done.
func watchBuild(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, path string, opts *BuildOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	rebuild := func() {
		input, err := readInput(cmd, []string{path})
		if err != nil {
			cmdCtx.Renderer.Error(err.Error())
			return
		}
		if err := buildOnce(cmdCtx, input, opts); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}
	}

	rebuild()
	cmdCtx.Logger.Info("watching for changes", "file", abs)

	changes := make(chan struct{}, 1)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || filepath.Clean(event.Name) != abs {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})

		case <-changes:
			cmdCtx.Logger.Debug("file changed, rebuilding", "file", abs)
			cmdCtx.Renderer.Println()
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Error("watcher error", "error", err)
		}
	}
}

// renderInfo writes analysis key/value lines.
func renderInfo(r *output.Renderer, info core.QueryInfo) {
	r.StatusLine("Type", info.Type)
	r.StatusLine("Tables", joinOrNone(info.Tables))
	r.StatusLine("Joins", yesNo(info.HasJoins))
	r.StatusLine("Subqueries", yesNo(info.HasSubqueries))
	r.StatusLine("Complexity", string(info.Complexity))
}
