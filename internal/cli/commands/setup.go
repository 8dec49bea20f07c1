package commands

import (
	"log/slog"

	"github.com/leapstack-labs/querykit/internal/cli/config"
	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/internal/engine"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Query    core.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the config and logger the
// root command stored in the command context. It fails when the loaded
// settings do not form a valid query config.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := NewCommandContextWithoutQuery(cmd)
	q, err := cc.Cfg.Query()
	if err != nil {
		return nil, err
	}
	cc.Query = q
	return cc, nil
}

// NewCommandContextWithoutQuery creates a CommandContext without validating
// the query settings. Useful for listing commands.
func NewCommandContextWithoutQuery(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	eng := engine.New(engine.Config{
		Logger:      logger,
		Concurrency: cfg.Concurrency,
	})
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}
}
