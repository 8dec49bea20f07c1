package commands

import (
	"github.com/leapstack-labs/querykit/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query builder as a JSON HTTP API",
		Long: `Start an HTTP server exposing the engine:

  POST /api/build              build one query
  POST /api/batch              build many queries concurrently
  POST /api/format             format SQL
  POST /api/analyze            analyze SQL
  GET  /api/dialects           list dialects
  GET  /api/suggestions[/kind] list suggestions
  GET  /healthz                liveness

Request configs are decoded over the loaded settings. The server stops
gracefully on interrupt.`,
		Example: `  querykit serve
  querykit serve --addr :8080 --database postgresql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Engine:   cmdCtx.Engine,
		Defaults: cmdCtx.Query,
		Addr:     cmdCtx.Cfg.Server.Addr,
		Logger:   cmdCtx.Logger,
	})

	cmdCtx.Renderer.Success("querykit API listening on http://" + cmdCtx.Cfg.Server.Addr)
	return srv.Serve(cmd.Context())
}
