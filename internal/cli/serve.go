package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/server"
	"github.com/matzehuels/mosaic/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the solver over HTTP.

  POST /v1/solve                     solve tiles in the request body
  GET  /v1/runs                      list saved runs
  GET  /v1/runs/{id}                 fetch a run
  GET  /v1/runs/{id}/image.{format}  stitched image (png, bmp, tiff, txt)
  GET  /v1/runs/{id}/graph.{format}  placement graph (svg, dot)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the placement cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	observability.SetServerHooks(observability.NewLogHooks(c.Logger))

	srv := server.New(runner, st, server.WithLogger(c.Logger))
	printInfo("Listening on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}
