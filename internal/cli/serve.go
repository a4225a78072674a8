package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the jigsaw HTTP API",
		Long: `Serve shape generation, puzzle building, scattering and adaptation
over HTTP. See the server package for the routes.

Use a redis cache backend in the config to share outlines and puzzles
between several instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := c.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}
			printInfo("Listening on %s", cfg.Server.Addr)
			return server.New(cfg, runner, c.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
