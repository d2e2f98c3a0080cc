package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/internal/server"
)

// serveCommand runs the read-only HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grids and agendas over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			e, err := c.openEnv(ctx, false)
			if err != nil {
				return err
			}
			defer e.Close(ctx)

			srv := server.New(e.runner(c.Logger), layoutDefaults(cfg), c.Logger)
			printInfo("Serving %s source on %s", e.source.Name(), addr)
			return srv.ListenAndServe(ctx, server.Config{
				Addr:         addr,
				ReadTimeout:  cfg.Server.ReadTimeout.Duration,
				WriteTimeout: cfg.Server.WriteTimeout.Duration,
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
