package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/afl-tables/internal/api"
	"github.com/pfrederiksen/afl-tables/internal/config"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve seasons over HTTP",
		Long: `Run an HTTP API that scrapes seasons on request.

  GET /seasons/{year}   season JSON (?team=, ?venue=, ?finals_only=, ?no_byes=)
  GET /health           liveness
  GET /metrics          metrics snapshot`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer e.log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(e.scraper, e.log, e.metrics).ListenAndServe(ctx, e.cfg.Listen)
		},
	}

	cmd.Flags().String("listen", config.DefaultListen, "Address to listen on")

	return cmd
}
