package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodflow/pkg/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API over HTTP",
	Long: `Start an HTTP server exposing entries and statistics as JSON:

  GET    /health
  GET    /api/entries
  POST   /api/entries
  GET    /api/entries/{id}
  DELETE /api/entries/{id}
  GET    /api/stats
  GET    /api/stats/weekly
  GET    /api/stats/monthly`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := clock()
		if err != nil {
			return err
		}
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return api.NewServer(b.journal, b.pinger, now).ListenAndServe(ctx, cfg.HTTPAddr)
	},
}

func initServeCmd() {
	serveCmd.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "Address to listen on (env MOODFLOW_HTTP_ADDR)")
}
