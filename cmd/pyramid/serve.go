// ABOUTME: CLI command for running the HTTP API.
// ABOUTME: Starts the echo server and shuts it down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/pyramid/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API.

The listen address comes from config (server.host / server.port) or the
PYRAMID_SERVER_HOST and PYRAMID_SERVER_PORT environment variables.

ENDPOINTS:

  GET    /health
  GET    /metrics                                 (when metrics.enabled)
  GET    /api/items                POST /api/items
  GET    /api/items/:id            PUT|DELETE /api/items/:id
  GET    /api/days[?date=]         POST /api/days
  GET    /api/days/:id             PUT|DELETE /api/days/:id
  GET    /api/days/:id/portions
  POST   /api/days/:id/portions             {"itemId", "delta"}
  PUT    /api/days/:id/portions             {"itemId", "portions"}
  DELETE /api/days/:id/portions?itemId=`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := api.New(cfg, store, appLog)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			appLog.Infow("starting HTTP server", "addr", cfg.Server.Addr(), "data_dir", cfg.DataDir)
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		appLog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
