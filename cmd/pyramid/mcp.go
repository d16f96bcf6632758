// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"os/signal"
	"syscall"

	"github.com/harperreed/pyramid/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and shares the data directory with
the CLI and the HTTP API.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "pyramid": {
        "command": "pyramid",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_items           List food pyramid categories
  create_item          Add a category
  list_days            List tracked days
  get_day              Portions for one day (default today)
  increment_portion    Add or remove portions
  set_portion          Set a portion count
  cleanup_empty_days   Delete days with no portions

AVAILABLE RESOURCES:

  pyramid://catalog    The category catalog
  pyramid://today      Today's portions and what is left`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, appLog)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
