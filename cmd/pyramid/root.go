// ABOUTME: Root Cobra command for pyramid CLI.
// ABOUTME: Loads configuration, builds the logger and opens the store via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/pyramid/internal/charm"
	"github.com/harperreed/pyramid/internal/config"
	"github.com/harperreed/pyramid/internal/logger"
	"github.com/harperreed/pyramid/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	dataDirFlag string
	verbose     bool

	cfg         *config.Config
	appLog      *logger.Logger
	store       *storage.JSONStore
	charmClient *charm.Client
)

var rootCmd = &cobra.Command{
	Use:   "pyramid",
	Short: "Food pyramid portion tracker",
	Long: `Pyramid tracks how many portions of each food pyramid category you eat per day.

THE PYRAMID:

  Tier 1  Extras                                1 portion
  Tier 2  Legumes, meat, fish, egg; oils/fats   1 + 2
  Tier 3  Dairy; nuts and seeds                 2 + 1
  Tier 4  Bread, grains, sides                  4
  Tier 5  Fruit and vegetables                  5
  Tier 6  Beverages                             6

QUICK START:

  $ pyramid items                     # Show categories and their ids
  $ pyramid portion add 7             # One more portion of fruit/veg today
  $ pyramid portion add 8 3           # Three glasses of water
  $ pyramid portion set 1 0           # Undo the cake
  $ pyramid day show                  # Today's progress
  $ pyramid serve                     # Start the HTTP API on :8080

DATA STORAGE:

  Data lives as JSON files in $XDG_DATA_HOME/pyramid (~/.local/share/pyramid):
  pyramid_items.json for the catalog and one <YYYY-MM-DD>_portions.json per day.
  Override with --data-dir or PYRAMID_DATA_DIR.

MCP INTEGRATION:

  Run 'pyramid mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need the store
		if cmd.Name() == "help" || cmd.Name() == "install-skill" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if charmClient != nil {
			err = charmClient.Close()
			charmClient = nil
		}
		if appLog != nil {
			_ = appLog.Close()
		}
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and opens the store for cmd.
func setup(cmd *cobra.Command) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dataDirFlag != "" {
		c.DataDir = config.ExpandPath(dataDirFlag)
	}

	// Only the server owns stdout for logs; everything else keeps it for output.
	if cmd.Name() != "serve" {
		if c.Logger.Output == "stdout" {
			c.Logger.Output = "stderr"
		}
		if !verbose && c.Logger.Level == "info" {
			c.Logger.Level = "warn"
		}
	}
	if verbose {
		c.Logger.Level = "debug"
	}

	l, err := logger.New(c.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	s, err := storage.NewJSONStore(c.DataDir, storage.WithLogger(l))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg, appLog, store = c, l, s
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/pyramid/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
