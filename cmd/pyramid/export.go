// ABOUTME: CLI commands for exporting and importing pyramid data.
// ABOUTME: Supports JSON, YAML, Markdown and SQLite export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/pyramid/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export pyramid data",
	Long: `Export the catalog and every tracked day.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export keyed by date and category label
  markdown   Markdown tables, one per day
  sqlite     SQLite database file (requires --output)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include days on or after this date (markdown only)

EXAMPLES:

  pyramid export json -o backup.json
  pyramid export yaml
  pyramid export markdown --since 2024-01-01
  pyramid export sqlite -o pyramid.db`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "sqlite"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		if exportSince != "" {
			if err := checkDate(exportSince); err != nil {
				return err
			}
		}

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(store)
		case "yaml":
			data, err = storage.ExportYAML(store)
		case "markdown":
			var md string
			md, err = storage.ExportMarkdown(store, exportSince)
			data = []byte(md)
		case "sqlite":
			if exportOutput == "" {
				return fmt.Errorf("sqlite export requires --output")
			}
			if err := storage.ExportSQLite(store, exportOutput); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
			return nil
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or sqlite)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import pyramid data from JSON",
	Long: `Import a JSON export produced by 'pyramid export json'.

The catalog is replaced and every day in the file is written, overwriting
local days with the same date. Days that only exist locally are kept.

EXAMPLES:

  pyramid import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := storage.ImportJSON(store, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported from %s\n", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include days since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
