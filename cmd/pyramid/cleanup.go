// ABOUTME: CLI command for pruning empty days.
// ABOUTME: Removes day files with no recorded portions, keeping today unless told otherwise.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/pyramid/internal/models"
	"github.com/spf13/cobra"
)

var cleanupKeep []string

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete days with no recorded portions",
	Long: `Delete every tracked day whose portions are all zero.

Dates passed with --keep are left alone. Without --keep, today is kept.

EXAMPLES:

  pyramid cleanup
  pyramid cleanup --keep 2024-05-01 --keep 2024-05-02`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keep := cleanupKeep
		if len(keep) == 0 {
			keep = []string{models.Today()}
		}
		for _, d := range keep {
			if err := checkDate(d); err != nil {
				return err
			}
		}

		removed, err := store.CleanupEmptyDays(keep)
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Removed %d empty day(s)\n", removed)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().StringSliceVar(&cleanupKeep, "keep", nil, "dates to keep even if empty (repeatable)")
	rootCmd.AddCommand(cleanupCmd)
}
