// ABOUTME: CLI commands for tracked days.
// ABOUTME: Supports list, show, rename and delete of day records.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/pyramid/internal/models"
	"github.com/harperreed/pyramid/internal/storage"
	"github.com/spf13/cobra"
)

var dayListLimit int

var dayCmd = &cobra.Command{
	Use:     "day",
	Aliases: []string{"days", "d"},
	Short:   "Show and manage tracked days",
	Long: `Show and manage tracked days.

Dates use the YYYY-MM-DD format. 'show' defaults to today.

EXAMPLES:

  pyramid day                          # Today's portions
  pyramid day list                     # All tracked days, newest first
  pyramid day show 2024-05-01          # Portions for one day
  pyramid day rename 2024-05-01 2024-05-02
  pyramid day delete 2024-05-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showDay(cmd, models.Today())
	},
}

var dayListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List tracked days",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := store.ListDays()
		if err != nil {
			return fmt.Errorf("failed to list days: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(days) == 0 {
			fmt.Fprintln(out, "No days tracked.")
			return nil
		}
		if dayListLimit > 0 && len(days) > dayListLimit {
			days = days[:dayListLimit]
		}

		faint := color.New(color.Faint)
		for _, d := range days {
			portions, err := store.GetPortionsForDay(d.ID)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", d.EntryDate, err)
			}
			got, want := totals(portions)
			fmt.Fprintf(out, "%s  %s\n", d.EntryDate, faint.Sprintf("%d/%d portions", got, want))
		}
		return nil
	},
}

var dayShowCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show portions for a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := models.Today()
		if len(args) == 1 {
			date = args[0]
		}
		return showDay(cmd, date)
	},
}

var dayRenameCmd = &cobra.Command{
	Use:   "rename <date> <new-date>",
	Short: "Move a day's portions to another date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := args[0], args[1]
		if err := checkDate(from); err != nil {
			return err
		}
		if err := checkDate(to); err != nil {
			return err
		}

		if err := store.UpdateDay(models.DateToID(from), to); err != nil {
			return fmt.Errorf("failed to rename day: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Moved %s to %s\n", from, to)
		return nil
	},
}

var dayDeleteCmd = &cobra.Command{
	Use:     "delete <date>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a day",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkDate(args[0]); err != nil {
			return err
		}

		if err := store.DeleteDay(models.DateToID(args[0])); err != nil {
			return fmt.Errorf("failed to delete day: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
		return nil
	},
}

// showDay prints the portions for date without creating the day.
func showDay(cmd *cobra.Command, date string) error {
	if err := checkDate(date); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dayID := models.DateToID(date)
	if _, err := store.GetDay(dayID); errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(out, "No entry for %s.\n", date)
		return nil
	} else if err != nil {
		return err
	}

	portions, err := store.GetPortionsForDay(dayID)
	if err != nil {
		return fmt.Errorf("failed to load portions: %w", err)
	}

	color.New(color.Bold).Fprintln(out, date)

	sorted := make([]models.ItemPortion, len(portions))
	copy(sorted, portions)
	sortPortions(sorted)

	faint := color.New(color.Faint)
	for _, p := range sorted {
		fmt.Fprintf(out, "  %s %s %s\n",
			faint.Sprintf("%3d", p.ID),
			padRight(p.Label, 36),
			progress(p.Portions, p.RecommendedPortions))
	}

	got, want := totals(portions)
	faint.Fprintf(out, "  total %d/%d\n", got, want)
	return nil
}

// progress renders count/target as filled and empty boxes.
func progress(got, want int) string {
	filled := max(min(got, want), 0)
	bar := strings.Repeat("■", filled) + strings.Repeat("□", max(want-filled, 0))
	label := fmt.Sprintf(" %d/%d", got, want)
	switch {
	case got > want:
		return color.YellowString(bar + label)
	case got == want:
		return color.GreenString(bar + label)
	default:
		return bar + label
	}
}

func totals(portions []models.ItemPortion) (got, want int) {
	for _, p := range portions {
		got += p.Portions
		want += p.RecommendedPortions
	}
	return got, want
}

func sortPortions(portions []models.ItemPortion) {
	items := make([]models.PyramidItem, len(portions))
	byID := make(map[int]int, len(portions))
	for i, p := range portions {
		items[i] = p.PyramidItem
		byID[p.ID] = p.Portions
	}
	models.SortItems(items)
	for i, item := range items {
		portions[i] = models.ItemPortion{PyramidItem: item, Portions: byID[item.ID]}
	}
}

func checkDate(date string) error {
	if !models.ValidDate(date) {
		return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", date)
	}
	return nil
}

func init() {
	dayListCmd.Flags().IntVarP(&dayListLimit, "limit", "n", 0, "max number of days (0 for all)")

	dayCmd.AddCommand(dayListCmd, dayShowCmd, dayRenameCmd, dayDeleteCmd)
	rootCmd.AddCommand(dayCmd)
}
