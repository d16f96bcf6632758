// ABOUTME: CLI commands for changing portion counts.
// ABOUTME: Supports add (increment), set and reset for one category on one day.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/pyramid/internal/models"
	"github.com/spf13/cobra"
)

var portionDate string

var portionCmd = &cobra.Command{
	Use:     "portion",
	Aliases: []string{"p"},
	Short:   "Record portions",
	Long: `Record portions for a category. Counts never go below zero.

Use 'pyramid items' to look up category ids. --date defaults to today.

EXAMPLES:

  pyramid portion add 7              # +1 fruit/vegetables today
  pyramid portion add 8 3            # +3 beverages
  pyramid portion add -- 1 -1        # take one back
  pyramid portion set 6 4 --date 2024-05-01
  pyramid portion reset 1`,
}

var portionAddCmd = &cobra.Command{
	Use:   "add <item-id> [delta]",
	Short: "Add portions (default 1, negative to remove)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, date, err := portionTarget(args[0])
		if err != nil {
			return err
		}

		delta := 1
		if len(args) == 2 {
			delta, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta: %s", args[1])
			}
		}

		value, err := store.IncrementPortion(models.DateToID(date), item.ID, delta)
		if err != nil {
			return fmt.Errorf("failed to update portions: %w", err)
		}
		printPortion(cmd, item, date, value)
		return nil
	},
}

var portionSetCmd = &cobra.Command{
	Use:   "set <item-id> <portions>",
	Short: "Set the portion count",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, date, err := portionTarget(args[0])
		if err != nil {
			return err
		}

		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid portions: %s", args[1])
		}

		value, err := store.SetPortion(models.DateToID(date), item.ID, max(n, 0))
		if err != nil {
			return fmt.Errorf("failed to set portions: %w", err)
		}
		printPortion(cmd, item, date, value)
		return nil
	},
}

var portionResetCmd = &cobra.Command{
	Use:   "reset <item-id>",
	Short: "Reset the portion count to zero",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, date, err := portionTarget(args[0])
		if err != nil {
			return err
		}

		value, err := store.SetPortion(models.DateToID(date), item.ID, 0)
		if err != nil {
			return fmt.Errorf("failed to reset portions: %w", err)
		}
		printPortion(cmd, item, date, value)
		return nil
	},
}

// portionTarget resolves the item argument and the --date flag.
func portionTarget(arg string) (*models.PyramidItem, string, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, "", err
	}
	item, err := store.GetItem(id)
	if err != nil {
		return nil, "", fmt.Errorf("unknown item %d (see 'pyramid items')", id)
	}

	date := portionDate
	if date == "" {
		date = models.Today()
	}
	if err := checkDate(date); err != nil {
		return nil, "", err
	}
	return item, date, nil
}

func printPortion(cmd *cobra.Command, item *models.PyramidItem, date string, value int) {
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s on %s: %s\n",
		item.Label, date, progress(value, item.RecommendedPortions))
}

func init() {
	portionCmd.PersistentFlags().StringVar(&portionDate, "date", "", "day as YYYY-MM-DD (default today)")

	portionCmd.AddCommand(portionAddCmd, portionSetCmd, portionResetCmd)
	rootCmd.AddCommand(portionCmd)
}
