// ABOUTME: CLI commands for managing the pyramid catalog.
// ABOUTME: Supports list, add, update and delete of food categories.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/pyramid/internal/models"
	"github.com/spf13/cobra"
)

var (
	addPortions int
	addTier     int
	addOrder    int

	updateLabel    string
	updatePortions int
	updateTier     int
	updateOrder    int
)

var itemsCmd = &cobra.Command{
	Use:     "items",
	Aliases: []string{"item", "i"},
	Short:   "Manage the food pyramid catalog",
	Long: `List and edit the food categories of the pyramid.

Each category has an id (used by 'pyramid portion'), a label, the
recommended portions per day, a tier and an order within the tier.
Categories are shown tier by tier.

EXAMPLES:

  pyramid items                                  # List categories
  pyramid items add "Nüsse" --tier 3 --portions 1
  pyramid items update 5 --portions 2            # Change one field
  pyramid items delete 9                         # Remove category 9 from catalog and all days`,
	RunE: runItemsList,
}

var itemsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List catalog items",
	Args:    cobra.NoArgs,
	RunE:    runItemsList,
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a catalog item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := strings.TrimSpace(args[0])
		if label == "" {
			return fmt.Errorf("label must not be empty")
		}

		id, err := store.CreateItem(label, addPortions, addTier, addOrder)
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Added %s (ID: %d)\n", label, id)
		return nil
	},
}

var itemsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a catalog item",
	Long: `Update a catalog item. Only the flags you pass are changed.

EXAMPLES:

  pyramid items update 8 --label "Wasser" --portions 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		item, err := store.GetItem(id)
		if err != nil {
			return fmt.Errorf("failed to find item: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("label") {
			item.Label = updateLabel
		}
		if flags.Changed("portions") {
			item.RecommendedPortions = updatePortions
		}
		if flags.Changed("tier") {
			item.Tier = updateTier
		}
		if flags.Changed("order") {
			item.ItemOrder = updateOrder
		}

		if err := store.UpdateItem(id, item.Label, item.RecommendedPortions, item.Tier, item.ItemOrder); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s (ID: %d)\n", item.Label, id)
		return nil
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a catalog item and its portions",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		item, err := store.GetItem(id)
		if err != nil {
			return fmt.Errorf("failed to find item: %w", err)
		}

		if err := store.DeleteItem(id); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Deleted %s (ID: %d)\n", item.Label, id)
		return nil
	},
}

func runItemsList(cmd *cobra.Command, args []string) error {
	items, err := store.ListItems()
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No items found.")
		return nil
	}

	models.SortItems(items)

	faint := color.New(color.Faint)
	bold := color.New(color.Bold)
	tier := items[0].Tier - 1
	for _, item := range items {
		if item.Tier != tier {
			tier = item.Tier
			bold.Fprintf(out, "Tier %d\n", tier)
		}
		fmt.Fprintf(out, "  %s %s %s\n",
			faint.Sprintf("%3d", item.ID),
			padRight(item.Label, 36),
			faint.Sprintf("%d/day", item.RecommendedPortions))
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func init() {
	itemsAddCmd.Flags().IntVarP(&addPortions, "portions", "p", 1, "recommended portions per day")
	itemsAddCmd.Flags().IntVarP(&addTier, "tier", "t", 1, "pyramid tier (1 is the top)")
	itemsAddCmd.Flags().IntVarP(&addOrder, "order", "o", 1, "order within the tier")

	itemsUpdateCmd.Flags().StringVarP(&updateLabel, "label", "l", "", "new label")
	itemsUpdateCmd.Flags().IntVarP(&updatePortions, "portions", "p", 0, "recommended portions per day")
	itemsUpdateCmd.Flags().IntVarP(&updateTier, "tier", "t", 0, "pyramid tier")
	itemsUpdateCmd.Flags().IntVarP(&updateOrder, "order", "o", 0, "order within the tier")

	itemsCmd.AddCommand(itemsListCmd, itemsAddCmd, itemsUpdateCmd, itemsDeleteCmd)
	rootCmd.AddCommand(itemsCmd)
}
