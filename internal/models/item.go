// ABOUTME: PyramidItem model and the default food pyramid catalog.
// ABOUTME: Defines the eight seed categories and display ordering helpers.
package models

import "sort"

// PyramidItem is one category of the food pyramid with a daily portion target.
type PyramidItem struct {
	ID                  int    `json:"id" yaml:"id"`
	Label               string `json:"label" yaml:"label"`
	RecommendedPortions int    `json:"recommended_portions" yaml:"recommended_portions"`
	Tier                int    `json:"tier" yaml:"tier"`
	ItemOrder           int    `json:"item_order" yaml:"item_order"`
}

// SeedItems returns the default catalog written on first start.
// Tier 1 is the top of the pyramid (extras), tier 6 the base (beverages).
func SeedItems() []PyramidItem {
	return []PyramidItem{
		{ID: 1, Label: "Extras", RecommendedPortions: 1, Tier: 1, ItemOrder: 1},
		{ID: 2, Label: "Hülsenfrüchte, Fleisch, Fisch, Ei", RecommendedPortions: 1, Tier: 2, ItemOrder: 1},
		{ID: 3, Label: "Öle und Fette", RecommendedPortions: 2, Tier: 2, ItemOrder: 2},
		{ID: 4, Label: "Milch und Milchprodukte", RecommendedPortions: 2, Tier: 3, ItemOrder: 1},
		{ID: 5, Label: "Nüsse und Saaten", RecommendedPortions: 1, Tier: 3, ItemOrder: 2},
		{ID: 6, Label: "Brot, Getreide, Beilagen", RecommendedPortions: 4, Tier: 4, ItemOrder: 1},
		{ID: 7, Label: "Obst und Gemüse", RecommendedPortions: 5, Tier: 5, ItemOrder: 1},
		{ID: 8, Label: "Getränke", RecommendedPortions: 6, Tier: 6, ItemOrder: 1},
	}
}

// SortItems orders items by tier, then by item order within a tier.
// The sort is stable so items with equal keys keep catalog order.
func SortItems(items []PyramidItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Tier != items[j].Tier {
			return items[i].Tier < items[j].Tier
		}
		return items[i].ItemOrder < items[j].ItemOrder
	})
}

// NextItemID returns max(id)+1, or 1 for an empty catalog.
func NextItemID(items []PyramidItem) int {
	maxID := 0
	for _, item := range items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}
