// ABOUTME: Tests for PyramidItem model and seed catalog.
// ABOUTME: Validates seed contents, sort order, and id assignment.
package models

import (
	"testing"
)

func TestSeedItems(t *testing.T) {
	items := SeedItems()
	if len(items) != 8 {
		t.Fatalf("len(SeedItems()) = %d, want 8", len(items))
	}

	for i, item := range items {
		if item.ID != i+1 {
			t.Errorf("items[%d].ID = %d, want %d", i, item.ID, i+1)
		}
		if item.Label == "" {
			t.Errorf("items[%d] has empty label", i)
		}
	}

	if items[0].Label != "Extras" || items[0].Tier != 1 {
		t.Errorf("first seed item = %+v, want Extras in tier 1", items[0])
	}
	if items[7].Label != "Getränke" || items[7].RecommendedPortions != 6 {
		t.Errorf("last seed item = %+v, want Getränke with 6 portions", items[7])
	}
}

func TestSeedItemsReturnsCopy(t *testing.T) {
	a := SeedItems()
	a[0].Label = "changed"

	b := SeedItems()
	if b[0].Label != "Extras" {
		t.Errorf("SeedItems shares state between calls: got %q", b[0].Label)
	}
}

func TestSortItems(t *testing.T) {
	items := []PyramidItem{
		{ID: 1, Tier: 3, ItemOrder: 2},
		{ID: 2, Tier: 1, ItemOrder: 1},
		{ID: 3, Tier: 3, ItemOrder: 1},
		{ID: 4, Tier: 2, ItemOrder: 5},
	}

	SortItems(items)

	want := []int{2, 4, 3, 1}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, id)
		}
	}
}

func TestNextItemID(t *testing.T) {
	tests := []struct {
		name  string
		items []PyramidItem
		want  int
	}{
		{"empty catalog", nil, 1},
		{"seed catalog", SeedItems(), 9},
		{"gap in ids", []PyramidItem{{ID: 2}, {ID: 10}, {ID: 4}}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextItemID(tt.items); got != tt.want {
				t.Errorf("NextItemID() = %d, want %d", got, tt.want)
			}
		})
	}
}
