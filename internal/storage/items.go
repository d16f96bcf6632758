// ABOUTME: Catalog operations on the JSONStore.
// ABOUTME: Item CRUD; deleting an item also strips it from every day record.

package storage

import (
	"fmt"

	"github.com/harperreed/pyramid/internal/models"
)

// ListItems returns the catalog in stored order.
// Callers wanting display order use models.SortItems.
func (s *JSONStore) ListItems() ([]models.PyramidItem, error) {
	items, _ := s.LoadItems()
	return items, nil
}

// GetItem returns the item with the given id or ErrNotFound.
func (s *JSONStore) GetItem(id int) (*models.PyramidItem, error) {
	items, _ := s.LoadItems()
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
}

// CreateItem appends a new item with id max+1 and returns that id.
func (s *JSONStore) CreateItem(label string, recommendedPortions, tier, itemOrder int) (int, error) {
	items, _ := s.LoadItems()
	item := models.PyramidItem{
		ID:                  models.NextItemID(items),
		Label:               label,
		RecommendedPortions: recommendedPortions,
		Tier:                tier,
		ItemOrder:           itemOrder,
	}
	items = append(items, item)
	if err := s.saveItems(items); err != nil {
		return 0, fmt.Errorf("create item: %w", err)
	}
	return item.ID, nil
}

// UpdateItem replaces the mutable fields of an item.
// An unknown id is a no-op.
func (s *JSONStore) UpdateItem(id int, label string, recommendedPortions, tier, itemOrder int) error {
	items, _ := s.LoadItems()
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i] = models.PyramidItem{
			ID:                  id,
			Label:               label,
			RecommendedPortions: recommendedPortions,
			Tier:                tier,
			ItemOrder:           itemOrder,
		}
		if err := s.saveItems(items); err != nil {
			return fmt.Errorf("update item %d: %w", id, err)
		}
		return nil
	}
	return nil
}

// DeleteItem removes an item from the catalog and its key from every
// day record. Unreadable day files are skipped.
func (s *JSONStore) DeleteItem(id int) error {
	items, _ := s.LoadItems()
	kept := make([]models.PyramidItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := s.saveItems(kept); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	dates, err := s.dayDates()
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	for _, date := range dates {
		rec, status := s.LoadDay(date)
		if status != LoadOK {
			continue
		}
		if _, ok := rec.Portions[id]; !ok {
			continue
		}
		delete(rec.Portions, id)
		if err := s.writeDay(rec); err != nil {
			return fmt.Errorf("remove item %d from %s: %w", id, date, err)
		}
	}
	return nil
}
