// ABOUTME: Portion count operations on the JSONStore.
// ABOUTME: Backfills missing catalog keys and applies clamped increments and sets.

package storage

import (
	"fmt"

	"github.com/harperreed/pyramid/internal/models"
)

// EnsurePortionRows adds a zero entry for every catalog item missing from
// the day's portions and writes only if something changed. Without a
// readable record it falls back to UpsertDay.
func (s *JSONStore) EnsurePortionRows(dayID int) error {
	date := models.IDToDate(dayID)
	items, _ := s.LoadItems()

	rec, status := s.LoadDay(date)
	if status != LoadOK {
		_, err := s.UpsertDay(date)
		return err
	}

	modified := false
	for _, item := range items {
		if _, ok := rec.Portions[item.ID]; !ok {
			rec.Portions[item.ID] = 0
			modified = true
		}
	}
	if !modified {
		return nil
	}
	if err := s.writeDay(rec); err != nil {
		return fmt.Errorf("backfill day %s: %w", date, err)
	}
	return nil
}

// GetPortionsForDay merges every catalog item with its count for the day,
// in catalog order. Absent keys and absent days count as zero.
func (s *JSONStore) GetPortionsForDay(dayID int) ([]models.ItemPortion, error) {
	items, _ := s.LoadItems()

	var portions map[int]int
	if rec, status := s.LoadDay(models.IDToDate(dayID)); status == LoadOK {
		portions = rec.Portions
	}

	result := make([]models.ItemPortion, 0, len(items))
	for _, item := range items {
		result = append(result, models.ItemPortion{
			PyramidItem: item,
			Portions:    portions[item.ID],
		})
	}
	return result, nil
}

// IncrementPortion adds delta to the item's count, clamping at zero, and
// returns the stored value. The day is created if needed.
func (s *JSONStore) IncrementPortion(dayID, itemID, delta int) (int, error) {
	rec, err := s.loadOrCreateDay(dayID)
	if err != nil {
		return 0, err
	}

	value := max(rec.Portions[itemID]+delta, 0)
	rec.Portions[itemID] = value

	if err := s.writeDay(rec); err != nil {
		return 0, fmt.Errorf("increment portion: %w", err)
	}
	return value, nil
}

// SetPortion stores an absolute count for the item and returns it.
// Negative values are stored as zero.
func (s *JSONStore) SetPortion(dayID, itemID, portions int) (int, error) {
	rec, err := s.loadOrCreateDay(dayID)
	if err != nil {
		return 0, err
	}

	value := max(portions, 0)
	rec.Portions[itemID] = value

	if err := s.writeDay(rec); err != nil {
		return 0, fmt.Errorf("set portion: %w", err)
	}
	return value, nil
}

// loadOrCreateDay reads the day record, upserting it first when absent.
func (s *JSONStore) loadOrCreateDay(dayID int) (*models.DayRecord, error) {
	date := models.IDToDate(dayID)

	rec, status := s.LoadDay(date)
	if status == LoadOK {
		return rec, nil
	}

	if _, err := s.UpsertDay(date); err != nil {
		return nil, err
	}
	rec, status, err := s.readDay(date)
	if status != LoadOK {
		return nil, fmt.Errorf("load day %s: %w", date, err)
	}
	return rec, nil
}
