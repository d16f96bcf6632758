// ABOUTME: Day record operations on the JSONStore.
// ABOUTME: List, lookup, upsert, rename and delete of per-day portion files.

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/harperreed/pyramid/internal/models"
)

// ListDays returns every persisted day, most recent first.
func (s *JSONStore) ListDays() ([]models.Day, error) {
	dates, err := s.dayDates()
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}

	days := make([]models.Day, 0, len(dates))
	for _, date := range dates {
		days = append(days, models.Day{ID: models.DateToID(date), EntryDate: date})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].ID > days[j].ID
	})
	return days, nil
}

// GetDay returns the id/date pair if a file exists for the id's date.
// Portion data is not read.
func (s *JSONStore) GetDay(id int) (*models.Day, error) {
	date := models.IDToDate(id)
	if _, err := os.Stat(s.dayPath(date)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("day %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("stat day %d: %w", id, err)
	}
	return &models.Day{ID: id, EntryDate: date}, nil
}

// UpsertDay creates a zeroed record for date if none exists and returns
// the day id. An existing record is left untouched.
func (s *JSONStore) UpsertDay(date string) (int, error) {
	id := models.DateToID(date)
	if _, err := os.Stat(s.dayPath(date)); err == nil {
		return id, nil
	}

	items, _ := s.LoadItems()
	if err := s.writeDay(models.NewDayRecord(date, items)); err != nil {
		return 0, fmt.Errorf("create day %s: %w", date, err)
	}
	return id, nil
}

// UpdateDay moves the record for id to newDate, rewriting its id and
// entry date. A missing source day is an error.
func (s *JSONStore) UpdateDay(id int, newDate string) error {
	oldDate := models.IDToDate(id)

	rec, status, err := s.readDay(oldDate)
	if status != LoadOK {
		return fmt.Errorf("read day %s: %w", oldDate, err)
	}

	rec.ID = models.DateToID(newDate)
	rec.EntryDate = newDate
	if err := s.writeDay(rec); err != nil {
		return fmt.Errorf("write day %s: %w", newDate, err)
	}

	if newDate == oldDate {
		return nil
	}
	if err := os.Remove(s.dayPath(oldDate)); err != nil {
		return fmt.Errorf("remove day %s: %w", oldDate, err)
	}
	return nil
}

// DeleteDay removes the file for id's date. A missing file is not an error.
func (s *JSONStore) DeleteDay(id int) error {
	err := os.Remove(s.dayPath(models.IDToDate(id)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete day %d: %w", id, err)
	}
	return nil
}
