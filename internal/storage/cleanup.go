// ABOUTME: Maintenance pass that prunes day records with no recorded portions.
// ABOUTME: Dates in the keep list and unreadable files are left alone.

package storage

import (
	"fmt"
	"os"
)

// CleanupEmptyDays deletes every day file whose portion values are all
// zero, except for dates in keepDates. It returns the number removed.
func (s *JSONStore) CleanupEmptyDays(keepDates []string) (int, error) {
	keep := make(map[string]struct{}, len(keepDates))
	for _, d := range keepDates {
		keep[d] = struct{}{}
	}

	dates, err := s.dayDates()
	if err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}

	removed := 0
	for _, date := range dates {
		if _, ok := keep[date]; ok {
			continue
		}

		rec, status := s.LoadDay(date)
		if status != LoadOK || !rec.IsEmpty() {
			continue
		}

		if err := os.Remove(s.dayPath(date)); err != nil {
			return removed, fmt.Errorf("cleanup %s: %w", date, err)
		}
		s.log.Debugw("removed empty day", "date", date)
		removed++
	}
	return removed, nil
}
