// ABOUTME: DayRecord model and date/id conversion helpers.
// ABOUTME: A day id is the digits of its YYYY-MM-DD date (2024-03-07 -> 20240307).
package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the canonical entry_date layout.
const DateFormat = "2006-01-02"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Day identifies a tracked day without its portion data.
type Day struct {
	ID        int    `json:"id" yaml:"id"`
	EntryDate string `json:"entry_date" yaml:"entry_date"`
}

// DayRecord is the persisted portion counts for one calendar date.
// A missing key in Portions counts as zero.
type DayRecord struct {
	ID        int         `json:"id" yaml:"id"`
	EntryDate string      `json:"entry_date" yaml:"entry_date"`
	Portions  map[int]int `json:"portions" yaml:"portions"`
}

// NewDayRecord creates a record for date with a zero entry per item.
func NewDayRecord(date string, items []PyramidItem) *DayRecord {
	rec := &DayRecord{
		ID:        DateToID(date),
		EntryDate: date,
		Portions:  make(map[int]int, len(items)),
	}
	for _, item := range items {
		rec.Portions[item.ID] = 0
	}
	return rec
}

// Day returns the id/date pair of the record.
func (r *DayRecord) Day() Day {
	return Day{ID: r.ID, EntryDate: r.EntryDate}
}

// IsEmpty reports whether no portion value is above zero.
func (r *DayRecord) IsEmpty() bool {
	for _, v := range r.Portions {
		if v > 0 {
			return false
		}
	}
	return true
}

// ItemPortion is a catalog item merged with its count for one day.
type ItemPortion struct {
	PyramidItem
	Portions int `json:"portions" yaml:"portions"`
}

// ValidDate reports whether s has the YYYY-MM-DD shape.
// Calendar correctness is not checked: "2024-02-30" is accepted.
func ValidDate(s string) bool {
	return dateRe.MatchString(s)
}

// DateToID strips the separators from a date and returns the digits as an int.
// Malformed input yields 0.
func DateToID(date string) int {
	id, err := strconv.Atoi(strings.ReplaceAll(date, "-", ""))
	if err != nil {
		return 0
	}
	return id
}

// IDToDate is the inverse of DateToID for eight-digit ids.
func IDToDate(id int) string {
	s := strconv.Itoa(id)
	if len(s) < 8 {
		s = strings.Repeat("0", 8-len(s)) + s
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:8]
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateFormat)
}
