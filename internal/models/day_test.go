// ABOUTME: Tests for DayRecord model and date/id conversion.
// ABOUTME: Covers round trips, validation, and emptiness checks.
package models

import (
	"testing"
)

func TestDateToID(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-03-07", 20240307},
		{"2024-05-01", 20240501},
		{"1999-12-31", 19991231},
		{"2024-02-30", 20240230},
		{"not-a-date", 0},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := DateToID(tt.date); got != tt.want {
				t.Errorf("DateToID(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestIDToDate(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{20240307, "2024-03-07"},
		{20241231, "2024-12-31"},
		{10101, "0001-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := IDToDate(tt.id); got != tt.want {
				t.Errorf("IDToDate(%d) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestDateIDRoundTrip(t *testing.T) {
	dates := []string{"2024-01-01", "2024-02-29", "2024-02-30", "2023-11-09", "0999-09-09"}
	for _, d := range dates {
		if got := IDToDate(DateToID(d)); got != d {
			t.Errorf("IDToDate(DateToID(%q)) = %q", d, got)
		}
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-03-07", true},
		{"2024-02-30", true},
		{"2024-3-7", false},
		{"20240307", false},
		{"2024-03-07T00:00", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidDate(tt.input); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewDayRecord(t *testing.T) {
	rec := NewDayRecord("2024-05-01", SeedItems())

	if rec.ID != 20240501 {
		t.Errorf("ID = %d, want 20240501", rec.ID)
	}
	if rec.EntryDate != "2024-05-01" {
		t.Errorf("EntryDate = %q, want 2024-05-01", rec.EntryDate)
	}
	if len(rec.Portions) != 8 {
		t.Errorf("len(Portions) = %d, want 8", len(rec.Portions))
	}
	for id, v := range rec.Portions {
		if v != 0 {
			t.Errorf("Portions[%d] = %d, want 0", id, v)
		}
	}
}

func TestDayRecordIsEmpty(t *testing.T) {
	rec := &DayRecord{Portions: map[int]int{1: 0, 2: 0}}
	if !rec.IsEmpty() {
		t.Error("expected all-zero record to be empty")
	}

	rec.Portions[2] = 1
	if rec.IsEmpty() {
		t.Error("expected record with a nonzero value to be non-empty")
	}

	if !(&DayRecord{}).IsEmpty() {
		t.Error("expected record without portions to be empty")
	}
}
