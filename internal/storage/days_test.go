// ABOUTME: Tests for day record operations on the JSONStore.
// ABOUTME: Covers upsert idempotency, listing order, rename and delete.
package storage

import (
	"errors"
	"os"
	"testing"
)

func TestUpsertDaySeedScenario(t *testing.T) {
	store := setupTestStore(t)

	id, err := store.UpsertDay("2024-05-01")
	if err != nil {
		t.Fatalf("UpsertDay failed: %v", err)
	}
	if id != 20240501 {
		t.Errorf("Expected id 20240501, got %d", id)
	}

	rec, status := store.LoadDay("2024-05-01")
	if status != LoadOK {
		t.Fatalf("Expected day file, got %s", status)
	}
	if rec.ID != 20240501 || rec.EntryDate != "2024-05-01" {
		t.Errorf("Unexpected record header: %d %s", rec.ID, rec.EntryDate)
	}
	if len(rec.Portions) != 8 {
		t.Fatalf("Expected 8 portion entries, got %d", len(rec.Portions))
	}
	for itemID, v := range rec.Portions {
		if v != 0 {
			t.Errorf("Expected zero for item %d, got %d", itemID, v)
		}
	}
}

func TestUpsertDayIdempotent(t *testing.T) {
	store := setupTestStore(t)

	id, _ := store.UpsertDay("2024-05-01")
	if _, err := store.IncrementPortion(id, 2, 3); err != nil {
		t.Fatalf("IncrementPortion failed: %v", err)
	}

	again, err := store.UpsertDay("2024-05-01")
	if err != nil {
		t.Fatalf("UpsertDay failed: %v", err)
	}
	if again != id {
		t.Errorf("Expected same id %d, got %d", id, again)
	}

	rec, _ := store.LoadDay("2024-05-01")
	if rec.Portions[2] != 3 {
		t.Errorf("Expected existing portions untouched, got %d", rec.Portions[2])
	}
}

func TestListDaysOrder(t *testing.T) {
	store := setupTestStore(t)

	for _, d := range []string{"2024-03-07", "2023-12-31", "2024-05-01"} {
		if _, err := store.UpsertDay(d); err != nil {
			t.Fatalf("UpsertDay failed: %v", err)
		}
	}

	days, err := store.ListDays()
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	want := []int{20240501, 20240307, 20231231}
	if len(days) != len(want) {
		t.Fatalf("Expected %d days, got %d", len(want), len(days))
	}
	for i, d := range days {
		if d.ID != want[i] {
			t.Errorf("Position %d: expected %d, got %d", i, want[i], d.ID)
		}
	}
}

func TestListDaysEmpty(t *testing.T) {
	store := setupTestStore(t)

	days, err := store.ListDays()
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("Expected no days, got %d", len(days))
	}
}

func TestGetDay(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.UpsertDay("2024-05-01"); err != nil {
		t.Fatalf("UpsertDay failed: %v", err)
	}

	day, err := store.GetDay(20240501)
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	if day.EntryDate != "2024-05-01" {
		t.Errorf("Expected 2024-05-01, got %s", day.EntryDate)
	}

	if _, err := store.GetDay(20240502); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDayRename(t *testing.T) {
	store := setupTestStore(t)
	id, _ := store.UpsertDay("2024-05-01")
	if _, err := store.SetPortion(id, 3, 4); err != nil {
		t.Fatalf("SetPortion failed: %v", err)
	}

	if err := store.UpdateDay(id, "2024-05-02"); err != nil {
		t.Fatalf("UpdateDay failed: %v", err)
	}

	if _, err := os.Stat(store.dayPath("2024-05-01")); !os.IsNotExist(err) {
		t.Error("Expected old day file removed")
	}
	rec, status := store.LoadDay("2024-05-02")
	if status != LoadOK {
		t.Fatalf("Expected new day file, got %s", status)
	}
	if rec.ID != 20240502 || rec.EntryDate != "2024-05-02" {
		t.Errorf("Unexpected header: %d %s", rec.ID, rec.EntryDate)
	}
	if rec.Portions[3] != 4 {
		t.Errorf("Expected portions carried over, got %d", rec.Portions[3])
	}
}

func TestUpdateDaySameDate(t *testing.T) {
	store := setupTestStore(t)
	id, _ := store.UpsertDay("2024-05-01")

	if err := store.UpdateDay(id, "2024-05-01"); err != nil {
		t.Fatalf("UpdateDay failed: %v", err)
	}
	if _, status := store.LoadDay("2024-05-01"); status != LoadOK {
		t.Errorf("Expected day to survive same-date rename, got %s", status)
	}
}

func TestUpdateDayMissingSource(t *testing.T) {
	store := setupTestStore(t)

	if err := store.UpdateDay(20240501, "2024-05-02"); err == nil {
		t.Error("Expected error renaming a missing day")
	}
	if _, status := store.LoadDay("2024-05-02"); status != LoadMissing {
		t.Errorf("Expected no target file, got %s", status)
	}
}

func TestDeleteDay(t *testing.T) {
	store := setupTestStore(t)
	id, _ := store.UpsertDay("2024-05-01")

	if err := store.DeleteDay(id); err != nil {
		t.Fatalf("DeleteDay failed: %v", err)
	}
	if _, err := store.GetDay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected day gone, got %v", err)
	}

	// Deleting again is not an error.
	if err := store.DeleteDay(id); err != nil {
		t.Errorf("Expected second delete to succeed, got %v", err)
	}
}
