// ABOUTME: SQLite snapshot export of pyramid data.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const snapshotSchema = `
CREATE TABLE pyramid_items (
	id INTEGER PRIMARY KEY,
	label TEXT NOT NULL,
	recommended_portions INTEGER NOT NULL,
	tier INTEGER NOT NULL,
	item_order INTEGER NOT NULL
);

CREATE TABLE days (
	id INTEGER PRIMARY KEY,
	entry_date TEXT NOT NULL UNIQUE
);

CREATE TABLE portions (
	day_id INTEGER NOT NULL REFERENCES days(id) ON DELETE CASCADE,
	item_id INTEGER NOT NULL,
	portions INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (day_id, item_id)
);

CREATE INDEX idx_portions_item ON portions(item_id);
`

// ExportSQLite writes a fresh SQLite database at dbPath containing the
// catalog, the days and their portion counts. An existing file is replaced.
func ExportSQLite(repo Repository, dbPath string) error {
	data, err := repo.GetAllData()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), dirPermissions); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(snapshotSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range data.Items {
		if _, err := tx.Exec(`INSERT INTO pyramid_items (id, label, recommended_portions, tier, item_order)
			VALUES (?, ?, ?, ?, ?)`,
			item.ID, item.Label, item.RecommendedPortions, item.Tier, item.ItemOrder); err != nil {
			return fmt.Errorf("insert item %d: %w", item.ID, err)
		}
	}

	for _, rec := range data.Days {
		if _, err := tx.Exec(`INSERT INTO days (id, entry_date) VALUES (?, ?)`, rec.ID, rec.EntryDate); err != nil {
			return fmt.Errorf("insert day %s: %w", rec.EntryDate, err)
		}
		for itemID, v := range rec.Portions {
			if _, err := tx.Exec(`INSERT INTO portions (day_id, item_id, portions) VALUES (?, ?, ?)`,
				rec.ID, itemID, v); err != nil {
				return fmt.Errorf("insert portion %s/%d: %w", rec.EntryDate, itemID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
