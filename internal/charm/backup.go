// ABOUTME: Backup and restore of pyramid data through Charm KV.
// ABOUTME: Push mirrors the local store to the KV, Pull restores it, Status counts what is stored.
package charm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/pyramid/internal/models"
	"github.com/harperreed/pyramid/internal/storage"
)

// DayKey returns the KV key for a day record.
func DayKey(date string) string {
	return DayPrefix + date
}

// PushResult summarizes a Push.
type PushResult struct {
	Items   int
	Days    int
	Removed int
}

// Status describes what the KV currently holds.
type Status struct {
	HasCatalog bool
	Days       int
	Latest     string
	ReadOnly   bool
}

// Push writes the catalog and every readable day record, deletes day keys
// whose file no longer exists locally, then syncs once.
func (c *Client) Push(repo storage.Repository) (*PushResult, error) {
	if c.IsReadOnly() {
		return nil, ErrReadOnly
	}

	data, err := repo.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read local data: %w", err)
	}

	c.SetAutoSync(false)
	defer c.SetAutoSync(true)

	catalog, err := json.Marshal(data.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	if err := c.set(CatalogKey, catalog); err != nil {
		return nil, fmt.Errorf("push catalog: %w", err)
	}

	// Unreadable local day files still count as present so their last
	// good copy in the KV is kept.
	days, err := repo.ListDays()
	if err != nil {
		return nil, fmt.Errorf("list local days: %w", err)
	}
	local := make(map[string]bool, len(days))
	for _, d := range days {
		local[DayKey(d.EntryDate)] = true
	}

	for _, rec := range data.Days {
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshal day %s: %w", rec.EntryDate, err)
		}
		if err := c.set(DayKey(rec.EntryDate), raw); err != nil {
			return nil, fmt.Errorf("push day %s: %w", rec.EntryDate, err)
		}
	}

	remote, err := c.keysByPrefix(DayPrefix)
	if err != nil {
		return nil, fmt.Errorf("list remote days: %w", err)
	}
	removed := 0
	for _, key := range remote {
		if local[key] {
			continue
		}
		if err := c.delete(key); err != nil {
			return nil, fmt.Errorf("remove %s: %w", key, err)
		}
		removed++
	}

	if err := c.Sync(); err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}

	return &PushResult{Items: len(data.Items), Days: len(data.Days), Removed: removed}, nil
}

// Pull syncs, then imports the stored catalog and day records into repo.
// Local days missing from the KV are left alone.
func (c *Client) Pull(repo storage.Repository) (*storage.ExportData, error) {
	if err := c.Sync(); err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}

	raw, err := c.get(CatalogKey)
	if err != nil {
		return nil, fmt.Errorf("no backup found: %w", err)
	}
	var items []models.PyramidItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	keys, err := c.keysByPrefix(DayPrefix)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	sort.Strings(keys)

	days := make([]*models.DayRecord, 0, len(keys))
	for _, key := range keys {
		raw, err := c.get(key)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var rec models.DayRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		rec.EntryDate = strings.TrimPrefix(key, DayPrefix)
		days = append(days, &rec)
	}

	data := &storage.ExportData{
		Version:    storage.ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "pyramid",
		Items:      items,
		Days:       days,
	}
	if err := repo.ImportData(data); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return data, nil
}

// Status reports what the KV holds without touching the local store.
func (c *Client) Status() (*Status, error) {
	hasCatalog, err := c.hasKey(CatalogKey)
	if err != nil {
		return nil, err
	}

	keys, err := c.keysByPrefix(DayPrefix)
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	st := &Status{
		HasCatalog: hasCatalog,
		Days:       len(keys),
		ReadOnly:   c.IsReadOnly(),
	}
	if len(keys) > 0 {
		st.Latest = strings.TrimPrefix(keys[len(keys)-1], DayPrefix)
	}
	return st, nil
}
