// ABOUTME: Export and import functionality for pyramid data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/pyramid/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export document.
const ExportVersion = "1.0"

// ExportData represents the full export format for pyramid data.
type ExportData struct {
	Version    string               `json:"version" yaml:"version"`
	ExportedAt time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool       string               `json:"tool" yaml:"tool"`
	Items      []models.PyramidItem `json:"items" yaml:"items"`
	Days       []*models.DayRecord  `json:"days" yaml:"days"`
}

// GetAllData retrieves the catalog and every readable day record.
// Days are ordered most recent first.
func (s *JSONStore) GetAllData() (*ExportData, error) {
	items, _ := s.LoadItems()

	days, err := s.ListDays()
	if err != nil {
		return nil, err
	}

	records := make([]*models.DayRecord, 0, len(days))
	for _, d := range days {
		rec, status := s.LoadDay(d.EntryDate)
		if status != LoadOK {
			continue
		}
		records = append(records, rec)
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "pyramid",
		Items:      items,
		Days:       records,
	}, nil
}

// ImportData replaces the catalog and writes every day record in data.
// Day ids are recomputed from their entry dates.
func (s *JSONStore) ImportData(data *ExportData) error {
	for _, rec := range data.Days {
		if !models.ValidDate(rec.EntryDate) {
			return fmt.Errorf("import day: invalid date %q", rec.EntryDate)
		}
	}

	items := data.Items
	if items == nil {
		items = []models.PyramidItem{}
	}
	if err := s.saveItems(items); err != nil {
		return fmt.Errorf("import items: %w", err)
	}

	for _, rec := range data.Days {
		rec.ID = models.DateToID(rec.EntryDate)
		if rec.Portions == nil {
			rec.Portions = make(map[int]int)
		}
		if err := s.writeDay(rec); err != nil {
			return fmt.Errorf("import day %s: %w", rec.EntryDate, err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON parses a JSON export and imports it.
func ImportJSON(repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse export: %w", err)
	}
	return repo.ImportData(&data)
}

type yamlDay struct {
	ID       int            `yaml:"id"`
	Portions map[string]int `yaml:"portions"`
}

// ExportYAML exports all data as YAML with days keyed by date and
// portions keyed by item label.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	labels := itemLabels(data.Items)

	yamlData := struct {
		Version    string               `yaml:"version"`
		ExportedAt string               `yaml:"exported_at"`
		Tool       string               `yaml:"tool"`
		Items      []models.PyramidItem `yaml:"items"`
		Days       map[string]yamlDay   `yaml:"days"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Items:      data.Items,
		Days:       make(map[string]yamlDay, len(data.Days)),
	}

	for _, rec := range data.Days {
		yd := yamlDay{ID: rec.ID, Portions: make(map[string]int, len(rec.Portions))}
		for itemID, v := range rec.Portions {
			yd.Portions[labelFor(labels, itemID)] = v
		}
		yamlData.Days[rec.EntryDate] = yd
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown renders one table per day, most recent first.
// since (YYYY-MM-DD, optional) drops earlier days.
func ExportMarkdown(repo Repository, since string) (string, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return "", err
	}

	items := append([]models.PyramidItem(nil), data.Items...)
	models.SortItems(items)

	var sb strings.Builder
	sb.WriteString("# Food Pyramid Log\n\n")
	fmt.Fprintf(&sb, "Exported: %s\n\n", data.ExportedAt.Format("2006-01-02 15:04"))

	written := 0
	for _, rec := range data.Days {
		if since != "" && rec.EntryDate < since {
			continue
		}
		written++

		fmt.Fprintf(&sb, "## %s\n\n", rec.EntryDate)
		sb.WriteString("| Category | Portions | Recommended |\n")
		sb.WriteString("|----------|----------|-------------|\n")
		for _, item := range items {
			fmt.Fprintf(&sb, "| %s | %d | %d |\n", item.Label, rec.Portions[item.ID], item.RecommendedPortions)
		}
		for _, id := range orphanIDs(rec, items) {
			fmt.Fprintf(&sb, "| %s | %d | - |\n", labelFor(nil, id), rec.Portions[id])
		}
		sb.WriteString("\n")
	}

	if written == 0 {
		sb.WriteString("_No days recorded._\n")
	}
	return sb.String(), nil
}

// itemLabels maps item ids to export keys. Labels shared by several
// items get an " (#<id>)" suffix so their counts stay separate.
func itemLabels(items []models.PyramidItem) map[int]string {
	seen := make(map[string]int, len(items))
	for _, item := range items {
		seen[item.Label]++
	}

	labels := make(map[int]string, len(items))
	for _, item := range items {
		if seen[item.Label] > 1 {
			labels[item.ID] = fmt.Sprintf("%s (#%d)", item.Label, item.ID)
			continue
		}
		labels[item.ID] = item.Label
	}
	return labels
}

// labelFor names an item id, falling back to "#<id>" for ids no longer
// in the catalog.
func labelFor(labels map[int]string, id int) string {
	if l, ok := labels[id]; ok {
		return l
	}
	return fmt.Sprintf("#%d", id)
}

// orphanIDs returns portion keys with no catalog item, sorted.
func orphanIDs(rec *models.DayRecord, items []models.PyramidItem) []int {
	known := make(map[int]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
	}
	var ids []int
	for id := range rec.Portions {
		if !known[id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
