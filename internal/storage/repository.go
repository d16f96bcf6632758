// ABOUTME: Repository interface for food pyramid data storage.
// ABOUTME: Defines the catalog, day, portion and maintenance operations.
package storage

import (
	"errors"

	"github.com/harperreed/pyramid/internal/models"
)

// ErrNotFound is returned when a requested item or day does not exist.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for pyramid data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Catalog operations
	ListItems() ([]models.PyramidItem, error)
	GetItem(id int) (*models.PyramidItem, error)
	CreateItem(label string, recommendedPortions, tier, itemOrder int) (int, error)
	UpdateItem(id int, label string, recommendedPortions, tier, itemOrder int) error
	DeleteItem(id int) error

	// Day operations
	ListDays() ([]models.Day, error)
	GetDay(id int) (*models.Day, error)
	UpsertDay(date string) (int, error)
	UpdateDay(id int, newDate string) error
	DeleteDay(id int) error

	// Portion operations
	EnsurePortionRows(dayID int) error
	GetPortionsForDay(dayID int) ([]models.ItemPortion, error)
	IncrementPortion(dayID, itemID, delta int) (int, error)
	SetPortion(dayID, itemID, portions int) (int, error)

	// Maintenance
	CleanupEmptyDays(keepDates []string) (int, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error
}
