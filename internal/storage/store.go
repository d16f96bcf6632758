// ABOUTME: JSONStore keeps the catalog and per-day portion records as JSON files.
// ABOUTME: Provides construction, one-time seeding, path helpers and read/write primitives.

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/harperreed/pyramid/internal/logger"
	"github.com/harperreed/pyramid/internal/models"
)

const (
	itemsFileName  = "pyramid_items.json"
	dayFileSuffix  = "_portions.json"
	dirPermissions = 0750
	filePerms      = 0600
)

// LoadStatus reports how a persisted document was obtained.
// Both non-OK statuses default to empty data.
type LoadStatus int

const (
	// LoadOK means the document was read and parsed.
	LoadOK LoadStatus = iota
	// LoadMissing means the file does not exist.
	LoadMissing
	// LoadCorrupt means the file exists but could not be read or parsed.
	LoadCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// JSONStore provides file-based storage for pyramid data.
// It keeps no cache: every operation re-reads the files it needs.
// Writes are not coordinated between callers; two concurrent updates of
// the same day can lose one of them.
type JSONStore struct {
	dataDir string
	log     *logger.Logger

	initMu      sync.Mutex
	initialized bool
}

// Compile-time check that JSONStore implements Repository.
var _ Repository = (*JSONStore)(nil)

// Option configures a JSONStore.
type Option func(*JSONStore)

// WithLogger sets the logger used for seeding and corrupt-file warnings.
func WithLogger(l *logger.Logger) Option {
	return func(s *JSONStore) {
		if l != nil {
			s.log = l.WithComponent("store")
		}
	}
}

// NewJSONStore creates a new JSON-backed store rooted at dataDir.
func NewJSONStore(dataDir string, opts ...Option) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := &JSONStore{dataDir: dataDir, log: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DataDir returns the directory the store reads and writes.
func (s *JSONStore) DataDir() string {
	return s.dataDir
}

// Init seeds the catalog with the default pyramid if it is empty.
// It runs at most once successfully per store; later calls are no-ops.
// An existing catalog is never touched, even if seed items are missing.
func (s *JSONStore) Init() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.initialized {
		return nil
	}

	if err := os.MkdirAll(s.dataDir, dirPermissions); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	items, _ := s.LoadItems()
	if len(items) == 0 {
		seed := models.SeedItems()
		if err := s.saveItems(seed); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		s.log.Infow("seeded catalog", "items", len(seed), "path", s.itemsPath())
	}

	s.initialized = true
	return nil
}

// itemsPath returns the path of the catalog document.
func (s *JSONStore) itemsPath() string {
	return filepath.Join(s.dataDir, itemsFileName)
}

// dayPath returns the path for a day file.
// Format: <YYYY-MM-DD>_portions.json.
func (s *JSONStore) dayPath(date string) string {
	return filepath.Join(s.dataDir, date+dayFileSuffix)
}

// readJSON decodes the file at path into v.
func readJSON(path string, v any) (LoadStatus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadMissing, err
		}
		return LoadCorrupt, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return LoadCorrupt, fmt.Errorf("parse %s: %w", path, err)
	}
	return LoadOK, nil
}

// writeJSON writes v pretty-printed to path via a temp file and rename.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(filePerms); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}

// LoadItems reads the catalog. A missing or unreadable catalog yields an
// empty slice; the status tells the two apart.
func (s *JSONStore) LoadItems() ([]models.PyramidItem, LoadStatus) {
	var items []models.PyramidItem
	status, err := readJSON(s.itemsPath(), &items)
	if status != LoadOK {
		if status == LoadCorrupt {
			s.log.Warnw("catalog unreadable, using empty catalog", "path", s.itemsPath(), "error", err)
		}
		return []models.PyramidItem{}, status
	}
	if items == nil {
		items = []models.PyramidItem{}
	}
	return items, LoadOK
}

// saveItems persists the catalog.
func (s *JSONStore) saveItems(items []models.PyramidItem) error {
	return writeJSON(s.itemsPath(), items)
}

// LoadDay reads the record for date. A missing or unreadable file yields
// nil; the status tells the two apart.
func (s *JSONStore) LoadDay(date string) (*models.DayRecord, LoadStatus) {
	rec, status, _ := s.readDay(date)
	return rec, status
}

// readDay reads the record for date and returns the underlying error for
// non-OK statuses.
func (s *JSONStore) readDay(date string) (*models.DayRecord, LoadStatus, error) {
	path := s.dayPath(date)
	var rec models.DayRecord
	status, err := readJSON(path, &rec)
	if status != LoadOK {
		if status == LoadCorrupt {
			s.log.Warnw("day file unreadable", "path", path, "error", err)
		}
		return nil, status, err
	}
	if rec.Portions == nil {
		rec.Portions = make(map[int]int)
	}
	return &rec, LoadOK, nil
}

// writeDay persists a day record under its entry date.
func (s *JSONStore) writeDay(rec *models.DayRecord) error {
	return writeJSON(s.dayPath(rec.EntryDate), rec)
}

// dayDates returns the dates of every persisted day file, in directory order.
func (s *JSONStore) dayDates() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, dayFileSuffix) || strings.HasPrefix(name, ".") {
			continue
		}
		dates = append(dates, strings.SplitN(name, "_", 2)[0])
	}
	sort.Strings(dates)
	return dates, nil
}
