package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/smartone/finance-board-game/game/engine"
	"github.com/smartone/finance-board-game/game/service"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCatalog   = errors.New("invalid catalog")
)

// Catalog mirrors the JSON shape of the category data file.
type Catalog struct {
	Categories map[string]*engine.CategoryConfig `json:"categories"`
	Default    string                            `json:"default,omitempty"`
}

// Manager loads and caches the category catalog. It implements
// service.CategoryProvider.
type Manager struct {
	path    string
	catalog *Catalog
	mu      sync.RWMutex
}

// NewManager creates a catalog manager. When path is empty or the file does
// not exist, the built-in catalog is used so the server always has something
// playable.
func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload re-reads the catalog from disk, falling back to the built-in
// catalog when no file is configured or present. Every category is validated
// before the catalog is swapped in.
func (m *Manager) Reload() error {
	catalog, err := m.load()
	if err != nil {
		return err
	}

	for key, cfg := range catalog.Categories {
		if err := engine.ValidateCategoryConfig(cfg); err != nil {
			return fmt.Errorf("%w: category %q: %v", ErrInvalidCatalog, key, err)
		}
	}
	if len(catalog.Categories) == 0 {
		return fmt.Errorf("%w: no categories defined", ErrInvalidCatalog)
	}
	if catalog.Default != "" {
		if _, ok := catalog.Categories[catalog.Default]; !ok {
			return fmt.Errorf("%w: default category %q not defined", ErrInvalidCatalog, catalog.Default)
		}
	}

	m.mu.Lock()
	m.catalog = catalog
	m.mu.Unlock()
	return nil
}

func (m *Manager) load() (*Catalog, error) {
	if m.path == "" {
		return builtinCatalog(), nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return builtinCatalog(), nil
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return &catalog, nil
}

// Category returns the validated configuration for a category key.
func (m *Manager) Category(key string) (*engine.CategoryConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.catalog.Categories[key]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return cfg, nil
}

// List returns summaries of all categories, ordered by key.
func (m *Manager) List() ([]*service.CategoryInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.catalog.Categories))
	for key := range m.catalog.Categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	infos := make([]*service.CategoryInfo, 0, len(keys))
	for _, key := range keys {
		cfg := m.catalog.Categories[key]
		items := len(cfg.QuizBank)
		for _, bank := range cfg.QuizLevels {
			items += len(bank)
		}
		infos = append(infos, &service.CategoryInfo{
			Key:        key,
			Name:       cfg.Name,
			TileCount:  len(cfg.Tiles),
			QuizLevels: len(cfg.QuizLevels),
			QuizItems:  items,
		})
	}
	return infos, nil
}

// DefaultKey returns the catalog's default category key: the configured
// default when set, otherwise the first key in sorted order.
func (m *Manager) DefaultKey() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog.Default != "" {
		return m.catalog.Default
	}

	keys := make([]string, 0, len(m.catalog.Categories))
	for key := range m.catalog.Categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
