package deck

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"deckcheck/internal/normalize"
)

// document is the on-disk shape of commanders.json.
type document struct {
	UpdatedAt  string `json:"updatedAt"`
	Commanders []Deck `json:"commanders"`
}

// Dataset loads the commander document once and keeps it in memory for the
// process lifetime; Load after a successful load is a no-op. It also carries
// a normalized-name index used by exact and fuzzy lookup.
type Dataset struct {
	path string

	mu        sync.Mutex
	loaded    bool
	updatedAt string
	decks     []Deck
	byName    map[string][]int // normalized commander name -> deck indexes
	allNames  []string         // deduped normalized names, for fuzzy scan
}

func NewDataset(path string) *Dataset {
	return &Dataset{path: path}
}

// Load reads and indexes the dataset. Safe for concurrent use.
func (d *Dataset) Load() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return nil
	}

	b, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read dataset %s: %w", d.path, err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode dataset %s: %w", d.path, err)
	}

	d.updatedAt = doc.UpdatedAt
	d.decks = doc.Commanders
	d.index()
	d.loaded = true

	slog.Info("commander dataset loaded",
		"path", d.path,
		"commanders", len(d.decks),
		"updated_at", d.updatedAt,
	)
	return nil
}

func (d *Dataset) index() {
	d.byName = make(map[string][]int, len(d.decks))
	seen := make(map[string]struct{}, len(d.decks))

	for i, dk := range d.decks {
		n := normalize.Name(dk.Name)
		if n == "" {
			continue
		}
		d.byName[n] = append(d.byName[n], i)
		if _, dup := seen[n]; !dup {
			seen[n] = struct{}{}
			d.allNames = append(d.allNames, n)
		}
	}
}

// Decks returns all reference decklists, loading on first use.
func (d *Dataset) Decks() ([]Deck, error) {
	if err := d.Load(); err != nil {
		return nil, err
	}
	return d.decks, nil
}

// UpdatedAt reports the dataset generation date, empty before Load.
func (d *Dataset) UpdatedAt() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updatedAt
}
