package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"smig.dev/cli/internal/core/artefact"
	"smig.dev/cli/internal/infrastructure/manifest"
)

const catalogueFile = "artefacts.json"

// Entry is one persisted artefact
type Entry struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Group  string `json:"group,omitempty"`
	Source string `json:"source,omitempty"`
}

// Catalogue is the persisted set of accepted artefacts, keyed by artefact type
type Catalogue struct {
	Artefacts map[string][]Entry `json:"artefacts"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewCatalogue returns an empty catalogue
func NewCatalogue() *Catalogue {
	return &Catalogue{Artefacts: make(map[string][]Entry)}
}

// Put inserts or replaces an entry, keeping entries sorted by name
func (c *Catalogue) Put(e Entry) {
	entries := c.Artefacts[e.Type]
	for i := range entries {
		if entries[i].Name == e.Name {
			entries[i] = e
			return
		}
	}
	entries = append(entries, e)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	c.Artefacts[e.Type] = entries
}

// FromRegistry snapshots the accepted artefacts of every registered type
func FromRegistry(r *artefact.Registry) *Catalogue {
	c := NewCatalogue()
	for _, t := range r.Types() {
		c.Artefacts[t] = []Entry{}
		for _, a := range r.Artefacts(t) {
			e := Entry{Type: a.Type, Name: a.Name, Group: a.Group}
			if d, ok := a.Descriptor.(*artefact.Descriptor); ok {
				e.Source = d.Source
			}
			c.Put(e)
		}
	}
	return c
}

// FileStore manages the artefact catalogue on disk
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a file-based store rooted at dir, creating it if needed
func NewFileStore(dir string) (*FileStore, error) {
	dir = manifest.ExpandPath(dir)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &FileStore{
		path: filepath.Join(dir, catalogueFile),
	}, nil
}

// Path returns the catalogue file location
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the catalogue to disk
func (s *FileStore) Save(c *Catalogue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalogue: %w", err)
	}

	// Write to temporary file first
	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalogue file: %w", err)
	}

	if err := os.Rename(tempFile, s.path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to save catalogue: %w", err)
	}

	return nil
}

// Load reads the catalogue from disk. A missing file yields an empty catalogue.
func (s *FileStore) Load() (*Catalogue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCatalogue(), nil
		}
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}

	var c Catalogue
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalogue: %w", err)
	}

	if c.Artefacts == nil {
		c.Artefacts = make(map[string][]Entry)
	}
	return &c, nil
}
