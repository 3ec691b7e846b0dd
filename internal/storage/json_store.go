package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const jsonStoreVersion = 1

type document struct {
	Version int               `json:"version"`
	Slots   map[string]string `json:"slots"`
}

// JSONStore keeps every slot in a single JSON document on disk. The whole
// file is rewritten on each Put.
type JSONStore struct {
	path string
	mu   sync.Mutex
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{Version: jsonStoreVersion, Slots: map[string]string{}}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d)", doc.Version, jsonStoreVersion)
	}
	if doc.Slots == nil {
		doc.Slots = map[string]string{}
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Get(slot string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return "", false, ErrNotLoaded
	}
	v, ok := s.doc.Slots[slot]
	return v, ok, nil
}

func (s *JSONStore) Put(slot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	prev, had := s.doc.Slots[slot]
	s.doc.Slots[slot] = value
	if err := s.save(); err != nil {
		if had {
			s.doc.Slots[slot] = prev
		} else {
			delete(s.doc.Slots, slot)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	if _, ok := s.doc.Slots[slot]; !ok {
		return nil
	}
	delete(s.doc.Slots, slot)
	return s.save()
}

func (s *JSONStore) Slots() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	names := make([]string, 0, len(s.doc.Slots))
	for name := range s.doc.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// save writes to a temp file and renames it over the store so a crash
// never leaves a truncated document.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
