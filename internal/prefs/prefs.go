// Package prefs persists small user preferences between sessions, such as
// the last chosen theme. Preferences are a flat YAML mapping of string keys
// to string values stored under the XDG state directory.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// KeyTheme holds the theme chosen with the theme toggle.
const KeyTheme = "theme"

// Store is a preference file loaded into memory. Methods are safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	dirty  bool
}

// New returns an empty Store backed by path. Call Load to read it.
func New(path string) *Store {
	return &Store{
		path:   path,
		values: make(map[string]string),
	}
}

// DefaultPath returns $XDG_STATE_HOME/keycalc/prefs.yaml, falling back to
// ~/.local/state.
func DefaultPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".keycalc", "prefs.yaml")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "keycalc", "prefs.yaml")
}

// Load reads the preference file. A missing file leaves the store empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading preferences: %w", err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parsing preferences %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.values = values
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// Save writes the preferences if anything changed since the last Load or
// Save. The file is replaced atomically.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating preferences dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}

	s.dirty = false
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key. An empty value removes the key.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.values[key]
	if value == "" {
		if ok {
			delete(s.values, key)
			s.dirty = true
		}
		return
	}
	if !ok || old != value {
		s.values[key] = value
		s.dirty = true
	}
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
