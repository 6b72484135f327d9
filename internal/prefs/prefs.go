// Package prefs persists user preferences consulted by the presentation
// engine. Preferences live in $XDG_DATA_HOME/nativemsg/prefs.json.
package prefs

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CurrentSchemaVersion is the current version of the preferences schema.
const CurrentSchemaVersion = 1

// Preferences are the persisted user preferences.
type Preferences struct {
	HapticsEnabled bool   `json:"haptics_enabled"`
	ChangedAt      int64  `json:"changed_at,omitempty"` // Unix timestamp of the last change
	ChangedBy      string `json:"changed_by,omitempty"` // Source of the last change (e.g. "cli", "demo")

	SchemaVersion int `json:"schema_version"`
}

// Default returns preferences with default values.
func Default() *Preferences {
	return &Preferences{
		HapticsEnabled: true,
		SchemaVersion:  CurrentSchemaVersion,
	}
}

// DataDir returns the nativemsg data directory.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/nativemsg.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "nativemsg"), nil
}

// DefaultPath returns the path to the preferences file.
func DefaultPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "prefs.json"), nil
}

// Store holds the preferences in memory and writes changes through to disk.
type Store struct {
	mu     sync.RWMutex
	path   string
	prefs  Preferences
	logger *slog.Logger
}

// Open loads preferences from path. A missing or corrupt file yields defaults.
// An empty path keeps the store in memory only.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, prefs: *Default(), logger: logger}
	if path != "" {
		s.Refresh()
	}
	return s
}

// Refresh re-reads the preferences file.
func (s *Store) Refresh() {
	p, err := load(s.path)
	if err != nil {
		s.logger.Warn("failed to read preferences, using defaults", "path", s.path, "error", err)
		p = Default()
	}
	s.mu.Lock()
	s.prefs = *p
	s.mu.Unlock()
}

func load(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	p := Default()
	if err := json.Unmarshal(data, p); err != nil {
		// Corrupt file: start over with defaults
		return Default(), nil
	}
	if p.SchemaVersion == 0 {
		p.SchemaVersion = CurrentSchemaVersion
	}
	return p, nil
}

// Get returns a copy of the current preferences.
func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// HapticsEnabled reports the haptics flag.
func (s *Store) HapticsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.HapticsEnabled
}

// SetHapticsEnabled updates the haptics flag and saves it.
func (s *Store) SetHapticsEnabled(enabled bool, source string) error {
	s.mu.Lock()
	s.prefs.HapticsEnabled = enabled
	s.prefs.ChangedAt = time.Now().Unix()
	s.prefs.ChangedBy = source
	p := s.prefs
	s.mu.Unlock()

	return s.save(&p)
}

func (s *Store) save(p *Preferences) error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if p.SchemaVersion == 0 {
		p.SchemaVersion = CurrentSchemaVersion
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path)
}
