// Package settings persists the user's tray preferences as YAML.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dicetray/internal/game/skin"
)

// Preferences are the user-facing toggles of the tray.
type Preferences struct {
	Skin        string `yaml:"skin"`
	Sound       bool   `yaml:"sound"`
	Vibration   bool   `yaml:"vibration"`
	ShakeToRoll bool   `yaml:"shake_to_roll"`
	// DiceSizeModifier scales the die radius.
	DiceSizeModifier float64 `yaml:"dice_size_modifier"`
}

// Defaults returns the preferences of a fresh install.
func Defaults() Preferences {
	return Preferences{
		Skin:             string(skin.Default),
		Sound:            true,
		Vibration:        true,
		ShakeToRoll:      true,
		DiceSizeModifier: 1,
	}
}

// Validate checks preference invariants.
//
// Postcondition: Returns nil if p is usable, or an error describing the first violation.
func (p Preferences) Validate() error {
	if p.Skin == "" {
		return errors.New("skin must not be empty")
	}
	if p.DiceSizeModifier <= 0 {
		return fmt.Errorf("dice_size_modifier must be > 0, got %g", p.DiceSizeModifier)
	}
	return nil
}

// Store loads and saves Preferences.
type Store interface {
	Load() (Preferences, error)
	Save(Preferences) error
}

// FileStore keeps Preferences in a single YAML file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file need not exist yet.
//
// Precondition: path must be non-empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		panic("settings: NewFileStore requires a path")
	}
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the preferences file. Keys absent from the file keep their
// default values; a missing file yields Defaults.
//
// Postcondition: Returns valid Preferences or a non-nil error.
func (s *FileStore) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Defaults()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("reading settings %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("parsing settings %s: %w", s.path, err)
	}
	if err := p.Validate(); err != nil {
		return Preferences{}, fmt.Errorf("settings %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes p atomically by renaming a temporary file over the target.
//
// Precondition: p must be valid.
func (s *FileStore) Save(p Preferences) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing settings: %w", err)
	}
	return nil
}
