package skin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog is an ordered, name-indexed set of skins.
type Catalog struct {
	order  []Name
	byName map[Name]Skin
}

// NewCatalog builds a catalog from skins; a later skin replaces an earlier one
// of the same name in place.
func NewCatalog(skins ...Skin) *Catalog {
	c := &Catalog{byName: make(map[Name]Skin)}
	for _, s := range skins {
		c.put(s)
	}
	return c
}

func (c *Catalog) put(s Skin) {
	if _, ok := c.byName[s.Name]; !ok {
		c.order = append(c.order, s.Name)
	}
	c.byName[s.Name] = s
}

// Names returns the skin names in catalog order.
func (c *Catalog) Names() []Name {
	return append([]Name(nil), c.order...)
}

// Get returns the skin named n.
func (c *Catalog) Get(n Name) (Skin, bool) {
	s, ok := c.byName[n]
	return s, ok
}

// Lookup returns the skin whose name equals the stored key, falling back to
// Default when the key is unknown.
//
// Precondition: the catalog contains Default.
func (c *Catalog) Lookup(key string) Skin {
	if s, ok := c.byName[Name(key)]; ok {
		return s
	}
	return c.byName[Default]
}

// skinFile is the YAML form of a skin.
type skinFile struct {
	Name    string   `yaml:"name"`
	Light   string   `yaml:"light"`
	Dark    string   `yaml:"dark"`
	Palette []string `yaml:"palette"`
}

func (f skinFile) toSkin() (Skin, error) {
	if f.Name == "" {
		return Skin{}, fmt.Errorf("skin name must not be empty")
	}
	if len(f.Palette) == 0 {
		return Skin{}, fmt.Errorf("skin %q palette must not be empty", f.Name)
	}
	light, err := ParseHex(f.Light)
	if err != nil {
		return Skin{}, err
	}
	dark, err := ParseHex(f.Dark)
	if err != nil {
		return Skin{}, err
	}
	s := Skin{Name: Name(f.Name), Light: light, Dark: dark}
	for _, p := range f.Palette {
		c, err := ParseHex(p)
		if err != nil {
			return Skin{}, err
		}
		s.Palette = append(s.Palette, c)
	}
	return s, nil
}

// LoadDir reads every .yaml/.yml file in dir as a Skin. Files are read in
// directory order.
//
// Postcondition: Returns all parsed skins (may be empty) or a non-nil error.
func LoadDir(dir string) ([]Skin, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var skins []Skin
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f skinFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing skin file %s: %w", path, err)
		}
		s, err := f.toSkin()
		if err != nil {
			return nil, fmt.Errorf("skin file %s: %w", path, err)
		}
		skins = append(skins, s)
	}
	return skins, nil
}

// Selector holds the active skin. It is safe for concurrent use.
type Selector struct {
	mu      sync.RWMutex
	catalog *Catalog
	active  Skin
}

// NewSelector returns a Selector whose active skin is catalog.Lookup(key).
func NewSelector(catalog *Catalog, key string) *Selector {
	return &Selector{catalog: catalog, active: catalog.Lookup(key)}
}

// Active returns the current skin.
func (s *Selector) Active() Skin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Select makes the skin named n active.
func (s *Selector) Select(n Name) error {
	sk, ok := s.catalog.Get(n)
	if !ok {
		return fmt.Errorf("skin: unknown skin %q", n)
	}
	s.mu.Lock()
	s.active = sk
	s.mu.Unlock()
	return nil
}
