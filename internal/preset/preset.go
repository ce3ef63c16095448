// Package preset loads the named debate configurations a caller can select
// from. The default catalog is embedded; custom catalogs use the same YAML
// layout.
package preset

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lorenzotomasdiez/council/internal/debate"
)

//go:embed presets.yaml
var defaultCatalog []byte

// Catalog is an ordered set of validated presets.
type Catalog struct {
	order   []string
	presets map[string]debate.Config
}

type file struct {
	Presets []debate.Config `yaml:"presets"`
}

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which only a broken build can cause.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("preset: embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog. Mode spellings are normalized and
// every preset must pass debate.Config.Validate.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("preset: parse catalog: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, &debate.ConfigError{Field: "presets", Reason: "catalog is empty"}
	}

	c := &Catalog{presets: make(map[string]debate.Config, len(f.Presets))}
	for _, cfg := range f.Presets {
		mode, err := debate.ParseMode(string(cfg.Mode))
		if err != nil {
			return nil, err
		}
		cfg.Mode = mode
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.presets[cfg.Key]; dup {
			return nil, &debate.ConfigError{Field: "key", Reason: fmt.Sprintf("duplicate preset %q", cfg.Key)}
		}
		c.order = append(c.order, cfg.Key)
		c.presets[cfg.Key] = cfg
	}
	return c, nil
}

// Keys returns preset keys in catalog order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// Get looks up a single preset.
func (c *Catalog) Get(key string) (debate.Config, bool) {
	cfg, ok := c.presets[key]
	return cfg, ok
}

// Select returns every preset when keys is empty, otherwise the named presets
// in the requested order. Any unknown key fails the whole selection.
func (c *Catalog) Select(keys []string) ([]debate.Config, error) {
	if len(keys) == 0 {
		keys = c.order
	}
	var missing []string
	selected := make([]debate.Config, 0, len(keys))
	for _, k := range keys {
		cfg, ok := c.presets[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		selected = append(selected, cfg)
	}
	if len(missing) > 0 {
		return nil, &debate.ConfigError{Reason: "Unknown config keys: " + strings.Join(missing, ", ")}
	}
	return selected, nil
}
