// Package config reads codec layouts from yaml files.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/gojuno/morton/pkg/morton"
)

// Layout names one codec layout.
type Layout struct {
	Name       string `yaml:"name"`
	Dimensions uint64 `yaml:"dimensions"`
	Bits       uint64 `yaml:"bits"`
	Signed     bool   `yaml:"signed"`
}

// Config is the top level of a layouts file.
type Config struct {
	Layouts []Layout `yaml:"layouts"`
}

// Codec builds the codec for the layout.
func (l Layout) Codec() (*morton.Morton64, error) {
	m, err := morton.New(l.Dimensions, l.Bits)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.Name, err)
	}
	return m, nil
}

// Layout returns the layout with the given name.
func (c *Config) Layout(name string) (Layout, bool) {
	for _, l := range c.Layouts {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

// Load decodes and validates a layouts file. Every layout must have a unique,
// non-empty name and a valid codec layout.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty layouts file")
		}
		return nil, err
	}

	seen := make(map[string]bool, len(cfg.Layouts))
	for i, l := range cfg.Layouts {
		if l.Name == "" {
			return nil, fmt.Errorf("layout %d has no name", i)
		}
		if seen[l.Name] {
			return nil, fmt.Errorf("duplicate layout %q", l.Name)
		}
		seen[l.Name] = true
		if _, err := l.Codec(); err != nil {
			return nil, err
		}
		if l.Signed && l.Bits < 2 {
			return nil, fmt.Errorf("layout %q: signed layouts need at least 2 bits, got %d", l.Name, l.Bits)
		}
	}
	return &cfg, nil
}

// LoadFile is Load for a file on disk.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
