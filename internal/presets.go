package internal

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nocturnecity/image-reframer/pkg"
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

type PresetFile struct {
	Platforms []Platform `yaml:"platforms" toml:"platforms" json:"platforms"`
}

type Platform struct {
	Name    string        `yaml:"name" toml:"name" json:"name"`
	Presets []PresetEntry `yaml:"presets" toml:"presets" json:"presets"`
}

type PresetEntry struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Width  int    `yaml:"width" toml:"width" json:"width"`
	Height int    `yaml:"height" toml:"height" json:"height"`
}

func (e PresetEntry) Dimensions() pkg.Dimensions {
	return pkg.Dimensions{Width: e.Width, Height: e.Height}
}

// PresetRegistry is read-only after construction.
type PresetRegistry struct {
	platforms []Platform
	index     map[string]map[string]PresetEntry
}

// DefaultPresets returns the embedded social media table.
func DefaultPresets() *PresetRegistry {
	r, err := ParsePresets(defaultPresetsYAML, "yaml")
	if err != nil {
		panic("failed to parse embedded presets.yaml: " + err.Error())
	}
	return r
}

// LoadPresets reads a preset table from a .yaml, .yml or .toml file.
// An empty path yields the embedded defaults.
func LoadPresets(path string) (*PresetRegistry, error) {
	if path == "" {
		return DefaultPresets(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}
	r, err := ParsePresets(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if err != nil {
		return nil, fmt.Errorf("presets file %s: %w", path, err)
	}
	return r, nil
}

func ParsePresets(data []byte, syntax string) (*PresetRegistry, error) {
	var file PresetFile
	switch syntax {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("unmarshal toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported presets syntax %q, use yaml or toml", syntax)
	}
	return NewPresetRegistry(file.Platforms)
}

func NewPresetRegistry(platforms []Platform) (*PresetRegistry, error) {
	if len(platforms) == 0 {
		return nil, fmt.Errorf("at least 1 platform required")
	}
	r := &PresetRegistry{
		platforms: platforms,
		index:     make(map[string]map[string]PresetEntry, len(platforms)),
	}
	for i, p := range platforms {
		pk := Slug(p.Name)
		if pk == "" {
			return nil, fmt.Errorf("platforms[%d].name is required field", i)
		}
		if _, dup := r.index[pk]; dup {
			return nil, fmt.Errorf("duplicate platform %q", p.Name)
		}
		entries := make(map[string]PresetEntry, len(p.Presets))
		for j, e := range p.Presets {
			ek := Slug(e.Name)
			if ek == "" {
				return nil, fmt.Errorf("platforms[%d].presets[%d].name is required field", i, j)
			}
			if _, dup := entries[ek]; dup {
				return nil, fmt.Errorf("duplicate preset %q for %s", e.Name, p.Name)
			}
			if e.Width < 1 || e.Height < 1 || e.Width > pkg.MaxDimension || e.Height > pkg.MaxDimension {
				return nil, fmt.Errorf("preset %s/%s %dx%d: %w", p.Name, e.Name, e.Width, e.Height, ErrInvalidDimension)
			}
			entries[ek] = e
		}
		r.index[pk] = entries
	}
	return r, nil
}

// Lookup matches platform and preset names by slug, so "Twitter/X" and "twitter_x" are the same key.
func (r *PresetRegistry) Lookup(platform, name string) (pkg.Dimensions, error) {
	entries, ok := r.index[Slug(platform)]
	if !ok {
		return pkg.Dimensions{}, fmt.Errorf("platform %q: %w", platform, ErrUnknownPreset)
	}
	e, ok := entries[Slug(name)]
	if !ok {
		return pkg.Dimensions{}, fmt.Errorf("%s preset %q: %w", platform, name, ErrUnknownPreset)
	}
	return e.Dimensions(), nil
}

// Platforms returns the table in file order.
func (r *PresetRegistry) Platforms() []Platform {
	return r.platforms
}

func (r *PresetRegistry) Platform(name string) (Platform, bool) {
	key := Slug(name)
	for _, p := range r.platforms {
		if Slug(p.Name) == key {
			return p, true
		}
	}
	return Platform{}, false
}
