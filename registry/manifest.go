package registry

import (
	"path"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Descriptor is one addressable resource. Category and Source are filled in
// by the Index when the descriptor is registered.
type Descriptor struct {
	ID       string         `json:"id" yaml:"id"`
	URL      string         `json:"url" yaml:"url"`
	Category string         `json:"-" yaml:"-"`
	Source   string         `json:"-" yaml:"-"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Category groups descriptors in a manifest.
type Category struct {
	Count  int          `json:"count" yaml:"count"`
	Assets []Descriptor `json:"assets" yaml:"assets"`
}

// Usage carries the optional free-form usage block of a manifest.
type Usage struct {
	AssetCount    int                 `json:"assetCount,omitempty" yaml:"assetCount,omitempty"`
	AnimationSets map[string][]string `json:"animationSets,omitempty" yaml:"animationSets,omitempty"`
}

// Manifest is a declarative, versioned description of available resources.
// It is read-only once decoded.
type Manifest struct {
	Version    string              `json:"version,omitempty" yaml:"version,omitempty"`
	Categories map[string]Category `json:"categories" yaml:"categories"`
	Usage      *Usage              `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// Format is the encoding of a manifest document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the manifest format from a file name or URL.
func FormatFor(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeManifest parses a manifest document. Every asset must carry an id
// and a url.
func DecodeManifest(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, eris.Wrap(ErrManifestDecode, err.Error())
	}
	if m.Categories == nil {
		return nil, eris.Wrap(ErrManifestDecode, "missing categories")
	}

	for name, category := range m.Categories {
		for i, asset := range category.Assets {
			if asset.ID == "" {
				return nil, eris.Wrapf(ErrManifestDecode, "category %q asset %d has no id", name, i)
			}
			if asset.URL == "" {
				return nil, eris.Wrapf(ErrManifestDecode, "asset %q has no url", asset.ID)
			}
		}
	}
	return &m, nil
}

// CategoryNames returns the manifest's category names in a stable order.
func (m *Manifest) CategoryNames() []string {
	names := make([]string, 0, len(m.Categories))
	for name := range m.Categories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
