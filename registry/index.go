package registry

import (
	"context"
	"errors"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Collision records an id declared again after it was already indexed.
type Collision struct {
	ID       string
	Kept     string // source that owns the id
	Rejected string // source whose declaration was ignored
}

// Stats summarizes what a single source contributed to the index.
type Stats struct {
	Categories int
	Assets     int
}

// Ref names a manifest and where to fetch it from.
type Ref struct {
	Name string
	Path string
}

// Index is the session-scoped union of every registered manifest, keyed by
// resource id. It is only mutated by registration; the first manifest to
// declare an id owns it.
type Index struct {
	assets     map[string]Descriptor
	order      []string
	sources    []string
	categories map[string]map[string]struct{}
	collisions []Collision
	logger     zerolog.Logger
}

func NewIndex(logger zerolog.Logger) *Index {
	return &Index{
		assets:     make(map[string]Descriptor),
		categories: make(map[string]map[string]struct{}),
		logger:     logger.With().Str("component", "registry").Logger(),
	}
}

// RegisterManifest indexes every descriptor of m under the source name. Ids
// already present are kept as they are and reported as collisions.
func (x *Index) RegisterManifest(name string, m *Manifest) (added int, collisions []Collision) {
	if _, ok := x.categories[name]; !ok {
		x.categories[name] = make(map[string]struct{})
		x.sources = append(x.sources, name)
	}

	for _, category := range m.CategoryNames() {
		group := m.Categories[category]
		x.categories[name][category] = struct{}{}

		if group.Count != 0 && group.Count != len(group.Assets) {
			x.logger.Warn().
				Str("manifest", name).
				Str("category", category).
				Int("declared", group.Count).
				Int("actual", len(group.Assets)).
				Msg("category count does not match its asset list")
		}

		for _, asset := range group.Assets {
			if existing, ok := x.assets[asset.ID]; ok {
				c := Collision{ID: asset.ID, Kept: existing.Source, Rejected: name}
				collisions = append(collisions, c)
				x.logger.Warn().
					Err(ErrIDCollision).
					Str("asset_id", asset.ID).
					Str("kept", c.Kept).
					Str("rejected", c.Rejected).
					Msg("duplicate asset id, keeping first registration")
				continue
			}

			asset.Source = name
			asset.Category = category
			x.assets[asset.ID] = asset
			x.order = append(x.order, asset.ID)
			added++
		}
	}
	x.collisions = append(x.collisions, collisions...)

	stats := x.StatsBySource(name)
	x.logger.Info().
		Str("manifest", name).
		Int("categories", stats.Categories).
		Int("assets", stats.Assets).
		Int("added", added).
		Int("collisions", len(collisions)).
		Msg("registered manifest")
	return added, collisions
}

// RegisterFrom fetches, decodes and registers one manifest. A failed fetch
// or decode leaves the index untouched.
func (x *Index) RegisterFrom(ctx context.Context, src Source, ref Ref) error {
	data, err := src.Fetch(ctx, ref.Path)
	if err != nil {
		x.logger.Error().Err(err).Str("manifest", ref.Name).Str("path", ref.Path).Msg("failed to fetch manifest")
		return eris.Wrapf(err, "manifest %s", ref.Name)
	}

	m, err := DecodeManifest(data, FormatFor(ref.Path))
	if err != nil {
		x.logger.Error().Err(err).Str("manifest", ref.Name).Str("path", ref.Path).Msg("failed to decode manifest")
		return eris.Wrapf(err, "manifest %s", ref.Name)
	}

	x.RegisterManifest(ref.Name, m)
	return nil
}

// RegisterAll registers each manifest in order. A failing manifest does not
// stop the remaining ones; all failures are returned joined.
func (x *Index) RegisterAll(ctx context.Context, src Source, refs []Ref) error {
	var errs []error
	for _, ref := range refs {
		if err := x.RegisterFrom(ctx, src, ref); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resolve looks up a single id.
func (x *Index) Resolve(id string) (Descriptor, error) {
	d, ok := x.assets[id]
	if !ok {
		return Descriptor{}, eris.Wrapf(ErrAssetNotFound, "id %q", id)
	}
	return d, nil
}

// Has reports whether id is indexed.
func (x *Index) Has(id string) bool {
	_, ok := x.assets[id]
	return ok
}

// ResolveMany partitions ids into indexed descriptors and missing ids, both in
// request order.
func (x *Index) ResolveMany(ids []string) ([]Descriptor, []string) {
	var hits []Descriptor
	var misses []string
	for _, id := range ids {
		if d, ok := x.assets[id]; ok {
			hits = append(hits, d)
		} else {
			misses = append(misses, id)
		}
	}
	return hits, misses
}

// StatsBySource reports what the named source contributed.
func (x *Index) StatsBySource(name string) Stats {
	stats := Stats{Categories: len(x.categories[name])}
	for _, d := range x.assets {
		if d.Source == name {
			stats.Assets++
		}
	}
	return stats
}

// Stats reports StatsBySource for every registered source.
func (x *Index) Stats() map[string]Stats {
	all := make(map[string]Stats, len(x.sources))
	for _, name := range x.sources {
		all[name] = x.StatsBySource(name)
	}
	return all
}

// AssetsFromSource lists the descriptors owned by a source in registration order.
func (x *Index) AssetsFromSource(name string) []Descriptor {
	return x.filter(func(d Descriptor) bool { return d.Source == name })
}

// AssetsInCategory lists the descriptors of a category across all sources.
func (x *Index) AssetsInCategory(category string) []Descriptor {
	return x.filter(func(d Descriptor) bool { return d.Category == category })
}

func (x *Index) filter(keep func(Descriptor) bool) []Descriptor {
	var out []Descriptor
	for _, id := range x.order {
		if d := x.assets[id]; keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// Sources lists registered source names in registration order.
func (x *Index) Sources() []string {
	return slices.Clone(x.sources)
}

// Collisions lists every collision seen so far.
func (x *Index) Collisions() []Collision {
	return slices.Clone(x.collisions)
}

// Len is the number of indexed ids.
func (x *Index) Len() int {
	return len(x.assets)
}
