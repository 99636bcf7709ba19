// Package loader turns sets of resource ids into deduplicated engine load
// requests and correlates the engine's single "queue drained" event with
// the batch each caller is waiting on.
package loader

import (
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/automoto/spriteforge/engine"
	"github.com/automoto/spriteforge/registry"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Resolver looks up resource descriptors by id.
type Resolver interface {
	ResolveMany(ids []string) ([]registry.Descriptor, []string)
}

// Coordinator issues loads for one scene. It owns no engine state: what has
// been requested is kept in the injected Ledger.
type Coordinator struct {
	mu         sync.Mutex
	resolver   Resolver
	loader     engine.Loader
	ledger     *Ledger
	generation uint64
	pending    []*Batch
	logger     zerolog.Logger
}

func NewCoordinator(resolver Resolver, loader engine.Loader, ledger *Ledger, logger zerolog.Logger) *Coordinator {
	c := &Coordinator{
		resolver: resolver,
		loader:   loader,
		ledger:   ledger,
		logger:   logger.With().Str("component", "loader").Logger(),
	}
	loader.OnLoadFailed(c.handleFailure)
	loader.OnDrained(c.handleDrained)
	return c
}

// Generation is the number of LoadRequired calls so far.
func (c *Coordinator) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// LoadRequired requests every id in requirements that is not already loaded
// or in flight. Ids missing from the index are reported as warnings on the
// returned batch. The batch completes once every id it depends on has either
// loaded or failed; if nothing needs loading it is already complete.
func (c *Coordinator) LoadRequired(requirements map[string][]string) *Batch {
	c.mu.Lock()
	c.generation++
	b := newBatch(c.generation)
	b.Requested = flatten(requirements)

	hits, misses := c.resolver.ResolveMany(b.Requested)
	for _, id := range misses {
		b.warn(Warning{ID: id, Kind: AssetNotFound, Err: eris.Wrapf(registry.ErrAssetNotFound, "id %q", id)})
		c.logger.Warn().Str("asset_id", id).Uint64("generation", b.Generation).Msg("requested asset is not in any manifest")
	}

	for _, d := range hits {
		switch {
		case c.ledger.Loaded(d.ID):
		case c.ledger.InFlight(d.ID):
			b.waitFor(d.ID)
		default:
			if isSound(d.URL) {
				c.loader.EnqueueSound(d.ID, d.URL)
			} else {
				c.loader.EnqueueImage(d.ID, d.URL)
			}
			c.ledger.markRequested(d.ID, b.Generation)
			b.Issued = append(b.Issued, d.ID)
			b.waitFor(d.ID)
		}
	}

	c.logger.Debug().
		Uint64("generation", b.Generation).
		Int("requested", len(b.Requested)).
		Int("issued", len(b.Issued)).
		Int("missing", len(misses)).
		Msg("load batch")

	if len(b.Issued) > 0 {
		c.loader.Start()
	}
	if b.settle(c.ledger.Loaded) {
		c.mu.Unlock()
		b.complete()
		return b
	}
	c.pending = append(c.pending, b)
	c.mu.Unlock()
	return b
}

func (c *Coordinator) handleFailure(id string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ledger.forget(id)
	wrapped := eris.Wrapf(ErrEngineLoad, "id %q: %v", id, err)
	for _, b := range c.pending {
		if b.waitsFor(id) {
			b.warn(Warning{ID: id, Kind: EngineLoadFailure, Err: wrapped})
		}
	}
	c.logger.Warn().Err(err).Str("asset_id", id).Msg("engine failed to load asset")
}

func (c *Coordinator) handleDrained() {
	c.mu.Lock()
	settled := c.ledger.settle(c.generation)

	var done []*Batch
	remaining := c.pending[:0]
	for _, b := range c.pending {
		if b.settle(c.ledger.Loaded) {
			done = append(done, b)
		} else {
			remaining = append(remaining, b)
		}
	}
	clear(c.pending[len(remaining):])
	c.pending = remaining
	c.mu.Unlock()

	c.logger.Debug().Int("settled", len(settled)).Int("completed", len(done)).Msg("engine load queue drained")
	for _, b := range done {
		b.complete()
		c.logger.Info().
			Uint64("generation", b.Generation).
			Int("loaded", len(b.Loaded())).
			Int("warnings", len(b.Warnings())).
			Msg("load batch complete")
	}
}

// flatten merges the groups in name order and drops repeated ids.
func flatten(requirements map[string][]string) []string {
	groups := make([]string, 0, len(requirements))
	for g := range requirements {
		groups = append(groups, g)
	}
	slices.Sort(groups)

	seen := make(map[string]struct{})
	var ids []string
	for _, g := range groups {
		for _, id := range requirements[g] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func isSound(url string) bool {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	switch strings.ToLower(path.Ext(url)) {
	case ".wav", ".ogg", ".mp3":
		return true
	}
	return false
}
