package factory

import (
	"github.com/automoto/spriteforge/archetypes"
	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/engine"
	"github.com/automoto/spriteforge/loader"
	"github.com/automoto/spriteforge/registry"
	"github.com/automoto/spriteforge/tags"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ErrUnknownArchetype is returned by Create for archetypes without a
// configuration or whose sprite set is not in the registry.
var ErrUnknownArchetype = eris.New("unknown archetype")

// Factory creates characters. The returned entry accepts commands at once;
// its sprite is spawned when the archetype's resources finish loading.
type Factory struct {
	world    donburi.World
	index    *registry.Index
	loads    *loader.Coordinator
	animator engine.Animator
	logger   zerolog.Logger
}

func NewFactory(w donburi.World, index *registry.Index, loads *loader.Coordinator, animator engine.Animator, logger zerolog.Logger) *Factory {
	return &Factory{
		world:    w,
		index:    index,
		loads:    loads,
		animator: animator,
		logger:   logger.With().Str("component", "factory").Logger(),
	}
}

// Create spawns a character of the given archetype at x, y. Non-zero fields
// of override replace the archetype's default tunables.
func (f *Factory) Create(id cfg.ArchetypeID, x, y float64, override cfg.Tunables) (*donburi.Entry, error) {
	arch, ok := cfg.Archetypes[id]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownArchetype, "%q is not configured", id)
	}
	if !f.index.Has(arch.IdleResource()) {
		return nil, eris.Wrapf(ErrUnknownArchetype, "%q has no sprite set registered", id)
	}
	catalog, err := BuildCatalog(arch, f.index.Has)
	if err != nil {
		return nil, err
	}

	if len(catalog.Specs) < len(arch.Animations) {
		f.logger.Warn().
			Str("archetype", string(id)).
			Int("declared", len(arch.Animations)).
			Int("available", len(catalog.Specs)).
			Msg("dropping animations with unregistered frames")
	}

	tunables := arch.Defaults.Merge(override)
	if tunables.Scale <= 0 {
		tunables.Scale = 1
	}

	character := archetypes.Character.Spawn(f.world)

	w := float64(arch.CollisionWidth) * tunables.Scale
	h := float64(arch.CollisionHeight) * tunables.Scale
	obj := resolv.NewObject(x, y, w, h, tags.ResolvCharacter)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = character
	components.Object.SetValue(character, components.ObjectData{Object: obj})
	if spaceEntry, ok := components.Space.First(f.world); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	components.Character.SetValue(character, components.CharacterData{
		ID:        uuid.New(),
		Archetype: id,
		Tunables:  tunables,
	})
	components.Health.SetValue(character, components.HealthData{
		Current: tunables.Health,
		Max:     tunables.Health,
	})
	components.State.SetValue(character, components.StateData{
		CurrentState:  cfg.Idle,
		PreviousState: cfg.StateNone,
		Interruptible: true,
	})

	anim := &components.AnimationData{}
	catalog.Apply(anim, cfg.Idle, cfg.ActionNone)
	components.Animation.Set(character, anim)

	batch := f.loads.LoadRequired(catalog.Requirements())
	f.logger.Debug().
		Str("archetype", string(id)).
		Uint64("generation", batch.Generation).
		Int("frames", len(catalog.Frames)).
		Int("issued", len(batch.Issued)).
		Msg("creating character")
	batch.OnComplete(func(b *loader.Batch) {
		f.spawnSprite(character, arch, b)
	})
	return character, nil
}

// spawnSprite runs once the character's batch completed. Animations whose
// frames failed to load are dropped from the catalog.
func (f *Factory) spawnSprite(e *donburi.Entry, arch cfg.ArchetypeConfig, b *loader.Batch) {
	if !e.Valid() {
		f.logger.Debug().Str("archetype", string(arch.ID)).Msg("character removed before its resources loaded")
		return
	}
	char := components.Character.Get(e)
	logger := f.logger.With().Str("entity", char.ID.String()).Str("archetype", string(arch.ID)).Logger()
	for _, w := range b.Warnings() {
		logger.Warn().Err(w.Err).Str("asset_id", w.ID).Stringer("kind", w.Kind).Msg("character resource unavailable")
	}

	loaded := make(map[string]bool)
	for _, id := range b.Loaded() {
		loaded[id] = true
	}
	catalog, err := BuildCatalog(arch, func(id string) bool { return loaded[id] })
	if err != nil {
		logger.Error().Err(err).Msg("character cannot be shown")
		return
	}

	for _, spec := range catalog.Specs {
		if f.animator.HasAnimation(spec.Name) {
			continue
		}
		if err := f.animator.CreateAnimation(spec); err != nil {
			logger.Error().Err(err).Str("animation", spec.Name).Msg("failed to create animation")
			return
		}
	}

	state := components.State.Get(e)
	anim := components.Animation.Get(e)
	catalog.Apply(anim, state.CurrentState, state.Action)
	if _, ok := anim.Lookup(state.CurrentState, state.Action); !ok {
		state.CurrentState = cfg.Idle
		state.Action = cfg.ActionNone
	}

	obj := components.Object.Get(e)
	sprite, err := f.animator.SpawnSprite(arch.IdleResource(), obj.X, obj.Y)
	if err != nil {
		logger.Error().Err(err).Msg("failed to spawn sprite")
		return
	}
	char.Sprite = sprite
	char.Ready = true

	if err := f.animator.PlayAnimation(sprite, anim.Current); err != nil {
		logger.Error().Err(err).Str("animation", anim.Current).Msg("failed to play animation")
	}
	f.animator.SetFlipX(sprite, anim.FacingLeft)
	if state.CurrentState == cfg.Hurt {
		f.animator.SetTint(sprite, true)
	}
	logger.Info().Uint32("sprite", uint32(sprite)).Str("animation", anim.Current).Msg("character ready")
}

// Destroy removes a character, its sprite and its collision object.
func (f *Factory) Destroy(e *donburi.Entry) {
	if !e.Valid() {
		return
	}
	if e.HasComponent(components.Character) {
		if char := components.Character.Get(e); char.Ready {
			f.animator.DestroySprite(char.Sprite)
		}
	}
	if e.HasComponent(components.Object) {
		if spaceEntry, ok := components.Space.First(f.world); ok {
			components.Space.Get(spaceEntry).Remove(components.Object.Get(e).Object)
		}
	}
	f.world.Remove(e.Entity())
}
