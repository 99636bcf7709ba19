package factory_test

import (
	"errors"
	"testing"

	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/engine/enginetest"
	"github.com/automoto/spriteforge/loader"
	"github.com/automoto/spriteforge/registry"
	"github.com/automoto/spriteforge/systems"
	"github.com/automoto/spriteforge/systems/factory"
	"github.com/automoto/spriteforge/tags"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

// characterManifest declares every frame of the given archetypes.
func characterManifest(ids ...cfg.ArchetypeID) *registry.Manifest {
	m := &registry.Manifest{Categories: map[string]registry.Category{
		"sounds": {Assets: []registry.Descriptor{{ID: "sfx_jump", URL: "audio/jump.wav"}}},
	}}
	for _, id := range ids {
		var assets []registry.Descriptor
		seen := map[string]bool{}
		for _, name := range cfg.Archetypes[id].Animations {
			for _, suffix := range cfg.Animations[name].Frames {
				frame := cfg.FrameID(id, suffix)
				if seen[frame] {
					continue
				}
				seen[frame] = true
				assets = append(assets, registry.Descriptor{ID: frame, URL: "images/characters/" + frame + ".png"})
			}
		}
		m.Categories[string(id)+"_characters"] = registry.Category{Count: len(assets), Assets: assets}
	}
	return m
}

type fixture struct {
	world   donburi.World
	eng     *enginetest.Engine
	loads   *loader.Coordinator
	factory *factory.Factory
	ctl     *systems.Controller
	floor   *resolv.Object
}

func newFixture(t *testing.T, ids ...cfg.ArchetypeID) *fixture {
	t.Helper()
	index := registry.NewIndex(zerolog.Nop())
	index.RegisterManifest("characters", characterManifest(ids...))

	w := donburi.NewWorld()
	factory.CreateSpace(w, 640, 480, 16, 16)
	eng := enginetest.New()
	loads := loader.NewCoordinator(index, eng, loader.NewLedger(), zerolog.Nop())
	return &fixture{
		world:   w,
		eng:     eng,
		loads:   loads,
		factory: factory.NewFactory(w, index, loads, eng, zerolog.Nop()),
		ctl:     systems.NewController(eng, 60, zerolog.Nop()),
		floor:   resolv.NewObject(0, 100, 640, 16, tags.ResolvSolid),
	}
}

func TestCreateUnknownArchetype(t *testing.T) {
	f := newFixture(t, cfg.ArchetypeWalker)

	_, err := f.factory.Create("dragon", 0, 0, cfg.Tunables{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, factory.ErrUnknownArchetype))

	// configured, but its sprite set was never registered
	_, err = f.factory.Create(cfg.ArchetypeZombie, 0, 0, cfg.Tunables{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, factory.ErrUnknownArchetype))
	assert.Empty(t, f.eng.Requests)
}

func TestCreateWalkerAcceptsCommandsBeforeLoad(t *testing.T) {
	f := newFixture(t, cfg.ArchetypeWalker)

	e, err := f.factory.Create(cfg.ArchetypeWalker, 32, 56, cfg.Tunables{})
	require.NoError(t, err)
	components.Physics.Get(e).OnGround = f.floor

	require.NoError(t, f.ctl.Move(e, cfg.DirectionLeft))
	require.NotPanics(t, func() {
		require.NoError(t, f.ctl.Tick(e))
	})
	char := components.Character.Get(e)
	assert.False(t, char.Ready)
	assert.Empty(t, f.eng.PlayLog)

	f.eng.Drain()

	require.True(t, char.Ready)
	sprite := f.eng.Sprites[char.Sprite]
	require.NotNil(t, sprite)
	assert.Equal(t, "walker_idle", sprite.Texture)
	assert.Equal(t, "walker_walk", sprite.Animation)
	assert.True(t, sprite.FlipX)
	assert.Equal(t, 32.0, sprite.X)

	for _, name := range []string{"idle", "walk", "jump", "fall", "hurt", "attack"} {
		assert.True(t, f.eng.HasAnimation("walker_"+name), name)
	}
	assert.Len(t, f.eng.Animations, 6)
}

func TestRacingCreatesShareLoads(t *testing.T) {
	f := newFixture(t, cfg.ArchetypeZombie)

	first, err := f.factory.Create(cfg.ArchetypeZombie, 0, 0, cfg.Tunables{})
	require.NoError(t, err)
	second, err := f.factory.Create(cfg.ArchetypeZombie, 64, 0, cfg.Tunables{})
	require.NoError(t, err)

	for _, r := range f.eng.Requests {
		assert.Equal(t, 1, f.eng.RequestCount(r.ID), r.ID)
	}
	assert.Equal(t, uint64(2), f.loads.Generation())

	f.eng.Drain()
	assert.True(t, components.Character.Get(first).Ready)
	assert.True(t, components.Character.Get(second).Ready)
	assert.Len(t, f.eng.Sprites, 2)

	// a third zombie after loading needs no new requests
	before := len(f.eng.Requests)
	third, err := f.factory.Create(cfg.ArchetypeZombie, 128, 0, cfg.Tunables{})
	require.NoError(t, err)
	assert.Len(t, f.eng.Requests, before)
	assert.True(t, components.Character.Get(third).Ready)
}

func TestCreateAppliesTunables(t *testing.T) {
	f := newFixture(t, cfg.ArchetypeZombie)

	e, err := f.factory.Create(cfg.ArchetypeZombie, 0, 0, cfg.Tunables{Speed: 75})
	require.NoError(t, err)

	char := components.Character.Get(e)
	assert.Equal(t, 75.0, char.Tunables.Speed)
	assert.Equal(t, 200.0, char.Tunables.JumpImpulse)
	assert.Equal(t, 150, components.Health.Get(e).Current)
	assert.NotEqual(t, [16]byte{}, [16]byte(char.ID))

	obj := components.Object.Get(e)
	assert.True(t, obj.HasTags(tags.ResolvCharacter))
	assert.Equal(t, e, obj.Data)
}

func TestCreateRequestsArchetypeSounds(t *testing.T) {
	f := newFixture(t, cfg.ArchetypePlayer)

	_, err := f.factory.Create(cfg.ArchetypePlayer, 0, 0, cfg.Tunables{})
	require.NoError(t, err)

	require.Equal(t, 1, f.eng.RequestCount("sfx_jump"))
	for _, r := range f.eng.Requests {
		assert.Equal(t, r.ID == "sfx_jump", r.Sound, r.ID)
	}
}

func TestFailedFrameDropsItsAnimation(t *testing.T) {
	f := newFixture(t, cfg.ArchetypeSoldier)
	f.eng.Fail("soldier_kick", errors.New("corrupt png"))

	e, err := f.factory.Create(cfg.ArchetypeSoldier, 0, 0, cfg.Tunables{})
	require.NoError(t, err)
	f.eng.Drain()

	require.True(t, components.Character.Get(e).Ready)
	assert.False(t, f.eng.HasAnimation("soldier_kick"))
	assert.True(t, f.eng.HasAnimation("soldier_attack"))
	assert.False(t, components.Animation.Get(e).Supports(cfg.ActionKick))

	err = f.ctl.Act(e, cfg.ActionKick)
	assert.True(t, eris.Is(err, systems.ErrUnknownAction))
}

func TestFailedIdleLeavesCharacterHidden(t *testing.T) {
	f := newFixture(t, cfg.ArchetypeWalker)
	f.eng.Fail("walker_idle", errors.New("timeout"))

	e, err := f.factory.Create(cfg.ArchetypeWalker, 0, 0, cfg.Tunables{})
	require.NoError(t, err)
	f.eng.Drain()

	assert.False(t, components.Character.Get(e).Ready)
	assert.Empty(t, f.eng.Sprites)
	require.NoError(t, f.ctl.Tick(e), "a hidden character still ticks")
}

func TestDestroy(t *testing.T) {
	f := newFixture(t, cfg.ArchetypeWalker)

	early, err := f.factory.Create(cfg.ArchetypeWalker, 0, 0, cfg.Tunables{})
	require.NoError(t, err)
	f.factory.Destroy(early)
	f.eng.Drain()
	assert.Empty(t, f.eng.Sprites, "no sprite for a character removed while loading")

	late, err := f.factory.Create(cfg.ArchetypeWalker, 0, 0, cfg.Tunables{})
	require.NoError(t, err)
	require.True(t, components.Character.Get(late).Ready)
	require.Len(t, f.eng.Sprites, 1)

	f.factory.Destroy(late)
	assert.Empty(t, f.eng.Sprites)
	assert.False(t, late.Valid())
}
