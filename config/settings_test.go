package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettingsDefaults(t *testing.T) {
	s, err := parseSettings(env.Options{Prefix: EnvPrefix, Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"manifests/characters.json",
		"manifests/platformer.json",
		"manifests/pirate.yaml",
	}, s.Manifests)
	assert.Equal(t, 5*time.Second, s.FetchTimeout)
	assert.Equal(t, ArchetypePlayer, s.PlayerArchetype)
	assert.Equal(t, 8, s.LoadsPerFrame)
	assert.Empty(t, s.ManifestBaseURL)
}

func TestParseSettingsOverrides(t *testing.T) {
	s, err := parseSettings(env.Options{Prefix: EnvPrefix, Environment: map[string]string{
		"SPRITEFORGE_MANIFESTS":         "a.json,b.yaml",
		"SPRITEFORGE_PLAYER_ARCHETYPE":  "zombie",
		"SPRITEFORGE_LOADS_PER_FRAME":   "2",
		"SPRITEFORGE_MANIFEST_BASE_URL": "http://localhost:8080/assets",
		"SPRITEFORGE_DEBUG":             "true",
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.json", "b.yaml"}, s.Manifests)
	assert.Equal(t, ArchetypeZombie, s.PlayerArchetype)
	assert.Equal(t, 2, s.LoadsPerFrame)
	assert.Equal(t, "http://localhost:8080/assets", s.ManifestBaseURL)
	assert.True(t, s.Debug)
}

func TestParseSettingsRejectsUnknownArchetype(t *testing.T) {
	_, err := parseSettings(env.Options{Prefix: EnvPrefix, Environment: map[string]string{
		"SPRITEFORGE_PLAYER_ARCHETYPE": "dragon",
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dragon")
}

func TestActionDuration(t *testing.T) {
	// two frames at 12 fps, played once
	assert.Equal(t, 10, ActionDuration(ActionAttack, 60))
	assert.Equal(t, 20, ActionDuration(ActionKick, 60))
	// two frames at 4 fps, three passes
	assert.Equal(t, 90, ActionDuration(ActionCheer, 60))
	assert.Equal(t, 0, ActionDuration(ActionClimb, 60))
	assert.Equal(t, 0, ActionDuration(ActionNone, 60))
}

func TestTunablesMerge(t *testing.T) {
	base := Archetypes[ArchetypeZombie].Defaults
	merged := base.Merge(Tunables{Speed: 75})

	assert.Equal(t, 75.0, merged.Speed)
	assert.Equal(t, base.JumpImpulse, merged.JumpImpulse)
	assert.Equal(t, base.Health, merged.Health)
}

func TestParseAction(t *testing.T) {
	kind, ok := ParseAction("cheer")
	require.True(t, ok)
	assert.Equal(t, ActionCheer, kind)

	_, ok = ParseAction("fly")
	assert.False(t, ok)
	assert.Equal(t, "unknown", ActionKind(99).String())
}
