package factory

import (
	"testing"

	cfg "github.com/automoto/spriteforge/config"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalogWalker(t *testing.T) {
	c, err := BuildCatalog(cfg.Archetypes[cfg.ArchetypeWalker], func(string) bool { return true })
	require.NoError(t, err)

	assert.Equal(t, "walker_idle", c.Frames[0])
	assert.Len(t, c.Specs, 6)
	assert.Equal(t, "walker_hurt", c.States[cfg.Hurt])
	assert.Equal(t, map[cfg.ActionKind]string{cfg.ActionAttack: "walker_attack"}, c.Actions)
	assert.Equal(t, []string{"frames"}, keys(c.Requirements()))
}

func TestBuildCatalogFallsBack(t *testing.T) {
	missing := map[string]bool{"zombie_fall": true, "zombie_walk2": true}
	c, err := BuildCatalog(cfg.Archetypes[cfg.ArchetypeZombie], func(id string) bool { return !missing[id] })
	require.NoError(t, err)

	assert.Equal(t, "zombie_jump", c.States[cfg.Falling])
	assert.Equal(t, "zombie_idle", c.States[cfg.Walking])
	assert.NotContains(t, c.Frames, "zombie_walk1", "a partial animation contributes no frames")
}

func TestBuildCatalogRequiresIdle(t *testing.T) {
	_, err := BuildCatalog(cfg.Archetypes[cfg.ArchetypeZombie], func(id string) bool { return id != "zombie_idle" })
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownArchetype))
}

func keys(m map[string][]string) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
