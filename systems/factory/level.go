package factory

import (
	"github.com/automoto/spriteforge/archetypes"
	"github.com/automoto/spriteforge/assets"
	"github.com/automoto/spriteforge/components"
	"github.com/yohamta/donburi"
)

const levelCellSize = 16

// CreateLevel spawns the level entity, its collision space and every solid
// and platform it declares. Characters are created separately.
func CreateLevel(w donburi.World, level *assets.Level) *donburi.Entry {
	entry := archetypes.Level.Spawn(w)
	components.Level.Set(entry, &components.LevelData{CurrentLevel: level})

	CreateSpace(w, level.Width, level.Height, levelCellSize, levelCellSize)

	for _, r := range level.Solids {
		CreateWall(w, r.X, r.Y, r.Width, r.Height)
	}
	for _, r := range level.Platforms {
		CreatePlatform(w, r.X, r.Y, r.Width, r.Height)
	}
	for _, fp := range level.FloatingPlatforms {
		CreateFloatingPlatform(w, fp.X, fp.Y, fp.Width, fp.Height, fp.Travel, fp.Seconds)
	}
	return entry
}
