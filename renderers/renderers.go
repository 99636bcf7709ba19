// Package renderers draws the world: level geometry, props, sprites, the HUD
// and the collision debug overlay.
package renderers

import (
	"github.com/automoto/spriteforge/backend"
	"github.com/automoto/spriteforge/loader"
	"github.com/automoto/spriteforge/registry"
	"github.com/automoto/spriteforge/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Tile ids drawn over solids and platforms once loaded.
const (
	SolidTile    = "tile_stone"
	PlatformTile = "tile_grass"
)

// Renderer holds what the draw passes read besides the world.
type Renderer struct {
	engine *backend.Engine
	index  *registry.Index
	loads  *loader.Coordinator
	Debug  bool

	drawOp ebiten.DrawImageOptions
}

func New(eng *backend.Engine, index *registry.Index, loads *loader.Coordinator, debug bool) *Renderer {
	return &Renderer{engine: eng, index: index, loads: loads, Debug: debug}
}

// DrawSprites draws every engine sprite at the camera offset.
func (r *Renderer) DrawSprites(e *ecs.ECS, screen *ebiten.Image) {
	ox, oy := systems.CameraOffset(e.World, screen.Bounds().Dx(), screen.Bounds().Dy())
	r.engine.Draw(screen, ox, oy)
}
