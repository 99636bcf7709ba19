package renderers

import (
	"image/color"

	"github.com/automoto/spriteforge/components"
	"github.com/automoto/spriteforge/systems"
	"github.com/automoto/spriteforge/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug outlines every collision object when debug drawing is on.
func (r *Renderer) DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	if !r.Debug {
		return
	}
	spaceEntry, ok := components.Space.First(e.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	ox, oy := systems.CameraOffset(e.World, width, height)

	for _, obj := range space.Objects() {
		x, y := obj.X+ox, obj.Y+oy
		if x+obj.W < 0 || x > float64(width) || y+obj.H < 0 || y > float64(height) {
			continue
		}

		c := color.RGBA{0, 255, 255, 255}
		if obj.HasTags(tags.ResolvSolid) {
			c = color.RGBA{100, 100, 100, 255}
		} else if obj.HasTags(tags.ResolvCharacter) {
			c = color.RGBA{0, 0, 255, 255}
		}

		vector.FillRect(screen, float32(x), float32(y), float32(obj.W), 1, c, false)         // Top
		vector.FillRect(screen, float32(x), float32(y+obj.H-1), float32(obj.W), 1, c, false) // Bottom
		vector.FillRect(screen, float32(x), float32(y), 1, float32(obj.H), c, false)         // Left
		vector.FillRect(screen, float32(x+obj.W-1), float32(y), 1, float32(obj.H), c, false) // Right
	}
}
