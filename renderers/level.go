package renderers

import (
	"github.com/automoto/spriteforge/assets"
	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/systems"
	"github.com/automoto/spriteforge/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func (r *Renderer) DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.SkyBlue)
	ox, oy := systems.CameraOffset(e.World, screen.Bounds().Dx(), screen.Bounds().Dy())

	tags.Wall.Each(e.World, func(entry *donburi.Entry) {
		r.drawBlock(screen, components.Object.Get(entry), SolidTile, ox, oy)
	})
	tags.Platform.Each(e.World, func(entry *donburi.Entry) {
		r.drawBlock(screen, components.Object.Get(entry), PlatformTile, ox, oy)
	})
	tags.FloatingPlatform.Each(e.World, func(entry *donburi.Entry) {
		r.drawBlock(screen, components.Object.Get(entry), PlatformTile, ox, oy)
	})
}

// drawBlock repeats the tile across the object, or fills it flat while the
// tile is not loaded yet.
func (r *Renderer) drawBlock(screen *ebiten.Image, o *components.ObjectData, tileID string, ox, oy float64) {
	tile, ok := r.engine.Texture(tileID)
	if !ok {
		vector.FillRect(screen, float32(o.X+ox), float32(o.Y+oy), float32(o.W), float32(o.H), cfg.UI.DebugSolidTint, false)
		return
	}

	tw, th := float64(tile.Bounds().Dx()), float64(tile.Bounds().Dy())
	for y := 0.0; y < o.H; y += th {
		for x := 0.0; x < o.W; x += tw {
			r.drawOp.GeoM.Reset()
			r.drawOp.GeoM.Translate(o.X+x+ox, o.Y+y+oy)
			screen.DrawImage(tile, &r.drawOp)
		}
	}
}

// DrawProps draws the level's static props whose images are loaded.
func (r *Renderer) DrawProps(e *ecs.ECS, screen *ebiten.Image) {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry).CurrentLevel
	if level == nil {
		return
	}
	ox, oy := systems.CameraOffset(e.World, screen.Bounds().Dx(), screen.Bounds().Dy())
	for _, p := range level.Props {
		r.drawProp(screen, p, ox, oy)
	}
}

func (r *Renderer) drawProp(screen *ebiten.Image, p assets.Prop, ox, oy float64) {
	img, ok := r.engine.Texture(p.Asset)
	if !ok {
		return
	}
	scale := 1.0
	if d, err := r.index.Resolve(p.Asset); err == nil {
		if s, ok := d.Metadata["scale"].(float64); ok && s > 0 {
			scale = s
		}
	}
	r.drawOp.GeoM.Reset()
	r.drawOp.GeoM.Scale(scale, scale)
	// Props stand on their anchor point.
	r.drawOp.GeoM.Translate(p.X+ox, p.Y+oy-float64(img.Bounds().Dy())*scale)
	screen.DrawImage(img, &r.drawOp)
}
