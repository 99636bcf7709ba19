package systems

import (
	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/tags"
	"github.com/yohamta/donburi"
)

// UpdateObjects advances floating platform tweens and carries characters
// standing on them.
func UpdateObjects(w donburi.World) {
	dt := float32(1 / float64(cfg.C.TPS))
	tags.FloatingPlatform.Each(w, func(e *donburi.Entry) {
		tw := components.Tween.Get(e)
		obj := components.Object.Get(e)

		y, _, _ := tw.Update(dt)
		dy := float64(y) - obj.Y
		obj.Y = float64(y)
		obj.Update()

		if dy == 0 {
			return
		}
		tags.Character.Each(w, func(c *donburi.Entry) {
			if components.Physics.Get(c).OnGround != obj.Object {
				return
			}
			carried := components.Object.Get(c)
			carried.Y += dy
			carried.Update()
		})
	})
}

// SyncSprites pushes character positions to their engine sprites.
func SyncSprites(w donburi.World, c *Controller) {
	tags.Character.Each(w, func(e *donburi.Entry) {
		char := components.Character.Get(e)
		if !char.Ready {
			return
		}
		obj := components.Object.Get(e)
		c.animator.SetPosition(char.Sprite, obj.X, obj.Y)
	})
}
