package systems

import (
	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/tags"
	"github.com/yohamta/donburi"
)

// UpdatePhysics applies gravity to every character. Speeds are in pixels per
// second; collision resolution moves objects by one tick's worth.
func UpdatePhysics(w donburi.World) {
	dt := 1 / float64(cfg.C.TPS)
	tags.Character.Each(w, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)

		if physics.OnGround == nil || physics.SpeedY < 0 {
			physics.SpeedY += cfg.Physics.Gravity * dt
		}
		if physics.SpeedY > cfg.Physics.MaxFallSpeed {
			physics.SpeedY = cfg.Physics.MaxFallSpeed
		} else if physics.SpeedY < cfg.Physics.MaxRiseSpeed {
			physics.SpeedY = cfg.Physics.MaxRiseSpeed
		}
	})
}
