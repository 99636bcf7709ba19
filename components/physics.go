package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// PhysicsData holds velocities in pixels per second and the ground contact
// found by the last collision pass.
type PhysicsData struct {
	SpeedX   float64
	SpeedY   float64
	OnGround *resolv.Object
}

func (p *PhysicsData) Grounded() bool {
	return p.OnGround != nil
}

func (p *PhysicsData) Velocity() (vx, vy float64) {
	return p.SpeedX, p.SpeedY
}

var Physics = donburi.NewComponentType[PhysicsData]()
