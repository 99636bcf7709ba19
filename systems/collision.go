package systems

import (
	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// UpdateCollisions moves every character by its velocity and resolves
// contacts with walls, platforms and other characters.
func UpdateCollisions(w donburi.World) {
	dt := 1 / float64(cfg.C.TPS)
	tags.Character.Each(w, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)

		resolveHorizontalCollision(physics, obj.Object, physics.SpeedX*dt)
		resolveVerticalCollision(physics, obj.Object, physics.SpeedY*dt)
		obj.Update()
	})
}

// resolveHorizontalCollision stops at solids and slides past characters.
func resolveHorizontalCollision(physics *components.PhysicsData, object *resolv.Object, dx float64) {
	if dx == 0 {
		return
	}

	check := object.Check(dx, 0, tags.ResolvSolid, tags.ResolvCharacter)
	if check == nil {
		object.X += dx
		return
	}

	if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 && overlapsVertically(object, solids[0]) {
		object.X += check.ContactWithObject(solids[0]).X()
		physics.SpeedX = 0
		return
	}

	if characters := check.ObjectsByTags(tags.ResolvCharacter); len(characters) > 0 {
		// characters do not block each other; a gentle push keeps them from stacking
		if contact := check.ContactWithObject(characters[0]); contact.X() == 0 {
			if dx > 0 {
				dx = -0.5
			} else {
				dx = 0.5
			}
		}
	}
	object.X += dx
}

func overlapsVertically(object, solid *resolv.Object) bool {
	return object.Y+object.H > solid.Y && object.Y < solid.Y+solid.H
}

// resolveVerticalCollision lands characters on solids and, when falling from
// above, on platforms. It records the ground contact for the controller.
func resolveVerticalCollision(physics *components.PhysicsData, object *resolv.Object, dy float64) {
	physics.OnGround = nil

	checkDistance := dy
	if dy >= 0 {
		checkDistance += cfg.Physics.GroundReach
	}

	check := object.Check(0, checkDistance, tags.ResolvSolid, tags.ResolvPlatform)
	if check == nil {
		object.Y += dy
		return
	}

	if dy < 0 {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			physics.SpeedY = 0
			dy = check.ContactWithObject(solids[0]).Y()
		}
		object.Y += dy
		return
	}

	if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
		physics.OnGround = solids[0]
		physics.SpeedY = 0
		object.Y += check.ContactWithObject(solids[0]).Y()
		return
	}

	if platforms := check.ObjectsByTags(tags.ResolvPlatform); len(platforms) > 0 {
		platform := platforms[0]
		if object.Bottom() <= platform.Y+cfg.Physics.GroundReach {
			physics.OnGround = platform
			physics.SpeedY = 0
			object.Y += check.ContactWithObject(platform).Y()
			return
		}
	}
	object.Y += dy
}
