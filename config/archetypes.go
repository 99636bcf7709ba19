package config

// ArchetypeID names a category of character with its own sprite set and tunables.
type ArchetypeID string

const (
	ArchetypePlayer  ArchetypeID = "player"
	ArchetypeFemale  ArchetypeID = "female"
	ArchetypeZombie  ArchetypeID = "zombie"
	ArchetypeSoldier ArchetypeID = "soldier"
	ArchetypeWalker  ArchetypeID = "walker"
)

// Tunables are the per-entity parameters an archetype provides defaults for.
type Tunables struct {
	Speed       float64 // horizontal speed, px/s
	JumpImpulse float64 // vertical launch speed, px/s
	Health      int
	Scale       float64
}

// Merge returns t with every non-zero field of override applied.
func (t Tunables) Merge(override Tunables) Tunables {
	if override.Speed != 0 {
		t.Speed = override.Speed
	}
	if override.JumpImpulse != 0 {
		t.JumpImpulse = override.JumpImpulse
	}
	if override.Health != 0 {
		t.Health = override.Health
	}
	if override.Scale != 0 {
		t.Scale = override.Scale
	}
	return t
}

// ArchetypeConfig contains configuration for a character archetype
type ArchetypeConfig struct {
	ID       ArchetypeID
	Defaults Tunables

	// Animations lists the animation names this archetype declares. Frames
	// resolve to "<ID>_<frame suffix>" resource ids.
	Animations []string

	// Sounds optionally maps a state entry to a sound resource id.
	Sounds map[StateID]string

	// Dimensions
	CollisionWidth  int
	CollisionHeight int
}

// IdleResource is the id of the texture a freshly spawned sprite shows.
func (a ArchetypeConfig) IdleResource() string {
	return FrameID(a.ID, Animations[AnimIdle].Frames[0])
}

// FrameID builds the resource id of one archetype frame.
func FrameID(archetype ArchetypeID, suffix string) string {
	return string(archetype) + "_" + suffix
}

// AnimationName builds the engine-wide animation name for an archetype.
func AnimationName(archetype ArchetypeID, anim string) string {
	return string(archetype) + "_" + anim
}

var fullAnimationSet = []string{
	AnimIdle, AnimWalk, AnimJump, AnimFall, AnimHurt,
	AnimAttack, AnimKick, AnimDuck, AnimTalk, AnimCheer, AnimClimb, AnimSwim,
}

// Archetypes holds every known character archetype.
var Archetypes = map[ArchetypeID]ArchetypeConfig{
	ArchetypePlayer: {
		ID:              ArchetypePlayer,
		Defaults:        Tunables{Speed: 120, JumpImpulse: 350, Health: 100, Scale: 1},
		Animations:      fullAnimationSet,
		Sounds:          map[StateID]string{Jumping: "sfx_jump"},
		CollisionWidth:  24,
		CollisionHeight: 44,
	},
	ArchetypeFemale: {
		ID:              ArchetypeFemale,
		Defaults:        Tunables{Speed: 110, JumpImpulse: 320, Health: 90, Scale: 1},
		Animations:      fullAnimationSet,
		Sounds:          map[StateID]string{Jumping: "sfx_jump"},
		CollisionWidth:  24,
		CollisionHeight: 44,
	},
	ArchetypeZombie: {
		ID:              ArchetypeZombie,
		Defaults:        Tunables{Speed: 60, JumpImpulse: 200, Health: 150, Scale: 1},
		Animations:      fullAnimationSet,
		CollisionWidth:  24,
		CollisionHeight: 44,
	},
	ArchetypeSoldier: {
		ID:              ArchetypeSoldier,
		Defaults:        Tunables{Speed: 100, JumpImpulse: 280, Health: 120, Scale: 1},
		Animations:      fullAnimationSet,
		CollisionWidth:  24,
		CollisionHeight: 44,
	},
	ArchetypeWalker: {
		ID:              ArchetypeWalker,
		Defaults:        Tunables{Speed: 80, JumpImpulse: 260, Health: 60, Scale: 1},
		Animations:      []string{AnimIdle, AnimWalk, AnimJump, AnimFall, AnimHurt, AnimAttack},
		CollisionWidth:  24,
		CollisionHeight: 44,
	},
}
