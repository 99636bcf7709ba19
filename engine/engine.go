// Package engine declares the narrow surface the runtime needs from a
// rendering engine: a resource loader with a drain notification and a
// sprite animator. The ebiten implementation lives in package backend.
package engine

import "github.com/rotisserie/eris"

// SpriteID identifies a sprite instance spawned by the engine.
type SpriteID uint32

// NoSprite is the zero SpriteID; the engine never hands it out.
const NoSprite SpriteID = 0

// RepeatForever makes an animation loop until replaced.
const RepeatForever = -1

// ErrUnknownSprite is returned by animator calls on a destroyed or unknown sprite.
var ErrUnknownSprite = eris.New("unknown sprite")

// AnimationSpec describes a named frame sequence. Frames are texture ids
// that have already been loaded.
type AnimationSpec struct {
	Name      string
	Frames    []string
	FrameRate float64
	Repeat    int
}

// Loader queues resources and reports when the queue drains.
//
// Enqueued items are only fetched after Start. OnDrained callbacks fire once
// per drain, after every queued item has either loaded or failed.
// OnLoadFailed fires once per failed item, before the drain it belongs to.
type Loader interface {
	EnqueueImage(id, url string)
	EnqueueSound(id, url string)
	Start()
	OnDrained(fn func())
	OnLoadFailed(fn func(id string, err error))
}

// Animator creates animations and drives sprites.
type Animator interface {
	CreateAnimation(spec AnimationSpec) error
	HasAnimation(name string) bool
	SpawnSprite(textureID string, x, y float64) (SpriteID, error)
	DestroySprite(id SpriteID)
	PlayAnimation(id SpriteID, name string) error
	SetFlipX(id SpriteID, flip bool)
	SetPosition(id SpriteID, x, y float64)
	SetTint(id SpriteID, on bool)
	PlaySound(id string)
}

// Engine is everything the runtime drives.
type Engine interface {
	Loader
	Animator
}

// Body is the view of physics state the animation controller reads.
type Body interface {
	Grounded() bool
	Velocity() (vx, vy float64)
}
