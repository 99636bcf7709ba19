// Package enginetest provides a recording engine.Engine for tests. Loads
// never complete on their own; tests call Drain or Fail explicitly.
package enginetest

import (
	"fmt"
	"slices"
	"sync"

	"github.com/automoto/spriteforge/engine"
	"github.com/rotisserie/eris"
)

// Request is one enqueue call.
type Request struct {
	ID    string
	URL   string
	Sound bool
}

// Sprite is the recorded state of a spawned sprite.
type Sprite struct {
	Texture   string
	X, Y      float64
	Animation string
	FlipX     bool
	Tint      bool
	Plays     int
}

type Engine struct {
	mu sync.Mutex

	Requests   []Request
	Starts     int
	Animations map[string]engine.AnimationSpec
	Sprites    map[engine.SpriteID]*Sprite
	Sounds     []string
	// PlayLog lists every PlayAnimation call as "<sprite>:<animation>".
	PlayLog []string

	queued   []Request
	loaded   map[string]bool
	drained  []func()
	failed   []func(string, error)
	nextID   engine.SpriteID
	failures map[string]error
}

var _ engine.Engine = (*Engine)(nil)

func New() *Engine {
	return &Engine{
		Animations: make(map[string]engine.AnimationSpec),
		Sprites:    make(map[engine.SpriteID]*Sprite),
		loaded:     make(map[string]bool),
		failures:   make(map[string]error),
	}
}

func (e *Engine) EnqueueImage(id, url string) { e.enqueue(Request{ID: id, URL: url}) }
func (e *Engine) EnqueueSound(id, url string) { e.enqueue(Request{ID: id, URL: url, Sound: true}) }

func (e *Engine) enqueue(r Request) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Requests = append(e.Requests, r)
	e.queued = append(e.queued, r)
}

func (e *Engine) Start() {
	e.mu.Lock()
	e.Starts++
	e.mu.Unlock()
}

func (e *Engine) OnDrained(fn func())                       { e.drained = append(e.drained, fn) }
func (e *Engine) OnLoadFailed(fn func(id string, err error)) { e.failed = append(e.failed, fn) }

// Fail marks id to fail on the next Drain.
func (e *Engine) Fail(id string, err error) {
	e.mu.Lock()
	e.failures[id] = err
	e.mu.Unlock()
}

// Drain completes every queued item, reporting failures first, then fires
// the drain callbacks.
func (e *Engine) Drain() {
	e.mu.Lock()
	queued := e.queued
	e.queued = nil
	var failures []Request
	for _, r := range queued {
		if _, bad := e.failures[r.ID]; bad {
			failures = append(failures, r)
			continue
		}
		e.loaded[r.ID] = true
	}
	e.mu.Unlock()

	for _, r := range failures {
		err := e.failures[r.ID]
		for _, fn := range e.failed {
			fn(r.ID, err)
		}
	}
	for _, fn := range e.drained {
		fn()
	}
}

// Preload marks ids as loaded without queueing them.
func (e *Engine) Preload(ids ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range ids {
		e.loaded[id] = true
	}
}

// Pending lists queued ids not yet drained.
func (e *Engine) Pending() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, len(e.queued))
	for _, r := range e.queued {
		ids = append(ids, r.ID)
	}
	return ids
}

// RequestCount is how many times id was enqueued.
func (e *Engine) RequestCount(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, r := range e.Requests {
		if r.ID == id {
			n++
		}
	}
	return n
}

func (e *Engine) Loaded(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded[id]
}

func (e *Engine) CreateAnimation(spec engine.AnimationSpec) error {
	for _, f := range spec.Frames {
		if !e.Loaded(f) {
			return eris.Errorf("animation %s: frame %s not loaded", spec.Name, f)
		}
	}
	if _, ok := e.Animations[spec.Name]; ok {
		return eris.Errorf("animation %s already exists", spec.Name)
	}
	spec.Frames = slices.Clone(spec.Frames)
	e.Animations[spec.Name] = spec
	return nil
}

func (e *Engine) HasAnimation(name string) bool {
	_, ok := e.Animations[name]
	return ok
}

func (e *Engine) SpawnSprite(texture string, x, y float64) (engine.SpriteID, error) {
	if !e.Loaded(texture) {
		return engine.NoSprite, eris.Errorf("texture %s not loaded", texture)
	}
	e.nextID++
	e.Sprites[e.nextID] = &Sprite{Texture: texture, X: x, Y: y}
	return e.nextID, nil
}

func (e *Engine) DestroySprite(id engine.SpriteID) { delete(e.Sprites, id) }

func (e *Engine) PlayAnimation(id engine.SpriteID, name string) error {
	s, ok := e.Sprites[id]
	if !ok {
		return engine.ErrUnknownSprite
	}
	if !e.HasAnimation(name) {
		return eris.Errorf("animation %s does not exist", name)
	}
	s.Animation = name
	s.Plays++
	e.PlayLog = append(e.PlayLog, fmt.Sprintf("%d:%s", id, name))
	return nil
}

func (e *Engine) SetFlipX(id engine.SpriteID, flip bool) {
	if s, ok := e.Sprites[id]; ok {
		s.FlipX = flip
	}
}

func (e *Engine) SetPosition(id engine.SpriteID, x, y float64) {
	if s, ok := e.Sprites[id]; ok {
		s.X, s.Y = x, y
	}
}

func (e *Engine) SetTint(id engine.SpriteID, on bool) {
	if s, ok := e.Sprites[id]; ok {
		s.Tint = on
	}
}

func (e *Engine) PlaySound(id string) { e.Sounds = append(e.Sounds, id) }
