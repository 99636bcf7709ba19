// Package backend implements engine.Engine on top of ebiten: a frame-paced
// resource queue, decoded texture and sound caches, and animated sprites.
package backend

import (
	"bytes"
	"context"
	"io/fs"
	"net/http"
	"sort"
	"time"

	"github.com/automoto/spriteforge/assets/animations"
	"github.com/automoto/spriteforge/backend/fetch"
	"github.com/automoto/spriteforge/engine"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Options configures an Engine.
type Options struct {
	// FS serves resource urls when BaseURL is empty.
	FS fs.FS
	// BaseURL switches resource fetching to HTTP.
	BaseURL      string
	Client       *http.Client
	FetchTimeout time.Duration

	MaxConcurrentFetches int
	// LoadsPerFrame caps how many fetched resources are decoded per Update.
	LoadsPerFrame int
	TPS           int

	Audio     *audio.Context
	SFXVolume float64

	// TintShader is the Kage source used for tinted sprites. Tinting is
	// skipped when empty.
	TintShader []byte
	TintColor  [4]float32
}

type sprite struct {
	texture   string
	animation *animations.Animation
	x, y      float64
	flipX     bool
	tint      bool
}

// Engine is the ebiten implementation of engine.Engine. All methods must be
// called from the game goroutine; only raw fetches run in the background.
type Engine struct {
	opts    Options
	logger  zerolog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher *fetch.Fetcher

	queue   []fetch.Job
	results chan fetch.Result
	pending int
	running bool

	drained []func()
	failed  []func(id string, err error)

	textures   map[string]*ebiten.Image
	sounds     *soundBank
	animations map[string]engine.AnimationSpec
	sprites    map[engine.SpriteID]*sprite
	nextSprite engine.SpriteID

	tint   *ebiten.Shader
	drawOp ebiten.DrawImageOptions
}

var _ engine.Engine = (*Engine)(nil)

func New(opts Options, logger zerolog.Logger) (*Engine, error) {
	if opts.LoadsPerFrame <= 0 {
		opts.LoadsPerFrame = 1
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}

	fetcher := fetch.New(fetch.Options{
		FS:            opts.FS,
		BaseURL:       opts.BaseURL,
		Client:        opts.Client,
		Timeout:       opts.FetchTimeout,
		MaxConcurrent: opts.MaxConcurrentFetches,
	})

	e := &Engine{
		opts:       opts,
		logger:     logger.With().Str("component", "engine").Logger(),
		fetcher:    fetcher,
		results:    make(chan fetch.Result, opts.LoadsPerFrame),
		textures:   make(map[string]*ebiten.Image),
		sounds:     newSoundBank(opts.Audio, opts.SFXVolume),
		animations: make(map[string]engine.AnimationSpec),
		sprites:    make(map[engine.SpriteID]*sprite),
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())

	if len(opts.TintShader) > 0 {
		shader, err := ebiten.NewShader(opts.TintShader)
		if err != nil {
			return nil, eris.Wrap(err, "failed to compile tint shader")
		}
		e.tint = shader
	}
	return e, nil
}

// Close cancels background fetches.
func (e *Engine) Close() {
	e.cancel()
}

func (e *Engine) EnqueueImage(id, url string) {
	e.queue = append(e.queue, fetch.Job{ID: id, URL: url})
}

func (e *Engine) EnqueueSound(id, url string) {
	e.queue = append(e.queue, fetch.Job{ID: id, URL: url, Sound: true})
}

// Start hands every queued item to the fetcher. Drain callbacks fire from a
// later Update once all of them are decoded or have failed.
func (e *Engine) Start() {
	e.running = true
	queued := e.queue
	e.queue = nil
	e.pending += len(queued)
	for _, j := range queued {
		go e.fetcher.Fetch(e.ctx, j, e.results)
	}
	e.logger.Debug().Int("queued", len(queued)).Int("pending", e.pending).Msg("load started")
}

func (e *Engine) OnDrained(fn func()) {
	e.drained = append(e.drained, fn)
}

func (e *Engine) OnLoadFailed(fn func(id string, err error)) {
	e.failed = append(e.failed, fn)
}

// Pending reports how many started items have not yet been decoded.
func (e *Engine) Pending() int {
	return e.pending + len(e.queue)
}

func (e *Engine) TextureCount() int { return len(e.textures) }
func (e *Engine) SoundCount() int   { return e.sounds.len() }
func (e *Engine) SpriteCount() int  { return len(e.sprites) }

// Update decodes up to LoadsPerFrame fetched resources, fires the drain
// notification when nothing is left, then advances every sprite animation.
func (e *Engine) Update() {
	e.processResults()
	for _, s := range e.sprites {
		if s.animation != nil {
			s.animation.Update()
		}
	}
}

func (e *Engine) processResults() {
	if !e.running {
		return
	}
	for n := 0; n < e.opts.LoadsPerFrame && e.pending > 0; n++ {
		select {
		case r := <-e.results:
			e.pending--
			e.finish(r)
		default:
			n = e.opts.LoadsPerFrame
		}
	}
	if e.pending > 0 {
		return
	}

	e.running = false
	e.logger.Debug().Int("textures", len(e.textures)).Int("sounds", e.sounds.len()).Msg("load queue drained")
	for _, fn := range e.drained {
		fn()
	}
}

func (e *Engine) finish(r fetch.Result) {
	err := r.Err
	if err == nil {
		err = e.decode(r.Job, r.Data)
	}
	if err == nil {
		return
	}

	e.logger.Warn().Err(err).Str("id", r.Job.ID).Str("url", r.Job.URL).Msg("resource failed to load")
	for _, fn := range e.failed {
		fn(r.Job.ID, err)
	}
}

func (e *Engine) decode(j fetch.Job, data []byte) error {
	if j.Sound {
		return e.sounds.decode(j.ID, j.URL, data)
	}
	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(data))
	if err != nil {
		return eris.Wrapf(err, "failed to decode image %s", j.URL)
	}
	e.textures[j.ID] = img
	return nil
}

func (e *Engine) CreateAnimation(spec engine.AnimationSpec) error {
	if _, ok := e.animations[spec.Name]; ok {
		return eris.Errorf("animation %s already exists", spec.Name)
	}
	if len(spec.Frames) == 0 {
		return eris.Errorf("animation %s has no frames", spec.Name)
	}
	for _, f := range spec.Frames {
		if _, ok := e.textures[f]; !ok {
			return eris.Errorf("animation %s: frame %s is not loaded", spec.Name, f)
		}
	}
	e.animations[spec.Name] = spec
	return nil
}

func (e *Engine) HasAnimation(name string) bool {
	_, ok := e.animations[name]
	return ok
}

func (e *Engine) SpawnSprite(textureID string, x, y float64) (engine.SpriteID, error) {
	if _, ok := e.textures[textureID]; !ok {
		return engine.NoSprite, eris.Errorf("texture %s is not loaded", textureID)
	}
	e.nextSprite++
	e.sprites[e.nextSprite] = &sprite{texture: textureID, x: x, y: y}
	return e.nextSprite, nil
}

func (e *Engine) DestroySprite(id engine.SpriteID) {
	delete(e.sprites, id)
}

// PlayAnimation starts the named animation from its first frame.
func (e *Engine) PlayAnimation(id engine.SpriteID, name string) error {
	s, ok := e.sprites[id]
	if !ok {
		return eris.Wrapf(engine.ErrUnknownSprite, "sprite %d", id)
	}
	spec, ok := e.animations[name]
	if !ok {
		return eris.Errorf("animation %s does not exist", name)
	}
	s.animation = animations.NewAnimation(spec.Name, spec.Frames, spec.FrameRate, spec.Repeat, e.opts.TPS)
	return nil
}

func (e *Engine) SetFlipX(id engine.SpriteID, flip bool) {
	if s, ok := e.sprites[id]; ok {
		s.flipX = flip
	}
}

func (e *Engine) SetPosition(id engine.SpriteID, x, y float64) {
	if s, ok := e.sprites[id]; ok {
		s.x, s.y = x, y
	}
}

func (e *Engine) SetTint(id engine.SpriteID, on bool) {
	if s, ok := e.sprites[id]; ok {
		s.tint = on
	}
}

func (e *Engine) PlaySound(id string) {
	if !e.sounds.play(id) && !e.sounds.has(id) {
		e.logger.Debug().Str("id", id).Msg("sound not loaded")
	}
}

// SetMuted silences or restores sound effects.
func (e *Engine) SetMuted(muted bool) {
	e.sounds.muted = muted
}

// Texture returns a loaded image, e.g. for props drawn outside the sprite set.
func (e *Engine) Texture(id string) (*ebiten.Image, bool) {
	img, ok := e.textures[id]
	return img, ok
}

// Draw renders every sprite with the given camera offset in spawn order.
func (e *Engine) Draw(screen *ebiten.Image, offsetX, offsetY float64) {
	ids := make([]engine.SpriteID, 0, len(e.sprites))
	for id := range e.sprites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		s := e.sprites[id]
		img := e.textures[s.texture]
		if s.animation != nil {
			if frame, ok := e.textures[s.animation.Frame()]; ok {
				img = frame
			}
		}
		if img == nil {
			continue
		}

		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		e.drawOp.GeoM.Reset()
		if s.flipX {
			e.drawOp.GeoM.Scale(-1, 1)
			e.drawOp.GeoM.Translate(float64(w), 0)
		}
		e.drawOp.GeoM.Translate(s.x+offsetX, s.y+offsetY)

		if s.tint && e.tint != nil {
			op := &ebiten.DrawRectShaderOptions{GeoM: e.drawOp.GeoM}
			op.Images[0] = img
			op.Uniforms = map[string]any{"Tint": e.opts.TintColor[:]}
			screen.DrawRectShader(w, h, e.tint, op)
			continue
		}
		screen.DrawImage(img, &e.drawOp)
	}
}
