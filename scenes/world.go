package scenes

import (
	"context"
	"image/color"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/automoto/spriteforge/assets"
	"github.com/automoto/spriteforge/backend"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/loader"
	"github.com/automoto/spriteforge/registry"
	"github.com/automoto/spriteforge/renderers"
	"github.com/automoto/spriteforge/systems"
	"github.com/automoto/spriteforge/systems/factory"
	"github.com/automoto/spriteforge/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const layerDefault ecs.LayerID = 0

// WorldScene hosts the level, its characters and the loading pipeline.
type WorldScene struct {
	settings cfg.Settings
	logger   zerolog.Logger
	audio    *audio.Context

	ecs        *ecs.ECS
	index      *registry.Index
	loads      *loader.Coordinator
	engine     *backend.Engine
	controller *systems.Controller
	factory    *factory.Factory
	renderer   *renderers.Renderer
	prefs      *prefsStore
	saved      Prefs

	once sync.Once
	err  error
}

func NewWorldScene(settings cfg.Settings, logger zerolog.Logger, audioCtx *audio.Context) *WorldScene {
	return &WorldScene{settings: settings, logger: logger, audio: audioCtx}
}

func (ws *WorldScene) Update() error {
	ws.once.Do(func() {
		ws.err = ws.configure()
	})
	if ws.err != nil {
		return ws.err
	}
	ws.ecs.Update()
	return nil
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ws.ecs == nil {
		return
	}
	ws.ecs.Draw(screen)
}

// Close stops background resource fetches.
func (ws *WorldScene) Close() {
	if ws.engine != nil {
		ws.engine.Close()
	}
}

func (ws *WorldScene) configure() error {
	ws.index = registry.NewIndex(ws.logger)
	if err := ws.registerManifests(); err != nil {
		return err
	}

	tint, err := assets.Shader("tint")
	if err != nil {
		return err
	}
	ws.engine, err = backend.New(backend.Options{
		FS:            assets.FS(),
		BaseURL:       ws.settings.ManifestBaseURL,
		FetchTimeout:  ws.settings.FetchTimeout,
		LoadsPerFrame: ws.settings.LoadsPerFrame,
		TPS:           cfg.C.TPS,
		Audio:         ws.audio,
		SFXVolume:     cfg.Audio.SFXVolume,
		TintShader:    tint,
		TintColor:     cfg.UI.HurtTint,
	}, ws.logger)
	if err != nil {
		return err
	}

	ws.prefs = openPrefs("spriteforge", ws.logger)
	ws.saved = ws.prefs.load()
	ws.engine.SetMuted(ws.saved.Muted)

	ws.loads = loader.NewCoordinator(ws.index, ws.engine, loader.NewLedger(), ws.logger)
	ws.controller = systems.NewController(ws.engine, cfg.C.TPS, ws.logger)
	ws.renderer = renderers.New(ws.engine, ws.index, ws.loads, ws.settings.Debug || ws.saved.Debug)

	world := donburi.NewWorld()
	ws.ecs = ecs.NewECS(world)
	ws.factory = factory.NewFactory(world, ws.index, ws.loads, ws.engine, ws.logger)

	ws.ecs.AddSystem(ws.updateInput)
	ws.ecs.AddSystem(func(e *ecs.ECS) { ws.controller.TickAll(e.World) })
	ws.ecs.AddSystem(func(e *ecs.ECS) { systems.UpdatePhysics(e.World) })
	ws.ecs.AddSystem(func(e *ecs.ECS) { systems.UpdateObjects(e.World) })
	ws.ecs.AddSystem(func(e *ecs.ECS) { systems.UpdateCollisions(e.World) })
	ws.ecs.AddSystem(func(e *ecs.ECS) { systems.UpdateCamera(e.World) })
	ws.ecs.AddSystem(func(e *ecs.ECS) { systems.SyncSprites(e.World, ws.controller) })
	// Load completions fire from here, after this tick's commands resolved.
	ws.ecs.AddSystem(func(*ecs.ECS) { ws.engine.Update() })

	ws.ecs.AddRenderer(layerDefault, ws.renderer.DrawLevel)
	ws.ecs.AddRenderer(layerDefault, ws.renderer.DrawProps)
	ws.ecs.AddRenderer(layerDefault, ws.renderer.DrawSprites)
	ws.ecs.AddRenderer(layerDefault, ws.renderer.DrawDebug)
	ws.ecs.AddRenderer(layerDefault, ws.renderer.DrawHUD)

	return ws.loadLevel(world)
}

func (ws *WorldScene) registerManifests() error {
	refs := make([]registry.Ref, 0, len(ws.settings.Manifests))
	for _, p := range ws.settings.Manifests {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		refs = append(refs, registry.Ref{Name: strings.TrimSuffix(path.Base(p), path.Ext(p)), Path: p})
	}

	var src registry.Source = registry.FSSource{FS: assets.FS()}
	if ws.settings.ManifestBaseURL != "" {
		src = registry.HTTPSource{
			BaseURL: ws.settings.ManifestBaseURL,
			Client:  &http.Client{Timeout: ws.settings.FetchTimeout},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), ws.settings.FetchTimeout*4)
	defer cancel()
	if err := ws.index.RegisterAll(ctx, src, refs); err != nil {
		// Keep going with whatever registered.
		ws.logger.Warn().Err(err).Msg("some manifests failed to register")
	}
	if ws.index.Len() == 0 {
		return eris.New("no manifest registered any asset")
	}
	return nil
}

func (ws *WorldScene) loadLevel(world donburi.World) error {
	level, err := assets.LoadLevel(ws.settings.Level)
	if err != nil {
		return err
	}
	factory.CreateLevel(world, level)
	factory.CreateCamera(world, float64(cfg.C.Width)/2, float64(cfg.C.Height)/2)

	for _, sp := range level.Spawns {
		id := cfg.ArchetypeID(sp.Archetype)
		if sp.Controlled {
			id = ws.settings.PlayerArchetype
		}
		entry, err := ws.factory.Create(id, sp.X, sp.Y, cfg.Tunables{Speed: sp.Speed})
		if err != nil {
			ws.logger.Warn().Err(err).Str("spawn", sp.Name).Msg("skipping character spawn")
			continue
		}
		if sp.Controlled {
			entry.AddComponent(tags.Controlled)
		}
	}

	scenery := ws.loads.LoadRequired(map[string][]string{
		"props": level.PropAssets(),
		"tiles": {renderers.SolidTile, renderers.PlatformTile},
	})
	scenery.OnComplete(func(b *loader.Batch) {
		for _, w := range b.Warnings() {
			ws.logger.Warn().Err(w.Err).Str("id", w.ID).Stringer("kind", w.Kind).Msg("scenery asset unavailable")
		}
	})

	ws.logger.Info().
		Str("level", level.Name).
		Int("spawns", len(level.Spawns)).
		Int("assets", ws.index.Len()).
		Msg("world configured")
	return nil
}
