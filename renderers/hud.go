package renderers

import (
	"fmt"
	"sort"

	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/fonts"
	"github.com/automoto/spriteforge/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const hudWidth = 260

// DrawHUD shows the controlled character's state and the loading counters
// in the top-left corner.
func (r *Renderer) DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	lines := r.hudLines(e)

	margin := cfg.UI.HUDMargin
	height := len(lines)*cfg.UI.HUDLineHeight + margin
	vector.FillRect(screen, float32(margin), float32(margin), hudWidth, float32(height), cfg.UI.HUDPanelColor, false)

	face := fonts.HUD.Get()
	for i, line := range lines {
		y := margin*2 + (i+1)*cfg.UI.HUDLineHeight - cfg.UI.HUDLineHeight/4
		text.Draw(screen, line, face, margin*2, y, cfg.UI.HUDTextColor)
	}
}

func (r *Renderer) hudLines(e *ecs.ECS) []string {
	var lines []string
	if levelEntry, ok := components.Level.First(e.World); ok {
		if level := components.Level.Get(levelEntry).CurrentLevel; level != nil {
			lines = append(lines, level.Title)
		}
	}

	if hero, ok := tags.Controlled.First(e.World); ok {
		char := components.Character.Get(hero)
		state := components.State.Get(hero)
		anim := components.Animation.Get(hero)
		hp := components.Health.Get(hero)
		status := anim.Current
		if !char.Ready {
			status = "loading"
		}
		lines = append(lines,
			fmt.Sprintf("%s  %s  %s", char.Archetype, state.CurrentState, status),
			fmt.Sprintf("hp %d/%d", hp.Current, hp.Max),
		)
	}

	sources := r.index.Stats()
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	lines = append(lines, fmt.Sprintf("registry %d assets  %d collisions", r.index.Len(), len(r.index.Collisions())))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %s: %d", name, sources[name].Assets))
	}

	lines = append(lines, fmt.Sprintf("loaded %d tex  %d sfx  %d pending  gen %d",
		r.engine.TextureCount(), r.engine.SoundCount(), r.engine.Pending(), r.loads.Generation()))
	return lines
}
