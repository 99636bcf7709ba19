package scenes

import (
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

const debugHurtDamage = 10

var (
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}

	actionKeys = []struct {
		key  ebiten.Key
		kind cfg.ActionKind
	}{
		{ebiten.KeyX, cfg.ActionAttack},
		{ebiten.KeyC, cfg.ActionKick},
		{ebiten.KeyV, cfg.ActionDuck},
		{ebiten.KeyB, cfg.ActionCheer},
		{ebiten.KeyT, cfg.ActionTalk},
	}
)

// updateInput turns keyboard state into commands for the controlled
// character. Must run before the controller tick.
func (ws *WorldScene) updateInput(e *ecs.ECS) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		ws.renderer.Debug = !ws.renderer.Debug
		ws.saved.Debug = ws.renderer.Debug
		ws.prefs.save(ws.saved)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		ws.saved.Muted = !ws.saved.Muted
		ws.engine.SetMuted(ws.saved.Muted)
		ws.prefs.save(ws.saved)
	}

	hero, ok := tags.Controlled.First(e.World)
	if !ok {
		return
	}

	left, right := anyPressed(leftKeys), anyPressed(rightKeys)
	switch {
	case left && !right:
		_ = ws.controller.Move(hero, cfg.DirectionLeft)
	case right && !left:
		_ = ws.controller.Move(hero, cfg.DirectionRight)
	case anyJustReleased(leftKeys) || anyJustReleased(rightKeys):
		// Only an explicit stop; idle frames send nothing so holds survive.
		_ = ws.controller.Move(hero, cfg.DirectionStop)
	}

	if anyJustPressed(jumpKeys) {
		_ = ws.controller.Jump(hero)
	}
	for _, a := range actionKeys {
		if inpututil.IsKeyJustPressed(a.key) {
			// Unsupported actions are logged by the controller.
			_ = ws.controller.Act(hero, a.kind)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		_ = ws.controller.Hurt(hero, debugHurtDamage)
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}
