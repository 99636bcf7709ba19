package systems

import (
	"math"

	"github.com/automoto/spriteforge/components"
	"github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/tags"
	"github.com/yohamta/donburi"
)

// UpdateCamera eases the camera toward the controlled character, keeping the
// view inside the level.
func UpdateCamera(w donburi.World) {
	cameraEntry, ok := components.Camera.First(w)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	target, ok := tags.Controlled.First(w)
	if !ok {
		return // nothing to follow
	}
	cx, cy := components.Object.Get(target).Center()

	levelEntry, ok := components.Level.First(w)
	if !ok {
		return
	}
	levelData := components.Level.Get(levelEntry)
	if levelData.CurrentLevel == nil {
		return
	}

	screenWidth := float64(config.C.Width)
	screenHeight := float64(config.C.Height)
	targetX := clampAxis(cx, screenWidth, float64(levelData.CurrentLevel.Width))
	targetY := clampAxis(cy, screenHeight, float64(levelData.CurrentLevel.Height))

	camera.Position.X += (targetX - camera.Position.X) * config.Camera.FollowSmoothing
	camera.Position.Y += (targetY - camera.Position.Y) * config.Camera.FollowSmoothing
}

// clampAxis keeps a camera center within a level axis; levels smaller than
// the screen are centered.
func clampAxis(v, screen, level float64) float64 {
	if level <= screen {
		return level / 2
	}
	return math.Max(screen/2, math.Min(level-screen/2, v))
}

// CameraOffset converts the camera center into a draw offset for a screen of
// the given size.
func CameraOffset(w donburi.World, width, height int) (float64, float64) {
	cameraEntry, ok := components.Camera.First(w)
	if !ok {
		return 0, 0
	}
	camera := components.Camera.Get(cameraEntry)
	return float64(width)/2 - camera.Position.X, float64(height)/2 - camera.Position.Y
}
