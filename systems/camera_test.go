package systems

import (
	"testing"

	"github.com/automoto/spriteforge/archetypes"
	"github.com/automoto/spriteforge/assets"
	"github.com/automoto/spriteforge/components"
	"github.com/automoto/spriteforge/systems/factory"
	"github.com/automoto/spriteforge/tags"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
)

func cameraWorld(levelWidth, levelHeight int) (donburi.World, *components.CameraData) {
	w := donburi.NewWorld()
	level := archetypes.Level.Spawn(w)
	components.Level.Set(level, &components.LevelData{CurrentLevel: &assets.Level{Width: levelWidth, Height: levelHeight}})

	hero := archetypes.Character.Spawn(w, tags.Controlled)
	components.Object.SetValue(hero, components.ObjectData{Object: resolv.NewObject(100, 100, 24, 44, tags.ResolvCharacter)})

	camera := factory.CreateCamera(w, 0, 0)
	return w, components.Camera.Get(camera)
}

func TestCameraFollowsControlledCharacter(t *testing.T) {
	w, camera := cameraWorld(960, 608)

	UpdateCamera(w)
	assert.InDelta(t, 40, camera.Position.X, 1e-9)
	assert.InDelta(t, 30, camera.Position.Y, 1e-9)

	for i := 0; i < 300; i++ {
		UpdateCamera(w)
	}
	// Clamped to the level's top-left corner.
	assert.InDelta(t, 400, camera.Position.X, 0.01)
	assert.InDelta(t, 300, camera.Position.Y, 0.01)

	x, y := CameraOffset(w, 800, 600)
	assert.InDelta(t, 0, x, 0.01)
	assert.InDelta(t, 0, y, 0.01)
}

func TestCameraCentersSmallLevel(t *testing.T) {
	w, camera := cameraWorld(320, 200)
	for i := 0; i < 300; i++ {
		UpdateCamera(w)
	}
	assert.InDelta(t, 160, camera.Position.X, 0.01)
	assert.InDelta(t, 100, camera.Position.Y, 0.01)
}

func TestCameraWithoutTarget(t *testing.T) {
	w := donburi.NewWorld()
	camera := components.Camera.Get(factory.CreateCamera(w, 5, 6))
	UpdateCamera(w)
	assert.Equal(t, 5.0, camera.Position.X)
	assert.Equal(t, 6.0, camera.Position.Y)
}
