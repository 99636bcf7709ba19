package factory

import (
	"github.com/automoto/spriteforge/archetypes"
	"github.com/automoto/spriteforge/components"
	"github.com/automoto/spriteforge/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// CreatePlatform adds a one-way platform characters can land on from above.
func CreatePlatform(w donburi.World, x, y, width, height float64) *donburi.Entry {
	platform := archetypes.Platform.Spawn(w)
	addPlatformObject(w, platform, x, y, width, height)
	return platform
}

// CreateFloatingPlatform adds a platform that rises by travel pixels and
// back, taking seconds for each leg.
func CreateFloatingPlatform(w donburi.World, x, y, width, height, travel float64, seconds float32) *donburi.Entry {
	platform := archetypes.FloatingPlatform.Spawn(w)
	obj := addPlatformObject(w, platform, x, y, width, height)

	tw := gween.NewSequence()
	tw.Add(
		gween.New(float32(obj.Y), float32(obj.Y-travel), seconds, ease.InOutSine),
		gween.New(float32(obj.Y-travel), float32(obj.Y), seconds, ease.InOutSine),
	)
	tw.SetLoop(-1)
	components.Tween.Set(platform, tw)

	return platform
}

func addPlatformObject(w donburi.World, platform *donburi.Entry, x, y, width, height float64) *resolv.Object {
	obj := resolv.NewObject(x, y, width, height, tags.ResolvPlatform)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	obj.Data = platform
	components.Object.SetValue(platform, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(w); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
	return obj
}
