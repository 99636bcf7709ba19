package components

import (
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

var Space = donburi.NewComponentType[resolv.Space]()

var Tween = donburi.NewComponentType[gween.Sequence]()
