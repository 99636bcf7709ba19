package components

import (
	"github.com/automoto/spriteforge/config"
	"github.com/yohamta/donburi"
)

// AnimationData is the per-character animation catalog and the animation the
// controller last selected. Catalog entries are engine animation names.
type AnimationData struct {
	States  map[config.StateID]string
	Actions map[config.ActionKind]string

	Current    string
	FacingLeft bool
}

// Lookup returns the animation for a state, or for the action when acting.
func (a *AnimationData) Lookup(state config.StateID, action config.ActionKind) (string, bool) {
	if state == config.Acting {
		name, ok := a.Actions[action]
		return name, ok
	}
	name, ok := a.States[state]
	return name, ok
}

// Supports reports whether the catalog owns an animation for kind.
func (a *AnimationData) Supports(kind config.ActionKind) bool {
	_, ok := a.Actions[kind]
	return ok
}

// SetAnimation selects name and reports whether it differs from the current one.
func (a *AnimationData) SetAnimation(name string) bool {
	if a.Current == name {
		return false
	}
	a.Current = name
	return true
}

var Animation = donburi.NewComponentType[AnimationData]()
