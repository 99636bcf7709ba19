package components

import (
	"github.com/automoto/spriteforge/config"
	"github.com/yohamta/donburi"
)

type StateData struct {
	CurrentState  config.StateID
	PreviousState config.StateID
	Action        config.ActionKind
	StateTimer    int

	// Duration is how many ticks the current acting or hurt state declared;
	// zero holds until the next command.
	Duration      int
	Interruptible bool
}

// Locked reports whether the state must run out its duration before any
// command is honored.
func (s *StateData) Locked() bool {
	if s.CurrentState != config.Acting && s.CurrentState != config.Hurt {
		return false
	}
	return !s.Interruptible && s.StateTimer < s.Duration
}

// Holding reports whether an interruptible action is still playing.
func (s *StateData) Holding() bool {
	if s.CurrentState != config.Acting || !s.Interruptible {
		return false
	}
	return s.Duration == 0 || s.StateTimer < s.Duration
}

var State = donburi.NewComponentType[StateData]()
