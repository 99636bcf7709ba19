package components

import (
	"github.com/automoto/spriteforge/config"
	"github.com/yohamta/donburi"
)

// CommandData buffers the commands issued to a character since its last tick.
type CommandData struct {
	Move    config.Direction
	HasMove bool
	Jump    bool
	Act     config.ActionKind
	Damage  int
	Hurt    bool
}

// Any reports whether a command is waiting.
func (c *CommandData) Any() bool {
	return c.HasMove || c.Jump || c.Act != config.ActionNone || c.Hurt
}

func (c *CommandData) Reset() {
	*c = CommandData{}
}

var Command = donburi.NewComponentType[CommandData]()
