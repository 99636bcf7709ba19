package config

// StateID identifies a character state for animation and logic.
type StateID int

const (
	StateNone StateID = iota - 1

	Idle
	Walking
	Jumping
	Falling
	Acting
	Hurt
)

// StateToName maps StateID to the log/HUD name of the state.
var StateToName = map[StateID]string{
	StateNone: "none",
	Idle:      "idle",
	Walking:   "walking",
	Jumping:   "jumping",
	Falling:   "falling",
	Acting:    "acting",
	Hurt:      "hurt",
}

func (s StateID) String() string {
	if name, ok := StateToName[s]; ok {
		return name
	}
	return "unknown"
}

// Airborne reports whether the state belongs to a jump arc.
func (s StateID) Airborne() bool {
	return s == Jumping || s == Falling
}

// ActionKind parameterizes the Acting state.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAttack
	ActionKick
	ActionDuck
	ActionTalk
	ActionCheer
	ActionClimb
	ActionSwim
	ActionCount // Must be last - used for array sizing
)

var actionToName = [ActionCount]string{
	ActionNone:   "none",
	ActionAttack: "attack",
	ActionKick:   "kick",
	ActionDuck:   "duck",
	ActionTalk:   "talk",
	ActionCheer:  "cheer",
	ActionClimb:  "climb",
	ActionSwim:   "swim",
}

func (a ActionKind) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionToName[a]
}

// ParseAction converts an action name to its ActionKind.
func ParseAction(name string) (ActionKind, bool) {
	for kind := ActionAttack; kind < ActionCount; kind++ {
		if actionToName[kind] == name {
			return kind, true
		}
	}
	return ActionNone, false
}

// Direction is a horizontal movement command.
type Direction int

const (
	DirectionStop Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "stop"
	}
}

// Sign returns -1, 0 or 1 for the direction.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionLeft:
		return -1
	case DirectionRight:
		return 1
	default:
		return 0
	}
}
