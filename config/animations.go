package config

import "math"

// RepeatForever marks a looping animation.
const RepeatForever = -1

// AnimationDef describes one named animation as a list of frame suffixes.
// Frame resource ids are "<archetype>_<suffix>".
type AnimationDef struct {
	Frames    []string
	FrameRate float64 // frames per second
	Repeat    int     // extra passes after the first; RepeatForever loops
}

// Loops reports whether the animation never completes on its own.
func (d AnimationDef) Loops() bool {
	return d.Repeat == RepeatForever
}

// Ticks returns how many simulation ticks one full playback lasts, or 0 for
// looping animations.
func (d AnimationDef) Ticks(tps int) int {
	if d.Loops() || d.FrameRate <= 0 || len(d.Frames) == 0 {
		return 0
	}
	passes := float64(d.Repeat + 1)
	seconds := float64(len(d.Frames)) * passes / d.FrameRate
	return int(math.Ceil(seconds * float64(tps)))
}

// Animation names shared by every archetype.
const (
	AnimIdle   = "idle"
	AnimWalk   = "walk"
	AnimJump   = "jump"
	AnimFall   = "fall"
	AnimHurt   = "hurt"
	AnimAttack = "attack"
	AnimKick   = "kick"
	AnimDuck   = "duck"
	AnimTalk   = "talk"
	AnimCheer  = "cheer"
	AnimClimb  = "climb"
	AnimSwim   = "swim"
)

// Animations is the full animation set a character archetype may declare.
var Animations = map[string]AnimationDef{
	AnimIdle:   {Frames: []string{"idle"}, FrameRate: 1, Repeat: RepeatForever},
	AnimWalk:   {Frames: []string{"walk1", "walk2"}, FrameRate: 8, Repeat: RepeatForever},
	AnimJump:   {Frames: []string{"jump"}, FrameRate: 1, Repeat: RepeatForever},
	AnimFall:   {Frames: []string{"fall"}, FrameRate: 1, Repeat: RepeatForever},
	AnimHurt:   {Frames: []string{"hurt"}, FrameRate: 1, Repeat: 0},
	AnimAttack: {Frames: []string{"action1", "action2"}, FrameRate: 12, Repeat: 0},
	AnimKick:   {Frames: []string{"kick"}, FrameRate: 1, Repeat: 0},
	AnimDuck:   {Frames: []string{"duck"}, FrameRate: 1, Repeat: 0},
	AnimTalk:   {Frames: []string{"talk"}, FrameRate: 1, Repeat: 0},
	AnimCheer:  {Frames: []string{"cheer1", "cheer2"}, FrameRate: 4, Repeat: 2},
	AnimClimb:  {Frames: []string{"climb1", "climb2"}, FrameRate: 6, Repeat: RepeatForever},
	AnimSwim:   {Frames: []string{"swim1", "swim2"}, FrameRate: 6, Repeat: RepeatForever},
}

// StateAnimations lists, per state, the animation to play and its fallbacks
// in order of preference. Acting resolves through Actions instead.
var StateAnimations = map[StateID][]string{
	Idle:    {AnimIdle},
	Walking: {AnimWalk, AnimIdle},
	Jumping: {AnimJump, AnimIdle},
	Falling: {AnimFall, AnimJump, AnimIdle},
	Hurt:    {AnimHurt, AnimIdle},
}

// ActionDef binds an action to its animation and playback rules.
type ActionDef struct {
	Animation     string
	Interruptible bool
	// DurationTicks overrides the duration derived from the animation.
	// Zero means "derive"; looping animations then hold until the next command.
	DurationTicks int
}

// Actions maps every ActionKind to its definition.
var Actions = [ActionCount]ActionDef{
	ActionAttack: {Animation: AnimAttack},
	ActionKick:   {Animation: AnimKick, DurationTicks: 20},
	ActionDuck:   {Animation: AnimDuck, Interruptible: true, DurationTicks: 30},
	ActionTalk:   {Animation: AnimTalk, Interruptible: true, DurationTicks: 90},
	ActionCheer:  {Animation: AnimCheer, Interruptible: true},
	ActionClimb:  {Animation: AnimClimb, Interruptible: true},
	ActionSwim:   {Animation: AnimSwim, Interruptible: true},
}

// HurtTicks is how long the non-interruptible hurt state lasts.
var HurtTicks = 24

// ActionDuration returns the declared duration of an action in ticks.
func ActionDuration(kind ActionKind, tps int) int {
	if kind <= ActionNone || kind >= ActionCount {
		return 0
	}
	def := Actions[kind]
	if def.DurationTicks > 0 {
		return def.DurationTicks
	}
	return Animations[def.Animation].Ticks(tps)
}
