package systems

import (
	"github.com/automoto/spriteforge/components"
	cfg "github.com/automoto/spriteforge/config"
	"github.com/automoto/spriteforge/engine"
	"github.com/automoto/spriteforge/tags"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

var (
	// ErrUnknownAction is returned by Act when the character has no animation for the action.
	ErrUnknownAction = eris.New("unknown action")
	// ErrNotCharacter is returned for entries that are gone or lack character components.
	ErrNotCharacter = eris.New("entry is not a live character")
)

// Controller owns the animation state machine of every character. Commands
// are buffered on the entity and resolved by Tick, once per simulation tick.
type Controller struct {
	animator engine.Animator
	tps      int
	logger   zerolog.Logger
}

func NewController(animator engine.Animator, tps int, logger zerolog.Logger) *Controller {
	return &Controller{
		animator: animator,
		tps:      tps,
		logger:   logger.With().Str("component", "controller").Logger(),
	}
}

// Move sets the desired horizontal direction for the next tick.
func (c *Controller) Move(e *donburi.Entry, dir cfg.Direction) error {
	if !isCharacter(e) {
		return ErrNotCharacter
	}
	cmd := components.Command.Get(e)
	cmd.Move = dir
	cmd.HasMove = true
	return nil
}

// Jump requests a jump for the next tick. It only takes effect on the ground.
func (c *Controller) Jump(e *donburi.Entry) error {
	if !isCharacter(e) {
		return ErrNotCharacter
	}
	components.Command.Get(e).Jump = true
	return nil
}

// Act requests an action for the next tick. Actions the character has no
// animation for are logged and ignored.
func (c *Controller) Act(e *donburi.Entry, kind cfg.ActionKind) error {
	if !isCharacter(e) {
		return ErrNotCharacter
	}
	if !components.Animation.Get(e).Supports(kind) {
		char := components.Character.Get(e)
		c.logger.Warn().
			Str("entity", char.ID.String()).
			Str("archetype", string(char.Archetype)).
			Stringer("action", kind).
			Msg("ignoring action without animation")
		return eris.Wrapf(ErrUnknownAction, "%s cannot %s", char.Archetype, kind)
	}
	components.Command.Get(e).Act = kind
	return nil
}

// Hurt applies damage and puts the character in the hurt state on the next tick.
func (c *Controller) Hurt(e *donburi.Entry, damage int) error {
	if !isCharacter(e) {
		return ErrNotCharacter
	}
	cmd := components.Command.Get(e)
	cmd.Hurt = true
	cmd.Damage += damage
	return nil
}

// TickAll ticks every character. A failure on one character is logged and
// does not stop the others.
func (c *Controller) TickAll(w donburi.World) {
	tags.Character.Each(w, func(e *donburi.Entry) {
		if err := c.safeTick(e); err != nil {
			c.logger.Error().Err(err).Msg("character tick failed")
		}
	})
}

func (c *Controller) safeTick(e *donburi.Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("tick panicked: %v", r)
		}
	}()
	return c.Tick(e)
}

// Tick resolves the buffered commands of one character against its physics
// state, then syncs the selected animation to the engine.
func (c *Controller) Tick(e *donburi.Entry) error {
	if !isCharacter(e) {
		return ErrNotCharacter
	}
	char := components.Character.Get(e)
	state := components.State.Get(e)
	cmd := components.Command.Get(e)
	physics := components.Physics.Get(e)
	anim := components.Animation.Get(e)

	state.StateTimer++
	wasLeft := anim.FacingLeft
	restart := c.resolve(e, char, state, cmd, physics, anim)
	cmd.Reset()

	if state.CurrentState != state.PreviousState || restart {
		c.logger.Debug().
			Str("entity", char.ID.String()).
			Stringer("from", state.PreviousState).
			Stringer("to", state.CurrentState).
			Stringer("action", state.Action).
			Msg("state change")
	}
	return c.sync(char, state, anim, wasLeft, restart)
}

// resolve applies the first matching transition rule and reports whether the
// current animation must restart even if its name is unchanged.
func (c *Controller) resolve(e *donburi.Entry, char *components.CharacterData, state *components.StateData,
	cmd *components.CommandData, physics *components.PhysicsData, anim *components.AnimationData) bool {
	state.PreviousState = state.CurrentState

	// Damage lands even while locked; only the state change waits.
	if cmd.Hurt {
		health := components.Health.Get(e)
		health.Current = max(health.Current-cmd.Damage, 0)
	}

	if state.Locked() {
		return false
	}

	if cmd.Hurt {
		physics.SpeedX = 0
		enterState(state, cfg.Hurt, cfg.ActionNone, cfg.HurtTicks, false)
		return true
	}

	if cmd.Act != cfg.ActionNone {
		def := cfg.Actions[cmd.Act]
		if !def.Interruptible {
			physics.SpeedX = 0
		}
		enterState(state, cfg.Acting, cmd.Act, cfg.ActionDuration(cmd.Act, c.tps), def.Interruptible)
		return true
	}

	grounded := physics.Grounded()
	if cmd.HasMove {
		steer(char, physics, anim, cmd.Move)
	}

	if !grounded && state.CurrentState != cfg.Jumping {
		enterState(state, cfg.Falling, cfg.ActionNone, 0, true)
		return false
	}

	if cmd.Jump && grounded {
		physics.SpeedY = -char.Tunables.JumpImpulse
		enterState(state, cfg.Jumping, cfg.ActionNone, 0, true)
		return false
	}

	if cmd.HasMove && cmd.Move != cfg.DirectionStop && grounded {
		enterState(state, cfg.Walking, cfg.ActionNone, 0, true)
		return false
	}

	if physics.SpeedX == 0 && grounded && (!state.Holding() || cmd.Any()) {
		enterState(state, cfg.Idle, cfg.ActionNone, 0, true)
		return false
	}

	switch {
	case state.CurrentState == cfg.Jumping && physics.SpeedY > 0:
		enterState(state, cfg.Falling, cfg.ActionNone, 0, true)
	case grounded && physics.SpeedX != 0 && settled(state):
		enterState(state, cfg.Walking, cfg.ActionNone, 0, true)
	}
	return false
}

// settled reports whether a grounded, moving character should leave its
// state for walking: it landed, or its action or hurt ran out.
func settled(state *components.StateData) bool {
	switch state.CurrentState {
	case cfg.Jumping, cfg.Falling, cfg.Hurt:
		return true
	case cfg.Acting:
		return !state.Holding()
	}
	return false
}

func steer(char *components.CharacterData, physics *components.PhysicsData, anim *components.AnimationData, dir cfg.Direction) {
	physics.SpeedX = dir.Sign() * char.Tunables.Speed
	switch dir {
	case cfg.DirectionLeft:
		anim.FacingLeft = true
	case cfg.DirectionRight:
		anim.FacingLeft = false
	}
}

func enterState(state *components.StateData, next cfg.StateID, action cfg.ActionKind, duration int, interruptible bool) {
	state.CurrentState = next
	state.Action = action
	state.StateTimer = 0
	state.Duration = duration
	state.Interruptible = interruptible
}

// sync pushes the selected animation to the engine. Until the sprite exists
// only the selection is recorded; the factory plays it once the sprite spawns.
func (c *Controller) sync(char *components.CharacterData, state *components.StateData, anim *components.AnimationData, wasLeft, restart bool) error {
	name, ok := anim.Lookup(state.CurrentState, state.Action)
	if !ok {
		return eris.Errorf("%s has no animation for %s", char.Archetype, state.CurrentState)
	}

	changed := anim.SetAnimation(name)
	entered := state.CurrentState != state.PreviousState
	if !char.Ready {
		return nil
	}

	if changed || restart {
		if err := c.animator.PlayAnimation(char.Sprite, name); err != nil {
			return eris.Wrapf(err, "play %s", name)
		}
	}
	if anim.FacingLeft != wasLeft {
		c.animator.SetFlipX(char.Sprite, anim.FacingLeft)
	}
	if entered || restart {
		c.animator.SetTint(char.Sprite, state.CurrentState == cfg.Hurt)
		if sound, ok := cfg.Archetypes[char.Archetype].Sounds[state.CurrentState]; ok {
			c.animator.PlaySound(sound)
		}
	}
	return nil
}

func isCharacter(e *donburi.Entry) bool {
	return e != nil && e.Valid() && e.HasComponent(components.Character) && e.HasComponent(components.Command)
}
