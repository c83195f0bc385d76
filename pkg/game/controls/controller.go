// Package controls implements the shared parallax/rotation controller. One frame hook
// and one keyboard listener serve every level; each level hands over a fresh State and
// the controller swaps to it wholesale.
package controls

import (
	"promptscape/pkg/engine/input"
	"promptscape/pkg/engine/surface"
)

// State is the per-level transform state.
type State struct {
	OffsetX, OffsetY float64
	Angle            float64

	DeadZone  float64
	MoveSpeed float64
	RotSpeed  float64

	// Frozen blocks further movement; the current values keep being applied.
	Frozen bool

	// BeforeAdvance runs right before Advance on a gamepad advance press.
	BeforeAdvance func()
	// Advance moves on to the next level.
	Advance func()
}

// Reset zeroes offset and angle.
func (s *State) Reset() {
	s.OffsetX, s.OffsetY, s.Angle = 0, 0, 0
}

// VarTarget receives the transform as custom properties.
type VarTarget interface {
	SetVar(name string, v float64)
}

// binding pairs a state with the element it drives. The controller only ever holds
// one binding pointer, so a callback sees either the old pair or the new one.
type binding struct {
	state  *State
	target VarTarget
}

// Settings are the keyboard steps.
type Settings struct {
	KeyStep    float64 // offset per arrow press
	KeyRotStep float64 // degrees per bracket press
}

// Controller owns the "current controls" reference.
type Controller struct {
	settings Settings
	pad      func() input.PadSnapshot
	current  *binding
	advance  input.Edge
}

// New creates a controller reading the gamepad through pad.
func New(settings Settings, pad func() input.PadSnapshot) *Controller {
	if pad == nil {
		pad = input.Disconnected
	}
	return &Controller{settings: settings, pad: pad}
}

// Activate makes state current and applies it to target immediately.
func (c *Controller) Activate(state *State, target VarTarget) {
	c.current = &binding{state: state, target: target}
	c.apply(c.current)
}

// Release drops the current binding if it still belongs to state.
func (c *Controller) Release(state *State) {
	if c.current != nil && c.current.state == state {
		c.current = nil
	}
}

// Current returns the current state, or nil.
func (c *Controller) Current() *State {
	if c.current == nil {
		return nil
	}
	return c.current.state
}

// Step is the per-frame update: gamepad first, then the transform is re-applied.
func (c *Controller) Step() {
	pad := c.pad()

	// Edge tracking continues with no level bound so a press held across a switch
	// does not fire on the next level.
	rising := c.advance.Rising(pad.IsPressed(input.ButtonA))

	b := c.current
	if b == nil {
		return
	}
	s := b.state

	if pad.Connected && !s.Frozen {
		s.OffsetX += input.ApplyDeadZone(pad.Axis(input.AxisLeftX), s.DeadZone) * s.MoveSpeed
		s.OffsetY += input.ApplyDeadZone(pad.Axis(input.AxisLeftY), s.DeadZone) * s.MoveSpeed
		s.Angle += input.ApplyDeadZone(pad.Axis(input.AxisRightX), s.DeadZone) * s.RotSpeed
	}

	if rising {
		if s.BeforeAdvance != nil {
			s.BeforeAdvance()
		}
		if s.Advance != nil {
			s.Advance()
		}
		// Advance normally swaps the binding; the old one is not re-applied.
		if c.current != b {
			return
		}
	}

	c.apply(b)
}

// HandleKey is the keyboard listener. It reads the current binding at call time.
func (c *Controller) HandleKey(ev input.Event) {
	b := c.current
	if b == nil {
		return
	}
	s := b.state

	step := c.settings.KeyStep
	if ev.Shift {
		step *= 2
	}

	switch ev.Intent.Action {
	case input.ActionMoveLeft:
		c.move(s, -step, 0)
	case input.ActionMoveRight:
		c.move(s, step, 0)
	case input.ActionMoveUp:
		c.move(s, 0, -step)
	case input.ActionMoveDown:
		c.move(s, 0, step)
	case input.ActionRotateLeft:
		if !s.Frozen {
			s.Angle -= c.settings.KeyRotStep
		}
	case input.ActionRotateRight:
		if !s.Frozen {
			s.Angle += c.settings.KeyRotStep
		}
	case input.ActionResetView:
		s.Reset()
	default:
		return
	}
	c.apply(b)
}

func (c *Controller) move(s *State, dx, dy float64) {
	if s.Frozen {
		return
	}
	s.OffsetX += dx
	s.OffsetY += dy
}

func (c *Controller) apply(b *binding) {
	if b.target == nil {
		return
	}
	b.target.SetVar(surface.VarX, b.state.OffsetX)
	b.target.SetVar(surface.VarY, b.state.OffsetY)
	b.target.SetVar(surface.VarAngle, b.state.Angle)
}
