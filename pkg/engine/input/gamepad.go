package input

import (
	"math"

	"github.com/zyedidia/generic/mapset"
)

// Button is a gamepad button in standard layout terms.
type Button int

const (
	ButtonA Button = iota // bottom face button
	ButtonB
	ButtonX
	ButtonY
	ButtonLB // left bumper
	ButtonRB // right bumper
	ButtonLT // left trigger
	ButtonRT // right trigger
	ButtonStart
)

// Axis indexes the analog stick axes of a PadSnapshot.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	axisCount
)

// PadSnapshot is the state of the first connected gamepad for one frame.
type PadSnapshot struct {
	Connected bool
	Axes      [axisCount]float64
	Pressed   mapset.Set[Button]
}

// NewPadSnapshot creates a connected snapshot with nothing pressed.
func NewPadSnapshot() PadSnapshot {
	return PadSnapshot{Connected: true, Pressed: mapset.New[Button]()}
}

// Disconnected is the snapshot used when no gamepad is present.
func Disconnected() PadSnapshot {
	return PadSnapshot{Pressed: mapset.New[Button]()}
}

// Axis returns the value of an axis, 0 when disconnected.
func (p PadSnapshot) Axis(a Axis) float64 {
	if !p.Connected || a < 0 || a >= axisCount {
		return 0
	}
	return p.Axes[a]
}

// IsPressed reports whether b is held this frame.
func (p PadSnapshot) IsPressed(b Button) bool {
	return p.Connected && p.Pressed.Has(b)
}

// Press marks b as held (used by backends and tests building snapshots).
func (p PadSnapshot) Press(b Button) PadSnapshot {
	p.Pressed.Put(b)
	return p
}

// ApplyDeadZone returns v when |v| exceeds deadZone, otherwise 0.
func ApplyDeadZone(v, deadZone float64) float64 {
	if math.Abs(v) > deadZone {
		return v
	}
	return 0
}

// Edge detects released→pressed and pressed→released transitions across frames.
type Edge struct {
	prev bool
}

// Update records this frame's state and reports a rising or falling edge.
func (e *Edge) Update(pressed bool) (rising, falling bool) {
	rising = pressed && !e.prev
	falling = !pressed && e.prev
	e.prev = pressed
	return rising, falling
}

// Rising records this frame's state and reports whether it just went down.
func (e *Edge) Rising(pressed bool) bool {
	rising, _ := e.Update(pressed)
	return rising
}
