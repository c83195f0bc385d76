package controls

import (
	"testing"

	"promptscape/pkg/engine/input"
	"promptscape/pkg/engine/surface"
)

type fakePad struct {
	snap input.PadSnapshot
}

func (f *fakePad) read() input.PadSnapshot { return f.snap }

func newState() *State {
	return &State{DeadZone: 0.15, MoveSpeed: 4, RotSpeed: 2}
}

func keyEvent(code string, shift bool) input.Event {
	return input.NewEvent(input.RawInput{Device: input.DeviceKeyboard, Code: code, Shift: shift})
}

func TestStep_DeadZoneSuppressesSmallDeflection(t *testing.T) {
	pad := &fakePad{snap: input.NewPadSnapshot()}
	pad.snap.Axes[input.AxisLeftX] = 0.1
	pad.snap.Axes[input.AxisLeftY] = -0.15
	pad.snap.Axes[input.AxisRightX] = 0.14

	c := New(Settings{KeyStep: 10, KeyRotStep: 5}, pad.read)
	s := newState()
	el := surface.NewElement("level", surface.KindContainer)
	c.Activate(s, el)

	for i := 0; i < 10; i++ {
		c.Step()
	}
	if s.OffsetX != 0 || s.OffsetY != 0 || s.Angle != 0 {
		t.Errorf("state moved inside the dead zone: %+v", *s)
	}
}

func TestStep_StickMovesOffsetAndAngle(t *testing.T) {
	pad := &fakePad{snap: input.NewPadSnapshot()}
	pad.snap.Axes[input.AxisLeftX] = 0.5
	pad.snap.Axes[input.AxisLeftY] = -1
	pad.snap.Axes[input.AxisRightX] = 1

	c := New(Settings{}, pad.read)
	s := newState()
	el := surface.NewElement("level", surface.KindContainer)
	c.Activate(s, el)

	c.Step()
	c.Step()

	if s.OffsetX != 4 || s.OffsetY != -8 || s.Angle != 4 {
		t.Errorf("state = (%v, %v, %v), want (4, -8, 4)", s.OffsetX, s.OffsetY, s.Angle)
	}
	if el.Var(surface.VarX) != 4 || el.Var(surface.VarY) != -8 || el.Var(surface.VarAngle) != 4 {
		t.Error("vars were not applied to the target")
	}
}

func TestStep_AdvanceFiresOncePerPress(t *testing.T) {
	pad := &fakePad{snap: input.NewPadSnapshot()}
	c := New(Settings{}, pad.read)
	s := newState()

	var order []string
	s.BeforeAdvance = func() { order = append(order, "before") }
	s.Advance = func() { order = append(order, "advance") }
	c.Activate(s, surface.NewElement("level", surface.KindContainer))

	pad.snap.Press(input.ButtonA)
	for i := 0; i < 5; i++ {
		c.Step()
	}

	if len(order) != 2 || order[0] != "before" || order[1] != "advance" {
		t.Errorf("calls = %v, want [before advance]", order)
	}

	// Release then press again fires once more.
	pad.snap = input.NewPadSnapshot()
	c.Step()
	pad.snap.Press(input.ButtonA)
	c.Step()
	if len(order) != 4 {
		t.Errorf("calls after second press = %d, want 4", len(order))
	}
}

func TestStep_AdvanceReachesNewStateOnly(t *testing.T) {
	pad := &fakePad{snap: input.NewPadSnapshot()}
	c := New(Settings{}, pad.read)

	first, second := newState(), newState()
	firstAdv, secondAdv := 0, 0
	first.Advance = func() {
		firstAdv++
		c.Release(first)
		c.Activate(second, surface.NewElement("level", surface.KindContainer))
	}
	second.Advance = func() { secondAdv++ }
	c.Activate(first, surface.NewElement("level", surface.KindContainer))

	pad.snap.Press(input.ButtonA)
	c.Step()
	c.Step() // still held: no edge

	if firstAdv != 1 || secondAdv != 0 {
		t.Errorf("advances = (%d, %d), want (1, 0)", firstAdv, secondAdv)
	}
	if c.Current() != second {
		t.Error("Current() is not the second state")
	}
}

func TestHandleKey_ReadsCurrentBinding(t *testing.T) {
	c := New(Settings{KeyStep: 10, KeyRotStep: 5}, nil)
	old, cur := newState(), newState()
	oldEl := surface.NewElement("level", surface.KindContainer)
	curEl := surface.NewElement("level", surface.KindContainer)

	c.Activate(old, oldEl)
	c.Activate(cur, curEl)

	c.HandleKey(keyEvent("arrow_right", false))
	c.HandleKey(keyEvent("arrow_down", true))
	c.HandleKey(keyEvent("bracket_left", false))

	if old.OffsetX != 0 || old.OffsetY != 0 || old.Angle != 0 {
		t.Errorf("old state changed: %+v", *old)
	}
	if cur.OffsetX != 10 || cur.OffsetY != 20 || cur.Angle != -5 {
		t.Errorf("current state = (%v, %v, %v), want (10, 20, -5)", cur.OffsetX, cur.OffsetY, cur.Angle)
	}
	if curEl.Var(surface.VarY) != 20 {
		t.Errorf("current target --y = %v, want 20", curEl.Var(surface.VarY))
	}
	if oldEl.Var(surface.VarX) != 0 {
		t.Error("old target received an update")
	}
}

func TestHandleKey_ResetAndFrozen(t *testing.T) {
	c := New(Settings{KeyStep: 10, KeyRotStep: 5}, nil)
	s := newState()
	el := surface.NewElement("level", surface.KindContainer)
	c.Activate(s, el)

	c.HandleKey(keyEvent("arrow_left", false))
	c.HandleKey(keyEvent("bracket_right", false))
	c.HandleKey(keyEvent("r", false))
	if s.OffsetX != 0 || s.Angle != 0 {
		t.Errorf("after reset state = %+v, want zeroes", *s)
	}

	s.Frozen = true
	c.HandleKey(keyEvent("arrow_left", false))
	c.HandleKey(keyEvent("bracket_right", false))
	if s.OffsetX != 0 || s.Angle != 0 {
		t.Errorf("frozen state moved: %+v", *s)
	}
}

func TestRelease_OnlyClearsOwnState(t *testing.T) {
	c := New(Settings{}, nil)
	a, b := newState(), newState()
	c.Activate(a, nil)
	c.Activate(b, nil)
	c.Release(a)
	if c.Current() != b {
		t.Error("Release of a stale state cleared the current binding")
	}
	c.Release(b)
	if c.Current() != nil {
		t.Error("Release of the current state left it bound")
	}
	c.HandleKey(keyEvent("arrow_left", false))
	c.Step()
}
