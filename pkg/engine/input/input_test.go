package input

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestTerminalReader_ReadKey(t *testing.T) {
	r := NewTerminalReader(strings.NewReader("\x1b[A\x1b[1;2Dx[]R\r\x1bOB"))
	want := []struct {
		code  string
		shift bool
	}{
		{"arrow_up", false},
		{"arrow_left", true},
		{"x", false},
		{"bracket_left", false},
		{"bracket_right", false},
		{"r", true},
		{"enter", false},
		{"arrow_down", false},
	}
	for i, w := range want {
		got, err := r.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey() #%d error = %v", i, err)
		}
		if got.Code != w.code || got.Shift != w.shift {
			t.Errorf("ReadKey() #%d = %q shift=%v, want %q shift=%v", i, got.Code, got.Shift, w.code, w.shift)
		}
		if got.Device != DeviceTerminal {
			t.Errorf("ReadKey() #%d device = %v, want DeviceTerminal", i, got.Device)
		}
	}
	if _, err := r.ReadKey(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadKey() at end error = %v, want io.EOF", err)
	}
}

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"arrow_left", ActionMoveLeft},
		{"bracket_right", ActionRotateRight},
		{"r", ActionResetView},
		{"1", ActionSelectGroup1},
		{"gamepad_a", ActionNext},
		{"unbound", ActionNone},
	}
	for _, tt := range tests {
		if got := MapToIntent(tt.code).Action; got != tt.want {
			t.Errorf("MapToIntent(%q) = %s, want %s", tt.code, ActionName(got), ActionName(tt.want))
		}
	}
}

func TestDispatcher_CancelDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var cancelSecond func()
	firstCalls, secondCalls := 0, 0
	d.Subscribe(func(Event) {
		firstCalls++
		cancelSecond()
	})
	cancelSecond = d.Subscribe(func(Event) { secondCalls++ })

	d.Dispatch(NewEvent(RawInput{Code: "n"}))
	d.Dispatch(NewEvent(RawInput{Code: "n"}))

	if firstCalls != 2 {
		t.Errorf("firstCalls = %d, want 2", firstCalls)
	}
	if secondCalls != 0 {
		t.Errorf("secondCalls = %d, want 0 (cancelled before it ran)", secondCalls)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestDispatcher_CancelIsIdempotent(t *testing.T) {
	d := NewDispatcher()
	cancel := d.Subscribe(func(Event) {})
	d.Subscribe(func(Event) {})
	cancel()
	cancel()
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestEdge_FiresOncePerPress(t *testing.T) {
	var e Edge
	presses := []bool{false, true, true, true, true, true, false, true}
	rises := 0
	for _, p := range presses {
		if e.Rising(p) {
			rises++
		}
	}
	if rises != 2 {
		t.Errorf("rising edges = %d, want 2", rises)
	}
}

func TestApplyDeadZone(t *testing.T) {
	tests := []struct {
		v, dz, want float64
	}{
		{0.1, 0.15, 0},
		{-0.15, 0.15, 0},
		{0.16, 0.15, 0.16},
		{-0.9, 0.15, -0.9},
	}
	for _, tt := range tests {
		if got := ApplyDeadZone(tt.v, tt.dz); got != tt.want {
			t.Errorf("ApplyDeadZone(%v, %v) = %v, want %v", tt.v, tt.dz, got, tt.want)
		}
	}
}

func TestPadSnapshot_DisconnectedReadsZero(t *testing.T) {
	p := Disconnected()
	p.Axes[AxisLeftX] = 1
	p.Press(ButtonA)
	if p.Axis(AxisLeftX) != 0 || p.IsPressed(ButtonA) {
		t.Error("disconnected snapshot reported input")
	}
}
