package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DeviceTerminal
)

// Action represents a high‑level intent of the viewer.
type Action int

const (
	ActionNone Action = iota

	// Parallax offset
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown

	// Rotation
	ActionRotateLeft
	ActionRotateRight
	ActionResetView

	// Screen flow
	ActionStart
	ActionNext
	ActionBack
	ActionQuit

	// Effects
	ActionFade
	ActionSelectGroup1
	ActionSelectGroup2
	ActionSelectGroup3
	ActionCyclePrev
	ActionCycleNext
)

// Intent is the 4th‑layer, high‑level description of what the viewer wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "arrow_up", "bracket_left", "gamepad_rb").
type RawInput struct {
	Device    Device
	Code      string
	Shift     bool
	Timestamp time.Time
}

// Event is what listeners receive: the mapped intent plus the raw detail it came from.
type Event struct {
	Intent Intent
	Device Device
	Code   string
	Shift  bool
}

// NewEvent maps a raw input through the current bindings.
func NewEvent(raw RawInput) Event {
	return Event{
		Intent: MapToIntent(raw.Code),
		Device: raw.Device,
		Code:   raw.Code,
		Shift:  raw.Shift,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"arrow_left":  ActionMoveLeft,
	"arrow_right": ActionMoveRight,
	"arrow_up":    ActionMoveUp,
	"arrow_down":  ActionMoveDown,

	"bracket_left":  ActionRotateLeft,
	"bracket_right": ActionRotateRight,
	"r":             ActionResetView,

	"space": ActionStart,
	"s":     ActionStart,

	"enter": ActionNext,
	"n":     ActionNext,

	"b":         ActionBack,
	"backspace": ActionBack,
	"escape":    ActionBack,

	"q": ActionQuit,

	"f": ActionFade,

	"1": ActionSelectGroup1,
	"2": ActionSelectGroup2,
	"3": ActionSelectGroup3,

	"comma":  ActionCyclePrev,
	"period": ActionCycleNext,

	// Controller/gamepad specific bindings
	"gamepad_a":     ActionNext,
	"gamepad_b":     ActionBack,
	"gamepad_x":     ActionFade,
	"gamepad_start": ActionStart,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a code and
// returns a high‑level Intent.
func MapToIntent(code string) Intent {
	if act, ok := bindings[code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionMoveUp:
		return "Move Up"
	case ActionMoveDown:
		return "Move Down"
	case ActionRotateLeft:
		return "Rotate Left"
	case ActionRotateRight:
		return "Rotate Right"
	case ActionResetView:
		return "Reset View"
	case ActionStart:
		return "Start"
	case ActionNext:
		return "Next"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionFade:
		return "Fade"
	case ActionSelectGroup1:
		return "Image Group 1"
	case ActionSelectGroup2:
		return "Image Group 2"
	case ActionSelectGroup3:
		return "Image Group 3"
	case ActionCyclePrev:
		return "Previous Image Group"
	case ActionCycleNext:
		return "Next Image Group"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
