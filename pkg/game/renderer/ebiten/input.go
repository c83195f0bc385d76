package ebiten

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "promptscape/pkg/engine/input"
	"promptscape/pkg/game/app"
)

// keyBinding maps a physical key to the raw code the input layer understands.
type keyBinding struct {
	key    ebiten.Key
	code   string
	repeat bool
}

var keyBindings = []keyBinding{
	{ebiten.KeyArrowLeft, "arrow_left", true},
	{ebiten.KeyArrowRight, "arrow_right", true},
	{ebiten.KeyArrowUp, "arrow_up", true},
	{ebiten.KeyArrowDown, "arrow_down", true},
	{ebiten.KeyBracketLeft, "bracket_left", true},
	{ebiten.KeyBracketRight, "bracket_right", true},
	{ebiten.KeyR, "r", false},
	{ebiten.KeySpace, "space", false},
	{ebiten.KeyS, "s", false},
	{ebiten.KeyEnter, "enter", false},
	{ebiten.KeyNumpadEnter, "enter", false},
	{ebiten.KeyN, "n", false},
	{ebiten.KeyB, "b", false},
	{ebiten.KeyBackspace, "backspace", false},
	{ebiten.KeyEscape, "escape", false},
	{ebiten.KeyQ, "q", false},
	{ebiten.KeyF, "f", false},
	{ebiten.Key1, "1", false},
	{ebiten.Key2, "2", false},
	{ebiten.Key3, "3", false},
	{ebiten.KeyComma, "comma", false},
	{ebiten.KeyPeriod, "period", false},
}

// Update collects input and steps the app (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	if e.app == nil {
		return nil
	}

	e.checkInput()
	pad := e.checkGamepadInput()

	frame := app.Frame{
		Keys:    e.pending,
		Pad:     pad,
		Pointer: e.checkPointer(),
	}
	e.pending = nil

	dt := time.Second / time.Duration(ebiten.TPS())
	if err := e.app.Step(dt, frame); err != nil {
		e.err = err
		return err
	}
	if e.app.Quit() {
		return ebiten.Termination
	}
	return nil
}

// shouldRepeatKey checks if a key/button should trigger (initial press or repeat)
// Returns true if the key should trigger, false otherwise
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string) bool {
	now := time.Now().UnixMilli()

	e.keyRepeatStateMutex.Lock()
	defer e.keyRepeatStateMutex.Unlock()

	pressed := isPressed()
	state, exists := e.keyRepeatState[code]

	if !pressed {
		// Key released - clean up state
		if exists {
			delete(e.keyRepeatState, code)
		}
		return false
	}

	if !exists {
		// First press - record it and trigger immediately
		e.keyRepeatState[code] = keyRepeatInfo{
			firstPressed: now,
			lastRepeat:   now,
		}
		return true
	}

	// Key is held - check if we should repeat
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}

// checkInput queues keyboard events for this frame.
func (e *EbitenRenderer) checkInput() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, b := range keyBindings {
		if b.repeat {
			if e.shouldRepeatKey(func() bool { return ebiten.IsKeyPressed(b.key) }, "key_"+b.code) {
				e.queueKey(b.code, shift, engineinput.DeviceKeyboard)
			}
			continue
		}
		if inpututil.IsKeyJustPressed(b.key) {
			e.queueKey(b.code, shift, engineinput.DeviceKeyboard)
		}
	}
}

// checkPointer reports the left mouse button in relative coordinates.
func (e *EbitenRenderer) checkPointer() *app.Pointer {
	if e.windowWidth <= 0 || e.windowHeight <= 0 {
		return nil
	}
	x, y := ebiten.CursorPosition()
	return &app.Pointer{
		X:           float64(x) / float64(e.windowWidth),
		Y:           float64(y) / float64(e.windowHeight),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// checkGamepadInput snapshots the first connected gamepad and queues its discrete
// buttons as key events. The advance and shoulder buttons are read from the snapshot
// by the level instead.
func (e *EbitenRenderer) checkGamepadInput() engineinput.PadSnapshot {
	var ids []ebiten.GamepadID
	ids = ebiten.AppendGamepadIDs(ids[:0])

	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		log.Printf("Gamepad connected: %s (id %d, standard layout: %v)", ebiten.GamepadName(id), id, ebiten.IsStandardGamepadLayoutAvailable(id))
	}
	for id := range e.gamepads {
		if inpututil.IsGamepadJustDisconnected(id) {
			log.Printf("Gamepad disconnected: id %d", id)
			delete(e.gamepads, id)
		}
	}
	for _, id := range ids {
		e.gamepads[id] = true
	}

	if len(ids) == 0 {
		return engineinput.Disconnected()
	}
	id := ids[0]
	snap := engineinput.NewPadSnapshot()

	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		snap.Axes[engineinput.AxisLeftX] = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		snap.Axes[engineinput.AxisLeftY] = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		snap.Axes[engineinput.AxisRightX] = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		snap.Axes[engineinput.AxisRightY] = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)

		for button, std := range standardButtons {
			if ebiten.IsStandardGamepadButtonPressed(id, std) {
				snap.Press(button)
			}
		}
		for _, d := range discreteButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, d.std) {
				e.queueKey(d.code, false, engineinput.DeviceGamepad)
			}
		}
		return snap
	}

	// Raw fallback. Indices are tuned for common XInput-style controllers on Linux;
	// mappings may vary between devices/platforms.
	snap.Axes[engineinput.AxisLeftX] = ebiten.GamepadAxisValue(id, 0)
	snap.Axes[engineinput.AxisLeftY] = ebiten.GamepadAxisValue(id, 1)
	snap.Axes[engineinput.AxisRightX] = ebiten.GamepadAxisValue(id, 3)
	snap.Axes[engineinput.AxisRightY] = ebiten.GamepadAxisValue(id, 4)
	for button, raw := range rawButtons {
		if ebiten.IsGamepadButtonPressed(id, raw) {
			snap.Press(button)
		}
	}
	for _, d := range discreteButtons {
		if inpututil.IsGamepadButtonJustPressed(id, d.raw) {
			e.queueKey(d.code, false, engineinput.DeviceGamepad)
		}
	}
	return snap
}

var standardButtons = map[engineinput.Button]ebiten.StandardGamepadButton{
	engineinput.ButtonA:     ebiten.StandardGamepadButtonRightBottom,
	engineinput.ButtonB:     ebiten.StandardGamepadButtonRightRight,
	engineinput.ButtonX:     ebiten.StandardGamepadButtonRightLeft,
	engineinput.ButtonY:     ebiten.StandardGamepadButtonRightTop,
	engineinput.ButtonLB:    ebiten.StandardGamepadButtonFrontTopLeft,
	engineinput.ButtonRB:    ebiten.StandardGamepadButtonFrontTopRight,
	engineinput.ButtonLT:    ebiten.StandardGamepadButtonFrontBottomLeft,
	engineinput.ButtonRT:    ebiten.StandardGamepadButtonFrontBottomRight,
	engineinput.ButtonStart: ebiten.StandardGamepadButtonCenterRight,
}

// rawButtons is the typical raw mapping:
//
//  - A / Cross: 0
//  - B / Circle: 1
//  - X / Square: 2
//  - Y / Triangle: 3
//  - LB: 4, RB: 5
//  - Start: 7
var rawButtons = map[engineinput.Button]ebiten.GamepadButton{
	engineinput.ButtonA:     ebiten.GamepadButton0,
	engineinput.ButtonB:     ebiten.GamepadButton1,
	engineinput.ButtonX:     ebiten.GamepadButton2,
	engineinput.ButtonY:     ebiten.GamepadButton3,
	engineinput.ButtonLB:    ebiten.GamepadButton4,
	engineinput.ButtonRB:    ebiten.GamepadButton5,
	engineinput.ButtonStart: ebiten.GamepadButton7,
}

// discreteButtons are delivered as key events in addition to the snapshot.
var discreteButtons = []struct {
	std  ebiten.StandardGamepadButton
	raw  ebiten.GamepadButton
	code string
}{
	{ebiten.StandardGamepadButtonRightRight, ebiten.GamepadButton1, "gamepad_b"},
	{ebiten.StandardGamepadButtonRightLeft, ebiten.GamepadButton2, "gamepad_x"},
	{ebiten.StandardGamepadButtonCenterRight, ebiten.GamepadButton7, "gamepad_start"},
}
