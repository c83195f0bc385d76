package ebiten

import (
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	engineinput "promptscape/pkg/engine/input"
	"promptscape/pkg/game/app"
)

// keyRepeatInfo tracks the repeat state for a key or button
type keyRepeatInfo struct {
	firstPressed int64 // Timestamp when first pressed (milliseconds)
	lastRepeat   int64 // Timestamp when last repeat event was sent (milliseconds)
}

// fontStyle selects one of the loaded font sources.
type fontStyle int

const (
	styleSans fontStyle = iota
	styleMono
	styleBold
)

// fontKey identifies a cached face.
type fontKey struct {
	style fontStyle
	size  float64
}

// EbitenRenderer is the Ebiten-based graphical front end
type EbitenRenderer struct {
	// Window dimensions
	windowWidth  int
	windowHeight int
	title        string
	tps          int

	// Asset roots
	assets fs.FS

	// Font sources for text rendering
	monoFontSource *text.GoTextFaceSource // Monospace font for scrambled glyphs
	sansFontSource *text.GoTextFaceSource // Sans-serif font for UI text
	boldFontSource *text.GoTextFaceSource // Sans-serif bold for buttons

	// Cached font faces keyed by size
	faces map[fontKey]*text.GoTextFace

	// Loaded images; nil entries mark files that failed to load
	images      map[string]*ebiten.Image
	imagesMutex sync.Mutex

	// Audio cue players keyed by source path; nil marks a failed load
	audioContext *audio.Context
	players      map[string]*audio.Player
	playersMutex sync.Mutex

	// Application driven from Update
	app *app.App
	err error

	// Flag to track if we've logged window opening
	windowOpenedLogged bool

	// Gamepads seen on the previous frame, for connect/disconnect logging
	gamepads map[ebiten.GamepadID]bool

	// Key repeat state tracking
	// Maps key codes to their repeat state
	keyRepeatState      map[string]keyRepeatInfo
	keyRepeatStateMutex sync.Mutex

	// Keys collected for the next app step
	pending []engineinput.RawInput
}
