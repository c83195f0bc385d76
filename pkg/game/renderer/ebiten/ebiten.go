package ebiten

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	engineinput "promptscape/pkg/engine/input"
	"promptscape/pkg/game/app"
	"promptscape/pkg/game/config"
)

// New creates an Ebiten front end. Images and sounds are read from assets.
func New(cfg *config.Config, assets fs.FS) *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:    cfg.Window.Width,
		windowHeight:   cfg.Window.Height,
		title:          cfg.Window.Title,
		tps:            cfg.Window.TPS,
		assets:         assets,
		faces:          make(map[fontKey]*text.GoTextFace),
		images:         make(map[string]*ebiten.Image),
		players:        make(map[string]*audio.Player),
		gamepads:       make(map[ebiten.GamepadID]bool),
		keyRepeatState: make(map[string]keyRepeatInfo),
	}
}

// Init loads the fonts and opens the audio context.
func (e *EbitenRenderer) Init() error {
	var err error
	if e.sansFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load sans font: %w", err)
	}
	if e.boldFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		return fmt.Errorf("failed to load bold font: %w", err)
	}
	if e.monoFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("failed to load mono font: %w", err)
	}

	if audio.CurrentContext() == nil {
		e.audioContext = audio.NewContext(sampleRate)
	} else {
		e.audioContext = audio.CurrentContext()
	}
	return nil
}

// Run opens the window and drives a from Update until it quits.
func (e *EbitenRenderer) Run(a *app.App) error {
	e.app = a
	if err := a.Start(); err != nil {
		return err
	}

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(e.tps)

	if err := ebiten.RunGame(e); err != nil {
		return err
	}
	return e.err
}

// Close stops every audio player.
func (e *EbitenRenderer) Close() {
	e.playersMutex.Lock()
	defer e.playersMutex.Unlock()
	for src, p := range e.players {
		if p != nil {
			p.Close()
		}
		delete(e.players, src)
	}
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
	}
	return e.windowWidth, e.windowHeight
}

// queueKey adds a key event for the next step.
func (e *EbitenRenderer) queueKey(code string, shift bool, device engineinput.Device) {
	e.pending = append(e.pending, engineinput.RawInput{Device: device, Code: code, Shift: shift})
}
