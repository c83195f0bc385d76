package renderer

import (
	"promptscape/pkg/game/app"
)

// Frontend is a presentation backend. Implementations include the Ebiten window and
// the terminal front end; both draw the same surface.
type Frontend interface {
	// Init prepares the backend (fonts, audio, window or raw terminal).
	Init() error

	// Run feeds frames to the app until it quits or a step fails.
	Run(a *app.App) error

	// Close releases whatever Init acquired.
	Close()
}

// Current holds the active frontend instance
var Current Frontend

// SetFrontend sets the active frontend
func SetFrontend(f Frontend) {
	Current = f
}

// Run initialises the current frontend and runs the app on it.
func Run(a *app.App) error {
	if Current == nil {
		return nil
	}
	if err := Current.Init(); err != nil {
		return err
	}
	defer Current.Close()
	return Current.Run(a)
}
