// Package terminal wraps the host terminal used by the text front end.
package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsInteractive reports whether stdin is a terminal that can be put in raw mode.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// RawMode puts stdin into raw mode until Restore is called.
type RawMode struct {
	fd    int
	state *term.State
}

// EnterRawMode switches stdin to raw mode.
func EnterRawMode() (*RawMode, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	return &RawMode{fd: fd, state: state}, nil
}

// Restore returns the terminal to the mode it had before EnterRawMode.
func (r *RawMode) Restore() {
	if r == nil || r.state == nil {
		return
	}
	term.Restore(r.fd, r.state)
	r.state = nil
}

// Clear moves the cursor home and clears the screen.
func Clear() {
	fmt.Print("\x1b[H\x1b[2J")
}

// HideCursor hides or shows the cursor.
func HideCursor(hide bool) {
	if hide {
		fmt.Print("\x1b[?25l")
		return
	}
	fmt.Print("\x1b[?25h")
}
