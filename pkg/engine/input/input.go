// Package input maps keyboard, terminal and gamepad input onto viewer actions and
// delivers them to listeners.
package input

import (
	"bufio"
	"io"
)

// TerminalReader decodes raw-mode terminal bytes into key codes.
type TerminalReader struct {
	r *bufio.Reader
}

// NewTerminalReader wraps a raw-mode stdin (or any byte stream).
func NewTerminalReader(r io.Reader) *TerminalReader {
	return &TerminalReader{r: bufio.NewReader(r)}
}

// ReadKey blocks until one key is decoded and returns its code ("arrow_up",
// "bracket_left", "enter", "q", ...). Ctrl+C is reported as "ctrl_c".
// Unknown escape sequences are discarded.
func (t *TerminalReader) ReadKey() (RawInput, error) {
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			return RawInput{}, err
		}

		if b == 0x1b {
			code, shift, err := t.readEscape()
			if err != nil {
				return RawInput{}, err
			}
			if code == "" {
				continue
			}
			return RawInput{Device: DeviceTerminal, Code: code, Shift: shift}, nil
		}

		if code, shift := byteCode(b); code != "" {
			return RawInput{Device: DeviceTerminal, Code: code, Shift: shift}, nil
		}
	}
}

// readEscape handles the bytes after ESC. A lone ESC (nothing buffered behind it)
// is the Escape key.
func (t *TerminalReader) readEscape() (code string, shift bool, err error) {
	if t.r.Buffered() == 0 {
		return "escape", false, nil
	}
	b2, err := t.r.ReadByte()
	if err != nil {
		return "", false, err
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "", false, nil
	}
	b3, err := t.r.ReadByte()
	if err != nil {
		return "", false, err
	}

	// Modified arrows arrive as ESC [ 1 ; 2 A (2 = Shift)
	if b3 == '1' {
		rest := make([]byte, 3)
		if _, err := io.ReadFull(t.r, rest); err != nil {
			return "", false, err
		}
		shift = rest[0] == ';' && rest[1] == '2'
		b3 = rest[2]
	}

	switch b3 {
	case 'A':
		code = "arrow_up"
	case 'B':
		code = "arrow_down"
	case 'C':
		code = "arrow_right"
	case 'D':
		code = "arrow_left"
	}
	return code, shift, nil
}

func byteCode(b byte) (code string, shift bool) {
	switch {
	case b == 3:
		return "ctrl_c", false
	case b == '\r' || b == '\n':
		return "enter", false
	case b == 127 || b == 8:
		return "backspace", false
	case b == ' ':
		return "space", false
	case b == '[':
		return "bracket_left", false
	case b == ']':
		return "bracket_right", false
	case b == ',':
		return "comma", false
	case b == '.':
		return "period", false
	case b >= 'A' && b <= 'Z':
		return string(b - 'A' + 'a'), true
	case b >= 33 && b < 127:
		return string(b), false
	}
	return "", false
}
