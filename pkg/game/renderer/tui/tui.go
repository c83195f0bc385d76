// Package tui is the terminal front end. It draws the surface as a character grid and
// reads keys from a raw-mode stdin.
package tui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gookit/color"

	"promptscape/pkg/engine/input"
	"promptscape/pkg/engine/surface"
	"promptscape/pkg/engine/terminal"
	"promptscape/pkg/game/app"
	"promptscape/pkg/game/config"
	"promptscape/pkg/game/renderer"
	gamescreen "promptscape/pkg/game/screen"
)

// Pixel size of one terminal cell. Transform vars are in pixels, so the grid is
// placed as if it were a cellWidth*cols by cellHeight*rows screen.
const (
	cellWidth  = 8
	cellHeight = 16
)

// helpActions are listed in the footer, in this order.
var helpActions = []input.Action{
	input.ActionStart,
	input.ActionNext,
	input.ActionBack,
	input.ActionFade,
	input.ActionQuit,
}

// style is the look of one grid cell.
type style int

const (
	styleNone style = iota
	styleText
	styleScramble
	styleButton
	styleButtonDisabled
	styleImage
	styleSubtle
)

// TUIRenderer is the terminal-based front end
type TUIRenderer struct {
	tps    int
	styles map[style]color.Style

	raw  *terminal.RawMode
	out  io.Writer
	keys chan input.RawInput
	errs chan error
}

// New creates a terminal front end ticking at the configured rate.
func New(cfg *config.Config) *TUIRenderer {
	return &TUIRenderer{
		tps:  cfg.Window.TPS,
		out:  os.Stdout,
		keys: make(chan input.RawInput, 64),
		errs: make(chan error, 1),
	}
}

// Init sets up the colours and puts the terminal in raw mode.
func (t *TUIRenderer) Init() error {
	t.styles = map[style]color.Style{
		styleText:           {color.FgWhite},
		styleScramble:       {color.FgMagenta, color.OpBold},
		styleButton:         {color.FgCyan, color.OpBold},
		styleButtonDisabled: {color.FgGray},
		styleImage:          {color.FgBlue},
		styleSubtle:         {color.FgGray, color.OpBold},
	}

	if !terminal.IsInteractive() {
		return errors.New("stdin is not a terminal")
	}
	raw, err := terminal.EnterRawMode()
	if err != nil {
		return err
	}
	t.raw = raw
	terminal.HideCursor(true)
	return nil
}

// Close restores the terminal.
func (t *TUIRenderer) Close() {
	terminal.HideCursor(false)
	t.raw.Restore()
	fmt.Fprint(t.out, "\r\n")
}

// Restart rings the terminal bell in place of an audio cue.
func (t *TUIRenderer) Restart(src string) {
	if src == "" {
		return
	}
	fmt.Fprint(t.out, "\a")
}

// Run steps the app at a fixed rate, feeding it the keys read since the last tick.
func (t *TUIRenderer) Run(a *app.App) error {
	if err := a.Start(); err != nil {
		return err
	}
	go t.readKeys(input.NewTerminalReader(os.Stdin))

	tps := t.tps
	if tps <= 0 {
		tps = 30
	}
	dt := time.Second / time.Duration(tps)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	for range ticker.C {
		var frame app.Frame
	drain:
		for {
			select {
			case k := <-t.keys:
				if k.Code == "ctrl_c" {
					return nil
				}
				frame.Keys = append(frame.Keys, k)
			case err := <-t.errs:
				return err
			default:
				break drain
			}
		}

		if err := a.Step(dt, frame); err != nil {
			return err
		}
		if a.Quit() {
			return nil
		}
		t.draw(a.Surface())
	}
	return nil
}

func (t *TUIRenderer) readKeys(r *input.TerminalReader) {
	for {
		k, err := r.ReadKey()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("Terminal input stopped: %v", err)
			}
			t.errs <- err
			return
		}
		t.keys <- k
	}
}

func (t *TUIRenderer) draw(s *surface.Surface) {
	cols, rows := terminal.GetSize()
	c := compose(s, cols, rows-1)

	var b strings.Builder
	b.WriteString("\x1b[H")
	for y := range c.rows {
		t.writeRow(&b, c, y)
		b.WriteString("\x1b[K\r\n")
	}
	b.WriteString(t.styles[styleSubtle].Sprint(truncate(helpLine(), cols)))
	b.WriteString("\x1b[K")
	fmt.Fprint(t.out, b.String())
}

// writeRow emits one grid row, switching style only where it changes.
func (t *TUIRenderer) writeRow(b *strings.Builder, c *canvas, y int) {
	var run strings.Builder
	current := styleNone
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if st, ok := t.styles[current]; ok {
			b.WriteString(st.Sprint(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}
	for x := range c.cols {
		cl := c.at(x, y)
		if cl.style != current {
			flush()
			current = cl.style
		}
		run.WriteRune(cl.r)
	}
	flush()
}

func helpLine() string {
	byAction := input.GetBindingsByAction()
	parts := make([]string, 0, len(helpActions))
	for _, act := range helpActions {
		codes := byAction[act]
		if len(codes) == 0 {
			continue
		}
		parts = append(parts, codes[0]+" "+input.ActionName(act))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

type cell struct {
	r     rune
	style style
}

// canvas is a character grid the surface is composed onto.
type canvas struct {
	cols, rows int
	cells      []cell
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: max(cols, 1), rows: max(rows, 1)}
	c.cells = make([]cell, c.cols*c.rows)
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) at(x, y int) cell {
	return c.cells[y*c.cols+x]
}

func (c *canvas) set(x, y int, r rune, st style) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = cell{r: r, style: st}
}

func (c *canvas) write(x, y int, s string, st style) {
	for _, r := range s {
		c.set(x, y, r, st)
		x++
	}
}

// String returns the grid without styling, one line per row.
func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.rows {
		line := make([]rune, c.cols)
		for x := range c.cols {
			line[x] = c.at(x, y).r
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// box is a placement snapped to the grid.
type box struct {
	x, y, w, h int
}

func snap(p renderer.Placement) box {
	return box{
		x: int(p.X / cellWidth),
		y: int(p.Y / cellHeight),
		w: max(int(p.W/cellWidth), 1),
		h: max(int(p.H/cellHeight), 1),
	}
}

// compose draws the surface onto a cols x rows grid. Elements that have faded out
// below half opacity are left off; a terminal has no partial transparency.
func compose(s *surface.Surface, cols, rows int) *canvas {
	c := newCanvas(cols, rows)
	root := s.Root()
	w, h := float64(c.cols*cellWidth), float64(c.rows*cellHeight)

	for _, el := range s.Elements() {
		p := renderer.Place(el, root, w, h)
		if p.Alpha < 0.5 {
			continue
		}
		b := snap(p)
		switch el.Kind {
		case surface.KindImage:
			drawImageBox(c, b, el.Src)
		case surface.KindText:
			drawText(c, b, el, p)
		case surface.KindButton:
			drawButton(c, b, el)
		}
	}
	return c
}

func drawImageBox(c *canvas, b box, src string) {
	if src == "" {
		return
	}
	for x := b.x; x < b.x+b.w; x++ {
		c.set(x, b.y, '─', styleImage)
		c.set(x, b.y+b.h-1, '─', styleImage)
	}
	for y := b.y; y < b.y+b.h; y++ {
		c.set(b.x, y, '│', styleImage)
		c.set(b.x+b.w-1, y, '│', styleImage)
	}
	c.set(b.x, b.y, '┌', styleImage)
	c.set(b.x+b.w-1, b.y, '┐', styleImage)
	c.set(b.x, b.y+b.h-1, '└', styleImage)
	c.set(b.x+b.w-1, b.y+b.h-1, '┘', styleImage)
	if b.w > 4 {
		c.write(b.x+2, b.y, truncate(path.Base(src), b.w-4), styleImage)
	}
}

func drawText(c *canvas, b box, el *surface.Element, p renderer.Placement) {
	var width int
	for _, seg := range el.Segments() {
		width += len([]rune(seg.Text))
	}
	x := int(renderer.AlignX(p, el.Align, float64(width*cellWidth)) / cellWidth)
	y := b.y + b.h/2
	for _, seg := range el.Segments() {
		st := styleText
		if seg.Scrambled {
			st = styleScramble
		}
		c.write(x, y, seg.Text, st)
		x += len([]rune(seg.Text))
	}
}

func drawButton(c *canvas, b box, el *surface.Element) {
	label := "[ " + renderer.Label(el.Label()) + " ]"
	st := styleButton
	if el.Disabled {
		st = styleButtonDisabled
	} else if el.ID == gamescreen.NextButtonID {
		label = "[>" + renderer.Label(el.Label()) + "<]"
	}
	x := b.x + (b.w-len([]rune(label)))/2
	c.write(max(x, b.x), b.y+b.h/2, label, st)
}
