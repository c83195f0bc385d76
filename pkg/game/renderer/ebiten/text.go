package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"promptscape/pkg/engine/surface"
	"promptscape/pkg/game/renderer"
)

// segmentFace picks the face for a run. Unsettled glyphs use the mono face so the
// line does not jitter while it scrambles.
func (e *EbitenRenderer) segmentFace(seg surface.Segment, size float64) *text.GoTextFace {
	if seg.Scrambled {
		return e.getMonoFontFace(size)
	}
	return e.getSansFontFace(size)
}

// measureSegments returns the total advance and the tallest line height.
func (e *EbitenRenderer) measureSegments(segments []surface.Segment, size float64) (float64, float64) {
	var w, h float64
	for _, seg := range segments {
		sw, sh := text.Measure(seg.Text, e.segmentFace(seg, size), 0)
		w += sw
		if sh > h {
			h = sh
		}
	}
	return w, h
}

// drawSegments draws the element's runs on one line inside p, aligned as the element
// asks and vertically centred in its box.
func (e *EbitenRenderer) drawSegments(screen *ebiten.Image, el *surface.Element, p renderer.Placement) {
	segments := el.Segments()
	if len(segments) == 0 || p.Alpha <= 0 {
		return
	}

	w, h := e.measureSegments(segments, el.Size)
	x := renderer.AlignX(p, el.Align, w)
	y := p.Y + (p.H-h)/2

	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		col := color.Color(colorText)
		if seg.Scrambled {
			col = colorScramble
		}
		face := e.segmentFace(seg, el.Size)
		e.drawText(screen, seg.Text, x, y, col, face, p.Alpha)
		sw, _ := text.Measure(seg.Text, face, 0)
		x += sw
	}
}

// drawText draws str with its top-left at (x, y).
func (e *EbitenRenderer) drawText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, face, op)
}

// applyAlpha scales every channel of c, fading towards transparent black.
func applyAlpha(c color.Color, alpha float64) color.Color {
	if alpha <= 0 {
		alpha = 0
	}
	if alpha > 1.0 {
		alpha = 1.0
	}

	r, g, b, a := c.RGBA()
	return color.RGBA{
		uint8(float64(r>>8) * alpha),
		uint8(float64(g>>8) * alpha),
		uint8(float64(b>>8) * alpha),
		uint8(float64(a>>8) * alpha),
	}
}
