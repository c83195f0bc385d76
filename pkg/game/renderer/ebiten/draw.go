package ebiten

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"promptscape/pkg/engine/surface"
	"promptscape/pkg/game/renderer"
	gamescreen "promptscape/pkg/game/screen"
)

// appendRoundedRect adds a rounded rectangle to the path. (x, y) is top-left; w, h are size; r is corner radius.
// Uses clockwise arcs so the path winds correctly for fill.
func appendRoundedRect(p *vector.Path, x, y, w, h, r float32) {
	appendRoundedRectDir(p, x, y, w, h, r, vector.Clockwise)
}

// appendRoundedRectDir adds a rounded rectangle with the given winding direction.
// CounterClockwise creates a hole when combined with an outer clockwise rect.
func appendRoundedRectDir(p *vector.Path, x, y, w, h, r float32, dir vector.Direction) {
	if r <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x, y+h)
		p.LineTo(x+w, y+h)
		p.LineTo(x+w, y)
		p.Close()
		return
	}
	r = min(r, w/2, h/2)
	halfPi := float32(math.Pi / 2)
	pi := float32(math.Pi)
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, 3*halfPi, 0, dir)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, halfPi, dir)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, halfPi, pi, dir)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, pi, 3*halfPi, dir)
	p.Close()
}

// drawRoundedRectWithShadow draws a rounded rectangle with drop shadow, fill, and border.
// alpha scales everything so buttons fade with their element.
func drawRoundedRectWithShadow(screen *ebiten.Image, x, y, w, h, cornerRadius, borderWidth float32, bgColor, borderColor color.Color, alpha float32) {
	const shadowSpread = 6
	bor, bog, bob, _ := borderColor.RGBA()
	shadow := color.RGBA{
		max(uint8((bor>>8)*15/255), 8),
		max(uint8((bog>>8)*15/255), 8),
		max(uint8((bob>>8)*15/255), 8),
		0,
	}

	var path vector.Path
	for i := shadowSpread; i >= 1; i-- {
		ringAlpha := min(uint8(12+i*8), 55)
		shadow.A = uint8(float32(ringAlpha) * alpha)
		path.Reset()
		appendRoundedRect(&path,
			x-float32(i), y-float32(i),
			w+float32(i*2), h+float32(i*2),
			cornerRadius+float32(i))
		appendRoundedRectDir(&path,
			x-float32(i-1), y-float32(i-1),
			w+float32((i-1)*2), h+float32((i-1)*2),
			cornerRadius+float32(i-1), vector.CounterClockwise)
		drawOpts := &vector.DrawPathOptions{AntiAlias: true}
		drawOpts.ColorScale.ScaleWithColor(shadow)
		vector.FillPath(screen, &path, nil, drawOpts)
	}

	path.Reset()
	appendRoundedRect(&path, x, y, w, h, cornerRadius)
	drawOpts := &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(bgColor)
	drawOpts.ColorScale.ScaleAlpha(alpha)
	vector.FillPath(screen, &path, nil, drawOpts)

	path.Reset()
	appendRoundedRect(&path, x, y, w, h, cornerRadius)
	strokeOpts := &vector.StrokeOptions{Width: borderWidth, MiterLimit: 10}
	drawOpts = &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(borderColor)
	drawOpts.ColorScale.ScaleAlpha(alpha)
	vector.StrokePath(screen, &path, strokeOpts, drawOpts)
}

// drawButton draws a button box with its translated label centred inside.
func (e *EbitenRenderer) drawButton(screen *ebiten.Image, el *surface.Element, p renderer.Placement) {
	if p.Alpha <= 0 {
		return
	}

	bg, border, label := color.Color(colorButton), color.Color(colorButtonBorder), color.Color(colorText)
	if el.Disabled {
		bg, border, label = colorButtonDisabled, colorBorderDisabled, colorSubtle
	} else if el.ID == gamescreen.NextButtonID {
		border = e.getPulsingReadyColor()
	}

	radius := float32(min(p.W, p.H) / 4)
	drawRoundedRectWithShadow(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), radius, 2, bg, border, float32(p.Alpha))

	str := renderer.Label(el.Label())
	if str == "" {
		return
	}
	face := e.getBoldFontFace(el.Size)
	w, h := text.Measure(str, face, 0)
	e.drawText(screen, str, p.X+(p.W-w)/2, p.Y+(p.H-h)/2, label, face, p.Alpha)
}

// drawPlaceholder marks an image that could not be loaded.
func drawPlaceholder(screen *ebiten.Image, p renderer.Placement) {
	if p.W <= 0 || p.H <= 0 {
		return
	}
	x, y, w, h := float32(p.X), float32(p.Y), float32(p.W), float32(p.H)
	vector.DrawFilledRect(screen, x, y, w, h, applyAlpha(colorPlaceholder, p.Alpha), false)
	edge := applyAlpha(colorPlaceholderEdge, p.Alpha)
	vector.StrokeRect(screen, x, y, w, h, 2, edge, true)
	vector.StrokeLine(screen, x, y, x+w, y+h, 1, edge, true)
	vector.StrokeLine(screen, x+w, y, x, y+h, 1, edge, true)
}
