package ebiten

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"promptscape/pkg/engine/surface"
	"promptscape/pkg/game/renderer"
)

// Draw renders the app's surface (Ebiten interface). Elements are drawn in layer
// order, so later layers cover earlier ones.
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if e.app == nil {
		return
	}

	s := e.app.Surface()
	root := s.Root()
	w, h := float64(e.windowWidth), float64(e.windowHeight)

	for _, el := range s.Elements() {
		p := renderer.Place(el, root, w, h)
		switch el.Kind {
		case surface.KindImage:
			e.drawImage(screen, el, p)
		case surface.KindText:
			e.drawSegments(screen, el, p)
		case surface.KindButton:
			e.drawButton(screen, el, p)
		}
	}
}

// drawImage scales the element's image to its box and rotates it about the box centre.
func (e *EbitenRenderer) drawImage(screen *ebiten.Image, el *surface.Element, p renderer.Placement) {
	if el.Src == "" || p.Alpha <= 0 {
		return
	}
	img := e.image(el.Src)
	if img == nil {
		drawPlaceholder(screen, p)
		return
	}

	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(p.W/iw, p.H/ih)
	if p.Angle != 0 {
		op.GeoM.Translate(-p.W/2, -p.H/2)
		op.GeoM.Rotate(p.Angle * math.Pi / 180)
		op.GeoM.Translate(p.W/2, p.H/2)
	}
	op.GeoM.Translate(p.X, p.Y)
	op.ColorScale.ScaleAlpha(float32(p.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
