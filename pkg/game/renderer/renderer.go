package renderer

import (
	"github.com/leonelquinteros/gotext"

	"promptscape/pkg/engine/surface"
)

// dynamicGet is used for runtime translation key lookups.
// Labels come from layout files, so the key is never a constant.
var dynamicGet = gotext.Get

// InitLocale points gotext at the translation catalogue.
func InitLocale(dir, lang string) {
	gotext.Configure(dir, lang, "default")
}

// Label translates a button label. A key with no translation is returned unchanged.
func Label(key string) string {
	if key == "" {
		return ""
	}
	return dynamicGet(key)
}

// Placement is an element's box in screen units after the transform vars are applied.
type Placement struct {
	X, Y, W, H float64
	Angle      float64 // degrees
	Alpha      float64
}

// Place maps el onto a width x height screen. The root's --x/--y shift the element by
// its parallax factor; --angle rotates it when it opts in.
func Place(el, root *surface.Element, width, height float64) Placement {
	p := Placement{
		X:     el.X * width,
		Y:     el.Y * height,
		W:     el.W * width,
		H:     el.H * height,
		Alpha: el.Opacity(),
	}
	if root == nil || root == el {
		return p
	}
	p.X += root.Var(surface.VarX) * el.Parallax
	p.Y += root.Var(surface.VarY) * el.Parallax
	if el.Rotates {
		p.Angle = root.Var(surface.VarAngle)
	}
	return p
}

// AlignX returns where a run of textWidth starts inside p for the element's alignment.
func AlignX(p Placement, align string, textWidth float64) float64 {
	switch align {
	case "center":
		return p.X + (p.W-textWidth)/2
	case "right":
		return p.X + p.W - textWidth
	default:
		return p.X
	}
}
