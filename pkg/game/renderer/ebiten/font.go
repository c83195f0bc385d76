package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// fontSize scales a layout font size to the current window height. Layouts are
// written against a 720px tall screen.
func (e *EbitenRenderer) fontSize(size float64) float64 {
	if size <= 0 {
		size = defaultFontSize
	}
	scaled := size * float64(e.windowHeight) / 720.0
	if scaled < minFontSize {
		scaled = minFontSize
	}
	return scaled
}

// getSansFontFace returns a cached sans-serif face for body text
func (e *EbitenRenderer) getSansFontFace(size float64) *text.GoTextFace {
	return e.face(styleSans, size)
}

// getMonoFontFace returns a cached monospace face for scrambled glyphs
func (e *EbitenRenderer) getMonoFontFace(size float64) *text.GoTextFace {
	return e.face(styleMono, size)
}

// getBoldFontFace returns a cached bold face for button labels
func (e *EbitenRenderer) getBoldFontFace(size float64) *text.GoTextFace {
	return e.face(styleBold, size)
}

func (e *EbitenRenderer) face(style fontStyle, size float64) *text.GoTextFace {
	key := fontKey{style: style, size: e.fontSize(size)}
	if f, ok := e.faces[key]; ok {
		return f
	}

	src := e.sansFontSource
	switch style {
	case styleMono:
		src = e.monoFontSource
	case styleBold:
		src = e.boldFontSource
	}
	f := &text.GoTextFace{Source: src, Size: key.size}
	e.faces[key] = f
	return f
}
