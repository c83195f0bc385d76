// Package ebiten provides the Ebiten-based graphical front end.
package ebiten

import "image/color"

// Color palette
var (
	colorBackground      = color.RGBA{12, 10, 24, 255}    // Near-black violet
	colorText            = color.RGBA{236, 232, 250, 255} // Soft off-white
	colorScramble        = color.RGBA{255, 120, 190, 255} // Pink for unsettled glyphs
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorButton          = color.RGBA{40, 36, 70, 230}    // Button fill
	colorButtonBorder    = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorButtonDisabled  = color.RGBA{30, 30, 44, 200}    // Locked button fill
	colorBorderDisabled  = color.RGBA{80, 80, 110, 255}   // Locked button border
	colorPlaceholder     = color.RGBA{50, 45, 80, 255}    // Missing image fill
	colorPlaceholderEdge = color.RGBA{255, 100, 100, 255} // Missing image outline
	colorReady           = color.RGBA{130, 255, 170, 255} // Unlocked next button
)

// Font sizes
const (
	defaultFontSize = 18.0
	minFontSize     = 8.0
)

const (
	keyRepeatInitialDelay = 500 // Initial delay before first repeat (milliseconds)
	keyRepeatInterval     = 100 // Interval between repeat events (milliseconds)
)

// Audio
const (
	sampleRate = 44100
)
