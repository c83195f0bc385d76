package ebiten

import (
	"image/color"
	"math"
	"time"
)

// pulsePeriod is how long one bright-dim-bright cycle of the ready highlight takes.
const pulsePeriod = 2 * time.Second

// getPulsingReadyColor returns the border colour for an unlocked next button. It
// breathes between half and full brightness on a sine wave.
func (e *EbitenRenderer) getPulsingReadyColor() color.Color {
	return pulse(colorReady, time.Now(), 0.5, 1.0)
}

func pulse(base color.RGBA, now time.Time, minBrightness, maxBrightness float64) color.RGBA {
	phase := float64(now.UnixMilli()%pulsePeriod.Milliseconds()) / float64(pulsePeriod.Milliseconds())
	value := (math.Sin(phase*2*math.Pi) + 1.0) / 2.0
	brightness := minBrightness + (maxBrightness-minBrightness)*value

	return color.RGBA{
		uint8(float64(base.R) * brightness),
		uint8(float64(base.G) * brightness),
		uint8(float64(base.B) * brightness),
		base.A,
	}
}
