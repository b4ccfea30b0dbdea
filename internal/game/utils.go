package game

import (
	"fmt"
	"image/color"
	"math"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// phosphor is the glow colour at the given intensity. Saturation drops as the
// spot gets hotter so bright spots turn towards white.
func phosphor(hue, intensity float64) color.NRGBA {
	intensity = clamp01(intensity)
	r, g, b := hsvToRgb(hue, 1-0.3*intensity, 1)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(255 * intensity)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatClock formats simulation seconds as MM:SS.ss
func formatClock(sec float64) string {
	minutes := int(sec / 60)
	return fmt.Sprintf("%02d:%05.2f", minutes, sec-float64(minutes)*60)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
