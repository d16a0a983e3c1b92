// Package palette maps the explorer's normalized hue onto display colours.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	Saturation = 0.85
	Value      = 1.0
)

// Hue returns the curve colour for h in [0, 1]. Values outside the range are
// clamped; NaN is treated as 0. Hue 1 is the same colour as hue 0.
func Hue(h float64) colorful.Color {
	if math.IsNaN(h) || h < 0 {
		h = 0
	} else if h > 1 {
		h = 1
	}
	return colorful.Hsv(math.Mod(h*360, 360), Saturation, Value)
}

// Hex is Hue formatted as "#rrggbb".
func Hex(h float64) string { return Hue(h).Hex() }

// RGBA is Hue as an opaque 8-bit colour.
func RGBA(h float64) color.RGBA {
	r, g, b := Hue(h).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Strip samples n evenly spaced hues across [0, 1], for drawing a slider.
func Strip(n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	out := make([]colorful.Color, n)
	for i := range out {
		h := 0.0
		if n > 1 {
			h = float64(i) / float64(n-1)
		}
		out[i] = Hue(h)
	}
	return out
}

// Blend mixes two hex colours in Lab space. Unparseable input falls back to
// white.
func Blend(from, to string, t float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		a = colorful.Color{R: 1, G: 1, B: 1}
	}
	b, err := colorful.Hex(to)
	if err != nil {
		b = colorful.Color{R: 1, G: 1, B: 1}
	}
	return a.BlendLab(b, t).Clamped().Hex()
}
