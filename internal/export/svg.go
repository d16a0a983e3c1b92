package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/viz"
)

const background = "#0a0a0a"

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}
	w, h := canvas.Dots()
	width, height := float64(w)*scale, float64(h)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, fill)

	dotRadius := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PathToSVG traces u onto a width×height surface as SVG paths, starting a
// new subpath wherever a vertex was skipped.
func PathToSVG(u curve.Uniforms, width, height int, stroke string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1" d="`,
		width, height, width, height, background, stroke)

	prev := -2
	curve.Trace(u, func(i int, x, y float64) {
		px, py := curve.ToPixel(x, y, width, height)
		switch {
		case prev == -2:
			fmt.Fprintf(&sb, "M%.2f,%.2f", px, py)
		case i != prev+1:
			fmt.Fprintf(&sb, " M%.2f,%.2f", px, py)
		default:
			fmt.Fprintf(&sb, " L%.2f,%.2f", px, py)
		}
		prev = i
	})

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
