package viz

import (
	"math"

	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
)

// CanvasBackend renders sessions onto a braille Canvas.
type CanvasBackend struct {
	Canvas *Canvas
	u      curve.Uniforms
	drawn  int
}

func NewCanvasBackend(cols, rows int) *CanvasBackend {
	return &CanvasBackend{Canvas: NewCanvas(cols, rows)}
}

func (b *CanvasBackend) Name() string { return "braille" }

func (b *CanvasBackend) Available() bool {
	return b.Canvas != nil && b.Canvas.Width > 0 && b.Canvas.Height > 0
}

func (b *CanvasBackend) Clear() { b.Canvas.Clear() }

func (b *CanvasBackend) Publish(u curve.Uniforms) { b.u = u }

// Draw rasterises count vertices of the published curve. In line mode only
// consecutive finite vertices are joined, and segments with an endpoint far
// off the canvas are left out.
func (b *CanvasBackend) Draw(mode explorer.DrawMode, count int) {
	u := b.u
	u.SampleCount = count
	w, h := b.Canvas.Dots()

	prev, px, py := -2, 0, 0
	b.drawn = curve.Trace(u, func(i int, x, y float64) {
		fx, fy := curve.ToPixel(x, y, w, h)
		ix, iy := clampDot(fx, w), clampDot(fy, h)
		if mode == explorer.DrawLines && i == prev+1 && near(px, py, w, h) && near(ix, iy, w, h) {
			b.Canvas.DrawLine(px, py, ix, iy)
		} else {
			b.Canvas.Set(ix, iy)
		}
		prev, px, py = i, ix, iy
	})
}

// Uniforms returns the last published uniforms.
func (b *CanvasBackend) Uniforms() curve.Uniforms { return b.u }

// Drawn is the number of vertices visited by the last Draw.
func (b *CanvasBackend) Drawn() int { return b.drawn }

// Resize changes the canvas size in cells.
func (b *CanvasBackend) Resize(cols, rows int) { b.Canvas.Resize(cols, rows) }

// clampDot floors v into a range wide enough to stay off-canvas without
// overflowing int.
func clampDot(v float64, size int) int {
	lim := float64(4 * (size + 1))
	return int(math.Floor(math.Max(-lim, math.Min(lim, v))))
}

func near(x, y, w, h int) bool {
	return x >= -w && x <= 2*w && y >= -h && y <= 2*h
}
