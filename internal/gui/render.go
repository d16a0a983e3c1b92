package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
	"github.com/san-kum/curvelab/internal/palette"
)

// Backend draws sessions into the current raylib window. It must be used
// between BeginDrawing and EndDrawing.
type Backend struct {
	u     curve.Uniforms
	color rl.Color
	buf   []rl.Vector2
	drawn int
}

func NewBackend() *Backend {
	return &Backend{buf: make([]rl.Vector2, 0, explorer.SampleCapacity)}
}

func (b *Backend) Name() string { return "raylib" }

func (b *Backend) Available() bool { return rl.IsWindowReady() }

func (b *Backend) Clear() { rl.ClearBackground(ColBg) }

func (b *Backend) Publish(u curve.Uniforms) {
	b.u = u
	c := palette.RGBA(u.Hue)
	b.color = rl.NewColor(c.R, c.G, c.B, 255)
}

// Draw plots count vertices as pixels, or as line strips broken wherever a
// vertex was not finite.
func (b *Backend) Draw(mode explorer.DrawMode, count int) {
	u := b.u
	u.SampleCount = count
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())

	b.drawn = 0
	for _, strip := range b.strips(u, w, h) {
		b.drawn += len(strip)
		if mode == explorer.DrawLines && len(strip) > 1 {
			rl.DrawLineStrip(strip, b.color)
			continue
		}
		for _, p := range strip {
			rl.DrawPixelV(p, b.color)
		}
	}
}

// strips converts the uniforms into screen-space runs of consecutive
// vertices. The runs share b.buf.
func (b *Backend) strips(u curve.Uniforms, w, h int) [][]rl.Vector2 {
	b.buf = b.buf[:0]
	var runs [][]rl.Vector2
	start, prev := 0, -2
	curve.Trace(u, func(i int, x, y float64) {
		if i != prev+1 && len(b.buf) > start {
			runs = append(runs, b.buf[start:len(b.buf):len(b.buf)])
			start = len(b.buf)
		}
		px, py := curve.ToPixel(x, y, w, h)
		b.buf = append(b.buf, rl.NewVector2(float32(px), float32(py)))
		prev = i
	})
	if len(b.buf) > start {
		runs = append(runs, b.buf[start:])
	}
	return runs
}

// Drawn is the number of vertices plotted by the last Draw.
func (b *Backend) Drawn() int { return b.drawn }
