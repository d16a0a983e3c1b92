package export

import (
	"image"

	"github.com/gogpu/gg"

	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
	"github.com/san-kum/curvelab/internal/palette"
)

// Raster is an offscreen backend that draws with gg.
type Raster struct {
	ctx       *gg.Context
	w, h      int
	u         curve.Uniforms
	drawn     int
	LineWidth float64
}

func NewRaster(width, height int) *Raster {
	r := &Raster{w: width, h: height, LineWidth: 1}
	if width > 0 && height > 0 {
		r.ctx = gg.NewContext(width, height)
	}
	return r
}

func (r *Raster) Name() string { return "gg" }

func (r *Raster) Available() bool { return r.ctx != nil }

func (r *Raster) Clear() { r.ctx.ClearWithColor(gg.Hex(background)) }

func (r *Raster) Publish(u curve.Uniforms) { r.u = u }

// Draw sets one pixel per vertex, or strokes runs of consecutive vertices.
func (r *Raster) Draw(mode explorer.DrawMode, count int) {
	u := r.u
	u.SampleCount = count
	c := palette.Hue(u.Hue)
	col := gg.RGB(c.R, c.G, c.B)

	if mode == explorer.DrawPoints {
		r.drawn = curve.Trace(u, func(_ int, x, y float64) {
			px, py := curve.ToPixel(x, y, r.w, r.h)
			r.ctx.SetPixel(int(px), int(py), col)
		})
		return
	}

	prev := -2
	r.drawn = curve.Trace(u, func(i int, x, y float64) {
		px, py := curve.ToPixel(x, y, r.w, r.h)
		if i == prev+1 {
			r.ctx.LineTo(px, py)
		} else {
			r.ctx.MoveTo(px, py)
		}
		prev = i
	})
	r.ctx.SetRGB(c.R, c.G, c.B)
	r.ctx.SetLineWidth(r.LineWidth)
	_ = r.ctx.Stroke()
}

// Drawn is the number of vertices visited by the last Draw.
func (r *Raster) Drawn() int { return r.drawn }

func (r *Raster) Image() image.Image { return r.ctx.Image() }

func (r *Raster) SavePNG(path string) error { return r.ctx.SavePNG(path) }

func (r *Raster) Close() error {
	if r.ctx == nil {
		return nil
	}
	err := r.ctx.Close()
	r.ctx = nil
	return err
}
