package viz

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/san-kum/curvelab/internal/palette"
)

const (
	dotPixels       = 3
	maxRecordFrames = 600
	frameDelay      = 2 // hundredths of a second
)

var errNoFrames = errors.New("viz: nothing recorded")

// Recorder collects canvas frames for an animated GIF.
type Recorder struct {
	Path   string
	frames []*image.Paletted
}

func NewRecorder(path string) *Recorder {
	return &Recorder{Path: path}
}

// Capture snapshots the canvas, painting lit dots in the curve colour for
// hue. Frames past the cap are dropped.
func (r *Recorder) Capture(c *Canvas, hue float64) {
	if len(r.frames) >= maxRecordFrames {
		return
	}
	w, h := c.Dots()
	img := image.NewPaletted(
		image.Rect(0, 0, w*dotPixels, h*dotPixels),
		color.Palette{color.Black, palette.RGBA(hue)},
	)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotPixels; py++ {
				for px := 0; px < dotPixels; px++ {
					img.SetColorIndex(x*dotPixels+px, y*dotPixels+py, 1)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Len is the number of captured frames.
func (r *Recorder) Len() int { return len(r.frames) }

// Save encodes the captured frames to Path and clears them.
func (r *Recorder) Save() error {
	if len(r.frames) == 0 {
		return errNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, frameDelay)
	}
	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("viz: create recording: %w", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Errorf("viz: encode recording: %w", err)
	}
	r.frames = nil
	return nil
}
