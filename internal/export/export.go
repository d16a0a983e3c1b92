// Package export renders a single frame of an explorer session to a file.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/curvelab/internal/explorer"
	"github.com/san-kum/curvelab/internal/palette"
	"github.com/san-kum/curvelab/internal/viz"
)

var ErrUnsupportedFormat = errors.New("export: unsupported format")

// Pixel size of one braille cell in SVG point exports.
const (
	cellW, cellH = 8, 16
	dotScale     = 4
)

type Options struct {
	Width, Height int
}

func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720}
}

// Render draws the session's next frame to path. The format follows the
// extension: .png through gg, .svg as dots in point mode or paths in line
// mode.
func Render(s *explorer.Session, path string, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", explorer.ErrParameterBounds, opts.Width, opts.Height)
	}
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		err = renderPNG(s, path, opts)
	case ".svg":
		err = renderSVG(s, path, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return err
	}
	explorer.Logger().Info("export written", "path", path, "family", s.Params.FamilyID, "mode", s.Mode.String())
	return nil
}

func renderPNG(s *explorer.Session, path string, opts Options) error {
	r := NewRaster(opts.Width, opts.Height)
	defer r.Close()

	s.Enqueue(explorer.Resize{Width: float64(opts.Width), Height: float64(opts.Height)})
	if err := s.Frame(r); err != nil {
		return err
	}
	if err := r.SavePNG(path); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func renderSVG(s *explorer.Session, path string, opts Options) error {
	var svg string
	if s.Mode == explorer.DrawLines {
		s.Enqueue(explorer.Resize{Width: float64(opts.Width), Height: float64(opts.Height)})
		rec := &recorder{}
		if err := s.Frame(rec); err != nil {
			return err
		}
		svg = PathToSVG(rec.u, opts.Width, opts.Height, palette.Hex(rec.u.Hue))
	} else {
		b := viz.NewCanvasBackend(max(opts.Width/cellW, 1), max(opts.Height/cellH, 1))
		w, h := b.Canvas.Dots()
		s.Enqueue(explorer.Resize{Width: float64(w), Height: float64(h)})
		if err := s.Frame(b); err != nil {
			return err
		}
		svg = CanvasToSVG(b.Canvas, dotScale, palette.Hex(b.Uniforms().Hue))
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
