package export

import (
	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
)

// recorder is a backend that keeps the published uniforms for vector output.
type recorder struct {
	u curve.Uniforms
}

func (*recorder) Name() string               { return "svg-path" }
func (*recorder) Available() bool            { return true }
func (*recorder) Clear()                     {}
func (r *recorder) Publish(u curve.Uniforms) { r.u = u }

func (r *recorder) Draw(_ explorer.DrawMode, count int) { r.u.SampleCount = count }
