package explorer

import (
	"fmt"
	"strings"
)

const (
	// CoefStep is the keyboard increment applied to the active coefficient.
	CoefStep = 0.01
	// DomainStep is the PageUp/PageDown increment applied to TMax.
	DomainStep = 0.01

	SampleStep     = 500
	MinSamples     = 500
	MaxSamples     = 59500
	SampleCapacity = 60000

	ZoomFactor = 1.1

	HueStep      = 0.002
	DefaultSpeed = 0.01
)

// ParameterState is the live curve configuration.
type ParameterState struct {
	FamilyID    int
	Coef        [3]float64
	ActiveCoef  int
	TMin, TMax  float64
	SampleCount int
}

// NextCoef selects the following coefficient, cyclically.
func (p *ParameterState) NextCoef() { p.ActiveCoef = (p.ActiveCoef + 1) % 3 }

// PrevCoef selects the preceding coefficient, cyclically.
func (p *ParameterState) PrevCoef() { p.ActiveCoef = (p.ActiveCoef + 2) % 3 }

// AdjustCoef adds delta to the active coefficient.
func (p *ParameterState) AdjustCoef(delta float64) { p.Coef[p.ActiveCoef] += delta }

// IncrementSamples adds one step when below the ceiling. It reports whether
// the count changed.
func (p *ParameterState) IncrementSamples() bool {
	if p.SampleCount >= MaxSamples {
		return false
	}
	p.SampleCount += SampleStep
	return true
}

// DecrementSamples removes one step when above the floor. It reports whether
// the count changed.
func (p *ParameterState) DecrementSamples() bool {
	if p.SampleCount <= MinSamples {
		return false
	}
	p.SampleCount -= SampleStep
	return true
}

// ViewTransform is the zoom and pan applied on top of curve space.
type ViewTransform struct {
	Scale  float64
	Offset [2]float64
}

// ZoomIn multiplies the scale by ZoomFactor.
func (v *ViewTransform) ZoomIn() { v.Scale *= ZoomFactor }

// ZoomOut divides the scale by ZoomFactor.
func (v *ViewTransform) ZoomOut() { v.Scale /= ZoomFactor }

// Pan shifts the offset by a pixel delta normalized to the surface size.
// Screen y grows downwards, device y upwards.
func (v *ViewTransform) Pan(dx, dy, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	v.Offset[0] += dx / width * 2
	v.Offset[1] += -dy / height * 2
}

// AnimationState drives the per-frame drift of the active coefficient.
type AnimationState struct {
	Enabled   bool
	Direction float64
	Speed     float64
	Hue       float64
}

// Step advances the active coefficient and the hue by one frame. The hue
// restarts at zero once it passes one; the excess is dropped.
func (a *AnimationState) Step(p *ParameterState) {
	p.Coef[p.ActiveCoef] += a.Direction * a.Speed
	a.Hue += HueStep
	if a.Hue > 1.0 {
		a.Hue = 0.0
	}
}

// DrawMode selects the primitive a backend draws.
type DrawMode int

const (
	DrawPoints DrawMode = iota
	DrawLines
)

func (m DrawMode) String() string {
	if m == DrawLines {
		return "lines"
	}
	return "points"
}

// Toggle returns the other mode.
func (m DrawMode) Toggle() DrawMode {
	if m == DrawLines {
		return DrawPoints
	}
	return DrawLines
}

// ParseDrawMode accepts "points" or "lines", case-insensitively.
func ParseDrawMode(s string) (DrawMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "points", "point", "":
		return DrawPoints, nil
	case "lines", "line", "line_strip":
		return DrawLines, nil
	}
	return DrawPoints, fmt.Errorf("%w: %q", ErrUnknownDrawMode, s)
}

func (m DrawMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *DrawMode) UnmarshalText(b []byte) error {
	mode, err := ParseDrawMode(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
