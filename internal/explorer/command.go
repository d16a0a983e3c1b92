package explorer

import "math"

// Command is one discrete input, queued by a frontend and applied at the
// start of the next frame.
type Command interface {
	apply(s *Session)
}

// KeyPress is a key-down event.
type KeyPress struct{ Key Key }

// Wheel is a scroll tick. Negative DeltaY scrolls up and zooms in.
type Wheel struct{ DeltaY float64 }

// PointerDown starts a drag at the given surface position.
type PointerDown struct{ X, Y float64 }

// PointerMove pans the view when a drag is in progress.
type PointerMove struct{ X, Y float64 }

// PointerUp ends a drag.
type PointerUp struct{}

// HueInput is the manual hue slider, in degrees 0..360.
type HueInput struct{ Degrees float64 }

// Resize reports the drawing surface size in the same units as pointer
// positions.
type Resize struct{ Width, Height float64 }

func (c KeyPress) apply(s *Session) { s.handleKey(c.Key) }

func (c Wheel) apply(s *Session) {
	if c.DeltaY < 0 {
		s.View.ZoomIn()
	} else {
		s.View.ZoomOut()
	}
}

func (c PointerDown) apply(s *Session) {
	s.dragging = true
	s.anchorX, s.anchorY = c.X, c.Y
}

func (c PointerMove) apply(s *Session) {
	if !s.dragging {
		return
	}
	s.View.Pan(c.X-s.anchorX, c.Y-s.anchorY, s.surfaceW, s.surfaceH)
	s.anchorX, s.anchorY = c.X, c.Y
}

func (PointerUp) apply(s *Session) { s.dragging = false }

func (c HueInput) apply(s *Session) {
	if math.IsNaN(c.Degrees) || c.Degrees < 0 || c.Degrees > 360 {
		return
	}
	s.dragging = false
	s.hue = c.Degrees / 360
}

func (c Resize) apply(s *Session) {
	if c.Width <= 0 || c.Height <= 0 {
		return
	}
	s.surfaceW, s.surfaceH = c.Width, c.Height
	s.aspect = c.Width / c.Height
}
