package explorer

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/curvelab/internal/curve"
)

// Backend receives one frame's worth of work: clear, uniforms, draw.
type Backend interface {
	Name() string
	Available() bool
	Clear()
	Publish(u curve.Uniforms)
	Draw(mode DrawMode, count int)
}

// Readout is the textual parameter display shown next to the curve.
type Readout struct {
	Coef       [3]float64
	TMin, TMax float64
}

func (r Readout) String() string {
	return fmt.Sprintf("%.2f, %.2f, %.2f  t∈[%.2f, %.2f]", r.Coef[0], r.Coef[1], r.Coef[2], r.TMin, r.TMax)
}

// Observer is notified of presentation changes.
type Observer interface {
	OnReadout(r Readout)
	OnHueControl(visible bool)
}

type nopObserver struct{}

func (nopObserver) OnReadout(Readout) {}
func (nopObserver) OnHueControl(bool) {}

// Session is the single owner of parameter, view and animation state.
type Session struct {
	Params ParameterState
	View   ViewTransform
	Anim   AnimationState
	Mode   DrawMode

	hue      float64
	aspect   float64
	surfaceW float64
	surfaceH float64

	dragging         bool
	anchorX, anchorY float64

	queue    []Command
	observer Observer
	frames   uint64
	log      *slog.Logger
}

// Option configures a new Session.
type Option func(*Session)

// WithFamily starts on family id with its defaults. Unknown ids are ignored.
func WithFamily(id int) Option {
	return func(s *Session) {
		if _, ok := curve.Lookup(id); ok {
			s.Params.FamilyID = id
			s.ResetToDefaults(id)
		}
	}
}

// WithCoefficients overrides the starting coefficient triple.
func WithCoefficients(c [3]float64) Option {
	return func(s *Session) { s.Params.Coef = c }
}

// WithSampleCount sets the starting sample count. Values outside
// [MinSamples, SampleCapacity] are ignored.
func WithSampleCount(n int) Option {
	return func(s *Session) {
		if n >= MinSamples && n <= SampleCapacity {
			s.Params.SampleCount = n
		}
	}
}

// WithAnimation sets the animation speed and direction, and whether it runs
// from the first frame.
func WithAnimation(enabled bool, speed, direction float64) Option {
	return func(s *Session) {
		if speed > 0 {
			s.Anim.Speed = speed
		}
		if direction == 1 || direction == -1 {
			s.Anim.Direction = direction
		}
		s.Anim.Enabled = enabled
	}
}

// WithDrawMode sets the starting primitive.
func WithDrawMode(m DrawMode) Option {
	return func(s *Session) { s.Mode = m }
}

// WithView sets the starting zoom and pan. A non-positive scale is ignored.
func WithView(scale float64, offset [2]float64) Option {
	return func(s *Session) {
		if scale > 0 {
			s.View.Scale = scale
		}
		s.View.Offset = offset
	}
}

// WithSurface sets the initial drawing surface size.
func WithSurface(width, height float64) Option {
	return func(s *Session) { Resize{Width: width, Height: height}.apply(s) }
}

// WithObserver registers the presentation observer.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewSession returns a session on family 1 with 60000 samples, unit zoom
// and animation off, then applies opts in order.
func NewSession(opts ...Option) *Session {
	s := &Session{
		Params: ParameterState{FamilyID: 1, SampleCount: SampleCapacity},
		View:   ViewTransform{Scale: 1.0},
		Anim:   AnimationState{Direction: 1, Speed: DefaultSpeed},
		Mode:   DrawPoints,
		aspect: 1,

		queue:    make([]Command, 0, 16),
		observer: nopObserver{},
		log:      Logger(),
	}
	s.ResetToDefaults(1)
	for _, opt := range opts {
		opt(s)
	}
	s.log.Info("session created",
		"family", s.Params.FamilyID,
		"samples", s.Params.SampleCount,
		"mode", s.Mode.String())
	return s
}

// ResetToDefaults overwrites the coefficients and domain from the registry.
// Unknown ids leave the state untouched.
func (s *Session) ResetToDefaults(id int) {
	f, ok := curve.Lookup(id)
	if !ok {
		return
	}
	d := f.Defaults
	s.Params.Coef = d.Coef()
	s.Params.TMin, s.Params.TMax = d.T0, d.T1
	s.notifyReadout()
}

// Enqueue queues a command for the next frame.
func (s *Session) Enqueue(cmds ...Command) {
	for _, c := range cmds {
		if c != nil {
			s.queue = append(s.queue, c)
		}
	}
}

// Pending returns the number of queued commands.
func (s *Session) Pending() int { return len(s.queue) }

// Apply runs a command immediately, bypassing the queue.
func (s *Session) Apply(c Command) {
	if c != nil {
		c.apply(s)
	}
}

// Drain applies every queued command in arrival order.
func (s *Session) Drain() {
	for i, c := range s.queue {
		c.apply(s)
		s.queue[i] = nil
	}
	s.queue = s.queue[:0]
}

// Attach checks that a backend can be rendered to. A failure here is fatal
// for the frontend starting the session.
func (s *Session) Attach(b Backend) error {
	if b == nil {
		return ErrBackendUnavailable
	}
	if !b.Available() {
		return fmt.Errorf("%w: %s", ErrBackendUnavailable, b.Name())
	}
	s.log.Info("backend attached", "backend", b.Name())
	return nil
}

// Frame runs one iteration of the render loop: queued input, clear,
// animation, publish, draw.
func (s *Session) Frame(b Backend) error {
	if b == nil || !b.Available() {
		return ErrBackendUnavailable
	}
	s.Drain()
	b.Clear()
	if s.Anim.Enabled {
		s.animate()
	}
	b.Publish(s.Uniforms())
	b.Draw(s.Mode, s.Params.SampleCount)
	s.frames++
	return nil
}

// Uniforms snapshots the state a backend needs for one draw.
func (s *Session) Uniforms() curve.Uniforms {
	return curve.Uniforms{
		Coefficients: s.Params.Coef,
		DomainMin:    s.Params.TMin,
		DomainMax:    s.Params.TMax,
		SampleCount:  s.Params.SampleCount,
		FamilyType:   s.Params.FamilyID,
		ZoomScale:    s.View.Scale,
		PanOffset:    s.View.Offset,
		AspectRatio:  s.aspect,
		Hue:          s.hue,
	}
}

// Readout returns the current parameter display.
func (s *Session) Readout() Readout {
	return Readout{Coef: s.Params.Coef, TMin: s.Params.TMin, TMax: s.Params.TMax}
}

// Hue is the hue last published to the backend, in [0, 1].
func (s *Session) Hue() float64 { return s.hue }

// Aspect is the surface width divided by its height.
func (s *Session) Aspect() float64 { return s.aspect }

// Dragging reports whether a pointer drag is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// Frames counts completed Frame calls.
func (s *Session) Frames() uint64 { return s.frames }

func (s *Session) animate() {
	s.Anim.Step(&s.Params)
	s.hue = s.Anim.Hue
	s.notifyReadout()
}

func (s *Session) handleKey(k Key) {
	switch k {
	case KeyFamily1, KeyFamily2, KeyFamily3, KeyFamily4, KeyFamily5, KeyFamily6:
		s.Params.FamilyID = k.Family()
		s.ResetToDefaults(s.Params.FamilyID)
		s.log.Debug("family selected", "family", s.Params.FamilyID)
	case KeyToggleAnimation:
		s.Anim.Enabled = !s.Anim.Enabled
		s.observer.OnHueControl(!s.Anim.Enabled)
		s.log.Debug("animation toggled", "enabled", s.Anim.Enabled)
	case KeyUp:
		s.cancelAnimation()
		s.Params.AdjustCoef(CoefStep)
		s.notifyReadout()
	case KeyDown:
		s.cancelAnimation()
		s.Params.AdjustCoef(-CoefStep)
		s.notifyReadout()
	case KeyLeft:
		s.Params.PrevCoef()
	case KeyRight:
		s.Params.NextCoef()
	case KeyPageUp:
		s.Params.TMax += DomainStep
		s.notifyReadout()
	case KeyPageDown:
		s.Params.TMax -= DomainStep
		s.notifyReadout()
	case KeyReset:
		s.ResetToDefaults(s.Params.FamilyID)
	case KeyToggleDrawMode:
		s.Mode = s.Mode.Toggle()
		s.log.Debug("draw mode", "mode", s.Mode.String())
	case KeyMoreSamples:
		if !s.Params.IncrementSamples() {
			s.log.Debug("sample count at ceiling", "samples", s.Params.SampleCount)
		}
	case KeyFewerSamples:
		if !s.Params.DecrementSamples() {
			s.log.Debug("sample count at floor", "samples", s.Params.SampleCount)
		}
	}
}

func (s *Session) cancelAnimation() {
	if s.Anim.Enabled {
		s.observer.OnHueControl(true)
	}
	s.Anim.Enabled = false
}

func (s *Session) notifyReadout() {
	if s.observer == nil {
		return
	}
	s.observer.OnReadout(s.Readout())
}
