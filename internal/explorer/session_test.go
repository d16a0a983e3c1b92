package explorer_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
)

type recordingBackend struct {
	down     bool
	calls    []string
	uniforms []curve.Uniforms
	modes    []explorer.DrawMode
	counts   []int
}

func (b *recordingBackend) Name() string    { return "recording" }
func (b *recordingBackend) Available() bool { return !b.down }
func (b *recordingBackend) Clear()          { b.calls = append(b.calls, "clear") }

func (b *recordingBackend) Publish(u curve.Uniforms) {
	b.calls = append(b.calls, "publish")
	b.uniforms = append(b.uniforms, u)
}

func (b *recordingBackend) Draw(mode explorer.DrawMode, count int) {
	b.calls = append(b.calls, "draw")
	b.modes = append(b.modes, mode)
	b.counts = append(b.counts, count)
}

type recordingObserver struct {
	readouts []explorer.Readout
	hueShown []bool
}

func (o *recordingObserver) OnReadout(r explorer.Readout) { o.readouts = append(o.readouts, r) }
func (o *recordingObserver) OnHueControl(v bool)          { o.hueShown = append(o.hueShown, v) }

func press(s *explorer.Session, keys ...explorer.Key) {
	for _, k := range keys {
		s.Apply(explorer.KeyPress{Key: k})
	}
}

func repeat(s *explorer.Session, k explorer.Key, n int) {
	for i := 0; i < n; i++ {
		press(s, k)
	}
}

var _ = Describe("Session", func() {
	var s *explorer.Session

	BeforeEach(func() {
		s = explorer.NewSession()
	})

	Describe("initial state", func() {
		It("starts on family 1 with its defaults", func() {
			Expect(s.Params.FamilyID).To(Equal(1))
			Expect(s.Params.Coef).To(Equal([3]float64{1, 1, 0}))
			Expect(s.Params.TMin).To(Equal(0.0))
			Expect(s.Params.TMax).To(Equal(2 * math.Pi))
			Expect(s.Params.ActiveCoef).To(Equal(0))
			Expect(s.Params.SampleCount).To(Equal(60000))
		})

		It("starts unzoomed, centred and still", func() {
			Expect(s.View.Scale).To(Equal(1.0))
			Expect(s.View.Offset).To(Equal([2]float64{0, 0}))
			Expect(s.Anim.Enabled).To(BeFalse())
			Expect(s.Anim.Direction).To(Equal(1.0))
			Expect(s.Anim.Hue).To(Equal(0.0))
			Expect(s.Mode).To(Equal(explorer.DrawPoints))
		})
	})

	Describe("ResetToDefaults", func() {
		It("restores every registered family regardless of prior state", func() {
			for _, id := range curve.IDs() {
				press(s, explorer.KeyRight)
				repeat(s, explorer.KeyUp, 7)
				repeat(s, explorer.KeyPageDown, 3)

				s.ResetToDefaults(id)

				f, _ := curve.Lookup(id)
				Expect(s.Params.Coef).To(Equal(f.Defaults.Coef()), "family %d", id)
				Expect(s.Params.TMin).To(Equal(f.Defaults.T0), "family %d", id)
				Expect(s.Params.TMax).To(Equal(f.Defaults.T1), "family %d", id)
			}
		})

		It("ignores unregistered ids", func() {
			repeat(s, explorer.KeyUp, 3)
			before := s.Params

			for _, id := range []int{0, 7, -3} {
				s.ResetToDefaults(id)
				Expect(s.Params).To(Equal(before))
			}
		})

		It("is bound to the r key for the current family", func() {
			press(s, explorer.KeyFamily4)
			repeat(s, explorer.KeyDown, 12)
			press(s, explorer.KeyPageUp)

			press(s, explorer.KeyReset)

			Expect(s.Params.FamilyID).To(Equal(4))
			Expect(s.Params.Coef).To(Equal([3]float64{7.6, 5.1, 0}))
			Expect(s.Params.TMax).To(Equal(10.0))
		})
	})

	Describe("family keys", func() {
		It("selects the family and loads its defaults", func() {
			press(s, explorer.KeyFamily3)
			Expect(s.Params.FamilyID).To(Equal(3))
			Expect(s.Params.Coef).To(Equal([3]float64{1, 8.6, 0}))
			Expect(s.Params.TMax).To(Equal(10 * math.Pi))
		})

		It("runs the family 2 nudging scenario", func() {
			press(s, explorer.KeyFamily2)
			repeat(s, explorer.KeyUp, 10)

			Expect(s.Params.ActiveCoef).To(Equal(0))
			Expect(s.Params.Coef[0]).To(BeNumerically("~", 1.10, 1e-9))
			Expect(s.Params.Coef[1]).To(Equal(17.0))
			Expect(s.Params.Coef[2]).To(Equal(0.0))
			Expect(s.Anim.Enabled).To(BeFalse())
		})
	})

	Describe("coefficient selection", func() {
		It("cycles forward with right", func() {
			seen := []int{}
			for i := 0; i < 6; i++ {
				press(s, explorer.KeyRight)
				seen = append(seen, s.Params.ActiveCoef)
			}
			Expect(seen).To(Equal([]int{1, 2, 0, 1, 2, 0}))
		})

		It("cycles backward with left", func() {
			seen := []int{}
			for i := 0; i < 6; i++ {
				press(s, explorer.KeyLeft)
				seen = append(seen, s.Params.ActiveCoef)
			}
			Expect(seen).To(Equal([]int{2, 1, 0, 2, 1, 0}))
		})

		It("nudges only the active coefficient", func() {
			press(s, explorer.KeyRight, explorer.KeyRight)
			press(s, explorer.KeyDown)
			Expect(s.Params.Coef[0]).To(Equal(1.0))
			Expect(s.Params.Coef[1]).To(Equal(1.0))
			Expect(s.Params.Coef[2]).To(BeNumerically("~", -0.01, 1e-12))
		})
	})

	Describe("arrow keys and animation", func() {
		DescribeTable("always disable animation",
			func(key explorer.Key, enabled bool) {
				s.Anim.Enabled = enabled
				press(s, key)
				Expect(s.Anim.Enabled).To(BeFalse())
			},
			Entry("up while animating", explorer.KeyUp, true),
			Entry("up while still", explorer.KeyUp, false),
			Entry("down while animating", explorer.KeyDown, true),
			Entry("down while still", explorer.KeyDown, false),
		)

		It("leaves left and right alone", func() {
			s.Anim.Enabled = true
			press(s, explorer.KeyLeft, explorer.KeyRight)
			Expect(s.Anim.Enabled).To(BeTrue())
		})
	})

	Describe("domain keys", func() {
		It("moves tMax only", func() {
			repeat(s, explorer.KeyPageUp, 5)
			Expect(s.Params.TMax).To(BeNumerically("~", 2*math.Pi+0.05, 1e-9))
			repeat(s, explorer.KeyPageDown, 10)
			Expect(s.Params.TMax).To(BeNumerically("~", 2*math.Pi-0.05, 1e-9))
			Expect(s.Params.TMin).To(Equal(0.0))
		})
	})

	Describe("sample count", func() {
		It("steps down from the initial capacity and refuses to climb past the ceiling", func() {
			press(s, explorer.KeyFewerSamples)
			Expect(s.Params.SampleCount).To(Equal(59500))

			press(s, explorer.KeyMoreSamples)
			Expect(s.Params.SampleCount).To(Equal(59500))
		})

		It("never falls through from + to -", func() {
			Expect(s.Params.SampleCount).To(Equal(60000))
			press(s, explorer.KeyMoreSamples)
			Expect(s.Params.SampleCount).To(Equal(60000))
		})

		It("stops at the floor", func() {
			repeat(s, explorer.KeyFewerSamples, 200)
			Expect(s.Params.SampleCount).To(Equal(500))
			press(s, explorer.KeyMoreSamples)
			Expect(s.Params.SampleCount).To(Equal(1000))
		})

		It("stays bounded and on the step grid under arbitrary presses", func() {
			press(s, explorer.KeyFewerSamples)
			keys := []explorer.Key{explorer.KeyMoreSamples, explorer.KeyFewerSamples}
			seed := uint32(12345)
			prev := s.Params.SampleCount
			for i := 0; i < 5000; i++ {
				seed = seed*1664525 + 1013904223
				n := s.Params.SampleCount
				press(s, keys[(seed>>16)%2])
				n2 := s.Params.SampleCount
				Expect(n2).To(BeNumerically(">=", explorer.MinSamples))
				Expect(n2).To(BeNumerically("<=", explorer.MaxSamples))
				Expect(n2 % explorer.SampleStep).To(Equal(0))
				Expect(n2 - n).To(BeElementOf(-500, 0, 500))
				prev = n2
			}
			Expect(prev).To(BeNumerically("<=", explorer.SampleCapacity))
		})
	})

	Describe("draw mode", func() {
		It("toggles with p", func() {
			press(s, explorer.KeyToggleDrawMode)
			Expect(s.Mode).To(Equal(explorer.DrawLines))
			press(s, explorer.KeyToggleDrawMode)
			Expect(s.Mode).To(Equal(explorer.DrawPoints))
		})

		It("never touches parameters or view", func() {
			params, view := s.Params, s.View
			press(s, explorer.KeyToggleDrawMode)
			Expect(s.Params).To(Equal(params))
			Expect(s.View).To(Equal(view))
		})
	})

	Describe("unknown input", func() {
		It("is ignored", func() {
			params, view, anim := s.Params, s.View, s.Anim
			s.Apply(explorer.KeyPress{Key: explorer.ParseKey("x")})
			s.Apply(explorer.KeyPress{Key: explorer.Key(999)})
			Expect(s.Params).To(Equal(params))
			Expect(s.View).To(Equal(view))
			Expect(s.Anim).To(Equal(anim))
		})
	})

	Describe("zoom", func() {
		It("zooms in on negative wheel delta and out otherwise", func() {
			s.Apply(explorer.Wheel{DeltaY: -1})
			Expect(s.View.Scale).To(BeNumerically("~", 1.1, 1e-12))
			s.Apply(explorer.Wheel{DeltaY: 3})
			Expect(s.View.Scale).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("returns to the original scale after matched ticks", func() {
			for i := 0; i < 25; i++ {
				s.Apply(explorer.Wheel{DeltaY: -1})
			}
			for i := 0; i < 25; i++ {
				s.Apply(explorer.Wheel{DeltaY: 1})
			}
			Expect(s.View.Scale).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("keeps the scale positive", func() {
			for i := 0; i < 2000; i++ {
				s.Apply(explorer.Wheel{DeltaY: 1})
			}
			Expect(s.View.Scale).To(BeNumerically(">", 0))
		})
	})

	Describe("drag", func() {
		BeforeEach(func() {
			s.Apply(explorer.Resize{Width: 800, Height: 400})
		})

		It("pans by normalized pixel deltas while dragging", func() {
			s.Apply(explorer.PointerDown{X: 100, Y: 100})
			s.Apply(explorer.PointerMove{X: 180, Y: 60})
			Expect(s.View.Offset[0]).To(BeNumerically("~", 80.0/800*2, 1e-12))
			Expect(s.View.Offset[1]).To(BeNumerically("~", 40.0/400*2, 1e-12))

			s.Apply(explorer.PointerMove{X: 180, Y: 160})
			Expect(s.View.Offset[1]).To(BeNumerically("~", 0.2-0.5, 1e-12))
		})

		It("ignores movement without a press", func() {
			s.Apply(explorer.PointerMove{X: 500, Y: 500})
			Expect(s.View.Offset).To(Equal([2]float64{0, 0}))
		})

		It("stops at pointer up", func() {
			s.Apply(explorer.PointerDown{X: 0, Y: 0})
			s.Apply(explorer.PointerUp{})
			s.Apply(explorer.PointerMove{X: 400, Y: 0})
			Expect(s.View.Offset).To(Equal([2]float64{0, 0}))
			Expect(s.Dragging()).To(BeFalse())
		})

		It("is cancelled by hue slider input", func() {
			s.Apply(explorer.PointerDown{X: 0, Y: 0})
			s.Apply(explorer.HueInput{Degrees: 90})
			Expect(s.Dragging()).To(BeFalse())
			Expect(s.Hue()).To(BeNumerically("~", 0.25, 1e-12))
		})
	})

	Describe("resize", func() {
		It("recomputes only the aspect ratio", func() {
			params, view := s.Params, s.View
			s.Apply(explorer.Resize{Width: 1280, Height: 720})
			Expect(s.Aspect()).To(BeNumerically("~", 1280.0/720, 1e-12))
			Expect(s.Params).To(Equal(params))
			Expect(s.View).To(Equal(view))
		})

		It("ignores degenerate surfaces", func() {
			s.Apply(explorer.Resize{Width: 100, Height: 0})
			Expect(s.Aspect()).To(Equal(1.0))
		})
	})

	Describe("animation", func() {
		It("drifts the active coefficient by speed per frame without bounds", func() {
			s.Anim.Speed = 0.01
			s.Anim.Direction = 1
			start := s.Params.Coef[0]
			for i := 0; i < 500; i++ {
				s.Anim.Step(&s.Params)
			}
			Expect(s.Params.Coef[0] - start).To(BeNumerically("~", 5.0, 1e-9))
		})

		It("runs backwards with direction -1", func() {
			s.Anim.Direction = -1
			press(s, explorer.KeyRight)
			s.Anim.Step(&s.Params)
			Expect(s.Params.Coef[1]).To(BeNumerically("~", 0.99, 1e-12))
		})

		It("resets the hue instead of wrapping it", func() {
			s.Anim.Hue = 0.999
			s.Anim.Step(&s.Params)
			Expect(s.Anim.Hue).To(Equal(0.0))
		})

		It("cycles the hue within [0, 1] over many frames", func() {
			resets := 0
			for i := 0; i < 2000; i++ {
				before := s.Anim.Hue
				s.Anim.Step(&s.Params)
				Expect(s.Anim.Hue).To(BeNumerically(">=", 0))
				Expect(s.Anim.Hue).To(BeNumerically("<=", 1.0))
				if s.Anim.Hue < before {
					Expect(s.Anim.Hue).To(Equal(0.0))
					resets++
				}
			}
			Expect(resets).To(BeNumerically(">=", 3))
		})
	})

	Describe("Frame", func() {
		var b *recordingBackend

		BeforeEach(func() {
			b = &recordingBackend{}
		})

		It("clears, publishes and draws in that order every frame", func() {
			Expect(s.Frame(b)).To(Succeed())
			Expect(s.Frame(b)).To(Succeed())
			Expect(b.calls).To(Equal([]string{"clear", "publish", "draw", "clear", "publish", "draw"}))
			Expect(b.counts).To(Equal([]int{60000, 60000}))
			Expect(s.Frames()).To(Equal(uint64(2)))
		})

		It("applies queued input in arrival order before reading state", func() {
			s.Enqueue(
				explorer.KeyPress{Key: explorer.KeyFamily2},
				explorer.KeyPress{Key: explorer.KeyRight},
				explorer.KeyPress{Key: explorer.KeyUp},
				explorer.KeyPress{Key: explorer.KeyFewerSamples},
				explorer.KeyPress{Key: explorer.KeyToggleDrawMode},
				explorer.Wheel{DeltaY: -1},
			)
			Expect(s.Pending()).To(Equal(6))
			Expect(s.Params.FamilyID).To(Equal(1))

			Expect(s.Frame(b)).To(Succeed())

			Expect(s.Pending()).To(Equal(0))
			u := b.uniforms[0]
			Expect(u.FamilyType).To(Equal(2))
			Expect(u.Coefficients[1]).To(BeNumerically("~", 17.01, 1e-9))
			Expect(u.SampleCount).To(Equal(59500))
			Expect(u.ZoomScale).To(BeNumerically("~", 1.1, 1e-12))
			Expect(b.modes[0]).To(Equal(explorer.DrawLines))
			Expect(b.counts[0]).To(Equal(59500))
		})

		It("steps the animation before publishing", func() {
			s.Apply(explorer.KeyPress{Key: explorer.KeyToggleAnimation})
			Expect(s.Frame(b)).To(Succeed())
			u := b.uniforms[0]
			Expect(u.Coefficients[0]).To(BeNumerically("~", 1.01, 1e-12))
			Expect(u.Hue).To(BeNumerically("~", 0.002, 1e-12))
		})

		It("overrides the slider hue once animation runs", func() {
			s.Enqueue(explorer.HueInput{Degrees: 180})
			Expect(s.Frame(b)).To(Succeed())
			Expect(b.uniforms[0].Hue).To(BeNumerically("~", 0.5, 1e-12))

			s.Enqueue(explorer.KeyPress{Key: explorer.KeyToggleAnimation})
			Expect(s.Frame(b)).To(Succeed())
			Expect(b.uniforms[1].Hue).To(BeNumerically("~", 0.002, 1e-12))
		})

		It("stops animating at the next frame boundary after toggling off", func() {
			s.Anim.Enabled = true
			Expect(s.Frame(b)).To(Succeed())
			s.Enqueue(explorer.KeyPress{Key: explorer.KeyToggleAnimation})
			Expect(s.Frame(b)).To(Succeed())
			Expect(b.uniforms[1].Coefficients).To(Equal(b.uniforms[0].Coefficients))
		})

		It("publishes view and aspect", func() {
			s.Enqueue(explorer.Resize{Width: 200, Height: 100})
			s.Enqueue(explorer.PointerDown{X: 0, Y: 0}, explorer.PointerMove{X: 50, Y: 0})
			Expect(s.Frame(b)).To(Succeed())
			u := b.uniforms[0]
			Expect(u.AspectRatio).To(Equal(2.0))
			Expect(u.PanOffset[0]).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("fails without a backend", func() {
			Expect(s.Frame(nil)).To(MatchError(explorer.ErrBackendUnavailable))
			b.down = true
			Expect(s.Frame(b)).To(MatchError(explorer.ErrBackendUnavailable))
			Expect(b.calls).To(BeEmpty())
		})
	})

	Describe("Attach", func() {
		It("reports an unavailable backend", func() {
			Expect(s.Attach(nil)).To(MatchError(explorer.ErrBackendUnavailable))
			err := s.Attach(&recordingBackend{down: true})
			Expect(err).To(MatchError(explorer.ErrBackendUnavailable))
			Expect(err.Error()).To(ContainSubstring("recording"))
			Expect(s.Attach(&recordingBackend{})).To(Succeed())
		})
	})

	Describe("observer", func() {
		var o *recordingObserver

		BeforeEach(func() {
			o = &recordingObserver{}
			s = explorer.NewSession(explorer.WithObserver(o))
		})

		It("hides the hue control while animating", func() {
			press(s, explorer.KeyToggleAnimation)
			press(s, explorer.KeyToggleAnimation)
			Expect(o.hueShown).To(Equal([]bool{false, true}))
		})

		It("shows the hue control again when an arrow cancels animation", func() {
			press(s, explorer.KeyToggleAnimation)
			press(s, explorer.KeyUp)
			press(s, explorer.KeyUp)
			Expect(o.hueShown).To(Equal([]bool{false, true}))
		})

		It("receives a readout after every parameter change", func() {
			press(s, explorer.KeyFamily5)
			press(s, explorer.KeyUp)
			press(s, explorer.KeyPageUp)
			Expect(o.readouts).To(HaveLen(3))
			last := o.readouts[2]
			Expect(last.Coef[0]).To(BeNumerically("~", 1.01, 1e-12))
			Expect(last.TMax).To(BeNumerically("~", 10.01, 1e-12))
			Expect(last.String()).To(Equal("1.01, 4.00, 0.00  t∈[0.00, 10.01]"))
		})

		It("receives a readout every animated frame", func() {
			s.Anim.Enabled = true
			b := &recordingBackend{}
			for i := 0; i < 3; i++ {
				Expect(s.Frame(b)).To(Succeed())
			}
			Expect(o.readouts).To(HaveLen(3))
		})
	})

	Describe("options", func() {
		It("applies configuration in order", func() {
			s = explorer.NewSession(
				explorer.WithFamily(6),
				explorer.WithCoefficients([3]float64{5, 2, 0.5}),
				explorer.WithSampleCount(30000),
				explorer.WithAnimation(true, 0.05, -1),
				explorer.WithDrawMode(explorer.DrawLines),
				explorer.WithView(2, [2]float64{0.1, 0.2}),
				explorer.WithSurface(300, 100),
			)
			Expect(s.Params.FamilyID).To(Equal(6))
			Expect(s.Params.Coef).To(Equal([3]float64{5, 2, 0.5}))
			Expect(s.Params.TMax).To(Equal(2 * math.Pi))
			Expect(s.Params.SampleCount).To(Equal(30000))
			Expect(s.Anim).To(Equal(explorer.AnimationState{Enabled: true, Speed: 0.05, Direction: -1}))
			Expect(s.Mode).To(Equal(explorer.DrawLines))
			Expect(s.View.Scale).To(Equal(2.0))
			Expect(s.Aspect()).To(Equal(3.0))
		})

		It("ignores out of range values", func() {
			s = explorer.NewSession(
				explorer.WithFamily(42),
				explorer.WithSampleCount(70000),
				explorer.WithAnimation(false, -1, 3),
				explorer.WithView(-2, [2]float64{}),
			)
			Expect(s.Params.FamilyID).To(Equal(1))
			Expect(s.Params.SampleCount).To(Equal(60000))
			Expect(s.Anim.Speed).To(Equal(explorer.DefaultSpeed))
			Expect(s.Anim.Direction).To(Equal(1.0))
			Expect(s.View.Scale).To(Equal(1.0))
		})
	})
})

var _ = Describe("ParseKey", func() {
	DescribeTable("maps frontend key names",
		func(name string, want explorer.Key) {
			Expect(explorer.ParseKey(name)).To(Equal(want))
		},
		Entry("digit", "4", explorer.KeyFamily4),
		Entry("space", " ", explorer.KeyToggleAnimation),
		Entry("bubbletea arrow", "up", explorer.KeyUp),
		Entry("dom arrow", "ArrowLeft", explorer.KeyLeft),
		Entry("bubbletea page", "pgdown", explorer.KeyPageDown),
		Entry("dom page", "PageUp", explorer.KeyPageUp),
		Entry("plus", "+", explorer.KeyMoreSamples),
		Entry("minus", "-", explorer.KeyFewerSamples),
		Entry("unknown", "z", explorer.KeyUnknown),
		Entry("digit out of range", "7", explorer.KeyUnknown),
	)

	It("names digit keys by their family", func() {
		Expect(explorer.KeyFamily6.Family()).To(Equal(6))
		Expect(explorer.KeyFamily6.String()).To(Equal("6"))
		Expect(explorer.KeyUp.Family()).To(Equal(0))
	})
})

var _ = Describe("DrawMode", func() {
	It("parses and prints", func() {
		m, err := explorer.ParseDrawMode("Lines")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(explorer.DrawLines))
		Expect(m.String()).To(Equal("lines"))

		_, err = explorer.ParseDrawMode("triangles")
		Expect(err).To(MatchError(explorer.ErrUnknownDrawMode))
	})
})
