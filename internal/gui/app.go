package gui

import (
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
	"github.com/san-kum/curvelab/internal/palette"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	defaultWidth  = 1280
	defaultHeight = 720

	sliderX, sliderW, sliderH = 30, 360, 10
	sliderStep                = 10.0
)

// keyBindings maps raylib keys to dispatcher keys. Keys in repeatable also
// fire on auto-repeat, like a browser keydown.
var keyBindings = []struct {
	code       int32
	key        explorer.Key
	repeatable bool
}{
	{rl.KeyOne, explorer.KeyFamily1, false},
	{rl.KeyTwo, explorer.KeyFamily2, false},
	{rl.KeyThree, explorer.KeyFamily3, false},
	{rl.KeyFour, explorer.KeyFamily4, false},
	{rl.KeyFive, explorer.KeyFamily5, false},
	{rl.KeySix, explorer.KeyFamily6, false},
	{rl.KeySpace, explorer.KeyToggleAnimation, false},
	{rl.KeyUp, explorer.KeyUp, true},
	{rl.KeyDown, explorer.KeyDown, true},
	{rl.KeyLeft, explorer.KeyLeft, false},
	{rl.KeyRight, explorer.KeyRight, false},
	{rl.KeyPageUp, explorer.KeyPageUp, true},
	{rl.KeyPageDown, explorer.KeyPageDown, true},
	{rl.KeyR, explorer.KeyReset, false},
	{rl.KeyP, explorer.KeyToggleDrawMode, false},
}

type hud struct {
	readout    explorer.Readout
	hueVisible bool
}

func (h *hud) OnReadout(r explorer.Readout) { h.readout = r }
func (h *hud) OnHueControl(v bool)          { h.hueVisible = v }

// Options configures the window frontend.
type Options struct {
	FPS     int
	Session []explorer.Option
}

type App struct {
	Session *explorer.Session
	Backend *Backend

	hud          *hud
	slider       float64
	sliderActive bool
	quit         bool
	log          *slog.Logger
}

func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(defaultWidth, defaultHeight, "curvelab")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(opts Options) (*App, error) {
	h := &hud{hueVisible: true}
	s := explorer.NewSession(append([]explorer.Option{
		explorer.WithObserver(h),
		explorer.WithSurface(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())),
	}, opts.Session...)...)
	h.readout = s.Readout()
	h.hueVisible = !s.Anim.Enabled

	b := NewBackend()
	if err := s.Attach(b); err != nil {
		return nil, err
	}
	return &App{
		Session: s,
		Backend: b,
		hud:     h,
		slider:  s.Hue() * 360,
		log:     explorer.Logger(),
	}, nil
}

// Run opens the window and blocks until it is closed or q is pressed.
func Run(opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts.FPS)
	defer rl.CloseWindow()

	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		if err := a.Draw(); err != nil {
			return err
		}
	}
	return nil
}

// Update queues this frame's input.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsWindowResized() {
		a.Session.Enqueue(explorer.Resize{
			Width:  float64(rl.GetScreenWidth()),
			Height: float64(rl.GetScreenHeight()),
		})
	}

	for _, kb := range keyBindings {
		if rl.IsKeyPressed(kb.code) || (kb.repeatable && rl.IsKeyPressedRepeat(kb.code)) {
			a.Session.Enqueue(explorer.KeyPress{Key: kb.key})
		}
	}
	// '+' and '-' depend on the keyboard layout, so read them as characters.
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		switch ch {
		case '+', '-':
			a.Session.Enqueue(explorer.KeyPress{Key: explorer.ParseKey(string(rune(ch)))})
		case '[':
			a.moveSlider(-sliderStep)
		case ']':
			a.moveSlider(sliderStep)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Session.Enqueue(explorer.Wheel{DeltaY: float64(-wheel)})
	}
	a.pointer()
}

func (a *App) pointer() {
	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		if a.hud.hueVisible && a.onSlider(pos) {
			a.sliderActive = true
			a.setSlider(x - sliderX)
			return
		}
		a.Session.Enqueue(explorer.PointerDown{X: x, Y: y})
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		a.sliderActive = false
		a.Session.Enqueue(explorer.PointerUp{})
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		if a.sliderActive {
			a.setSlider(x - sliderX)
			return
		}
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			a.Session.Enqueue(explorer.PointerMove{X: x, Y: y})
		}
	}
}

func (a *App) sliderY() float32 { return float32(rl.GetScreenHeight()) - 70 }

func (a *App) onSlider(p rl.Vector2) bool {
	r := rl.NewRectangle(sliderX, a.sliderY()-4, sliderW, sliderH+8)
	return rl.CheckCollisionPointRec(p, r)
}

func (a *App) moveSlider(delta float64) {
	if a.hud.hueVisible {
		a.setSlider(a.slider + delta)
	}
}

func (a *App) setSlider(deg float64) {
	a.slider = math.Max(0, math.Min(360, deg))
	a.Session.Enqueue(explorer.HueInput{Degrees: a.slider})
}

// Draw renders one frame.
func (a *App) Draw() error {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	if err := a.Session.Frame(a.Backend); err != nil {
		return fmt.Errorf("gui: frame %d: %w", a.Session.Frames(), err)
	}
	a.DrawHUD()
	return nil
}

func (a *App) DrawHUD() {
	s := a.Session
	p := s.Params
	f, _ := curve.Lookup(p.FamilyID)
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())

	drawText("curvelab", 30, 30, 24, ColSelect)
	drawText(fmt.Sprintf(":: %d %s", f.ID, f.Name), 160, 36, 16, ColText)

	status, col := "STILL", ColTextDim
	if s.Anim.Enabled {
		status, col = "ANIMATING", ColSelect
	}
	drawText(status, w-130, 30, 16, col)

	for i, name := range []string{"a", "b", "c"} {
		c := ColText
		if i == p.ActiveCoef {
			c = ColSelect
		}
		drawText(fmt.Sprintf("%s %9.3f", name, p.Coef[i]), 30, 70+i*20, 16, c)
	}
	drawText(fmt.Sprintf("t   [%.2f, %.2f]", p.TMin, p.TMax), 30, 130, 16, ColText)
	drawText(fmt.Sprintf("n   %d  %s", p.SampleCount, s.Mode), 30, 150, 16, ColText)
	drawText(fmt.Sprintf("zoom %.3fx  offset (%.2f, %.2f)", s.View.Scale, s.View.Offset[0], s.View.Offset[1]), 30, 170, 16, ColText)

	if a.hud.hueVisible {
		a.drawSlider()
	}
	drawText(a.hud.readout.String(), 30, h-50, 14, ColAccent)
	drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-30, 14, ColTextDim)
	drawText("[1-6] FAMILY [SPACE] ANIMATE [ARROWS] COEF [PGUP/DN] DOMAIN [R] RESET [P] MODE [+/-] SAMPLES [Q] QUIT",
		200, h-30, 14, ColTextDim)
}

func (a *App) drawSlider() {
	y := int32(a.sliderY())
	strip := palette.Strip(sliderW)
	for i, c := range strip {
		r, g, b := c.RGB255()
		rl.DrawRectangle(int32(sliderX+i), y, 1, sliderH, rl.NewColor(r, g, b, 255))
	}
	mx := int32(sliderX + a.slider/360*float64(sliderW-1))
	rl.DrawRectangle(mx-1, y-4, 3, sliderH+8, ColSelect)
}

func drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(rl.GetFontDefault(), text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
