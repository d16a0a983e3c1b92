package viz

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
	"github.com/san-kum/curvelab/internal/palette"
)

const (
	statsWidth      = 44
	historyCapacity = 300
	hueSliderStep   = 10.0

	// canvas origin inside the terminal, from canvasStyle padding
	canvasLeft = 2
	canvasTop  = 1

	minCols, minRows = 16, 6
)

type TickMsg time.Time

// panel is the session observer behind the stats column.
type panel struct {
	readout    explorer.Readout
	hueVisible bool
}

func (p *panel) OnReadout(r explorer.Readout) { p.readout = r }
func (p *panel) OnHueControl(v bool)          { p.hueVisible = v }

// Options configures the terminal explorer.
type Options struct {
	FPS        int
	Theme      string
	RecordPath string
	Session    []explorer.Option
}

// App is the bubbletea model driving an explorer session on a braille canvas.
type App struct {
	session  *explorer.Session
	backend  *CanvasBackend
	panel    *panel
	recorder *Recorder

	fps           int
	width, height int
	slider        float64
	coefHistory   []float64
	fpsHistory    []float64
	recording     bool
	showHelp      bool
	status        string
	lastFrame     time.Time
	measuredFPS   float64
	err           error
	log           *slog.Logger
}

// NewApp builds the session and checks the canvas backend. A zero FPS
// defaults to 60.
func NewApp(opts Options) (App, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}
	if opts.RecordPath == "" {
		opts.RecordPath = "curvelab.gif"
	}

	p := &panel{hueVisible: true}
	sessOpts := append([]explorer.Option{explorer.WithObserver(p)}, opts.Session...)
	s := explorer.NewSession(sessOpts...)
	p.readout = s.Readout()
	p.hueVisible = !s.Anim.Enabled

	cols, rows := canvasSize(80, 24)
	b := NewCanvasBackend(cols, rows)
	if err := s.Attach(b); err != nil {
		return App{}, err
	}
	dw, dh := b.Canvas.Dots()
	s.Apply(explorer.Resize{Width: float64(dw), Height: float64(dh)})

	return App{
		session:     s,
		backend:     b,
		panel:       p,
		recorder:    NewRecorder(opts.RecordPath),
		fps:         opts.FPS,
		width:       80,
		height:      24,
		slider:      s.Hue() * 360,
		coefHistory: make([]float64, 0, historyCapacity),
		fpsHistory:  make([]float64, 0, historyCapacity),
		log:         explorer.Logger(),
	}, nil
}

// Run starts the terminal program and blocks until it exits.
func Run(app App) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(App); ok && m.err != nil {
		return m.err
	}
	return nil
}

// Session exposes the underlying session.
func (m App) Session() *explorer.Session { return m.session }

func (m App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m App) Init() tea.Cmd { return m.tick() }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		return m.frame(time.Time(msg))
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		NextTheme()
	case "g":
		m.toggleRecording()
	case "[":
		m.moveSlider(-hueSliderStep)
	case "]":
		m.moveSlider(hueSliderStep)
	default:
		if k := explorer.ParseKey(msg.String()); k != explorer.KeyUnknown {
			m.session.Enqueue(explorer.KeyPress{Key: k})
		}
	}
	return m, nil
}

// handleMouse converts cell positions to canvas dots so that pan deltas are
// measured in the same units as the Resize sent to the session.
func (m App) handleMouse(msg tea.MouseMsg) {
	x := float64((msg.X - canvasLeft) * 2)
	y := float64((msg.Y - canvasTop) * 4)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.session.Enqueue(explorer.Wheel{DeltaY: -1})
	case msg.Button == tea.MouseButtonWheelDown:
		m.session.Enqueue(explorer.Wheel{DeltaY: 1})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.session.Enqueue(explorer.PointerDown{X: x, Y: y})
	case msg.Action == tea.MouseActionMotion:
		m.session.Enqueue(explorer.PointerMove{X: x, Y: y})
	case msg.Action == tea.MouseActionRelease:
		m.session.Enqueue(explorer.PointerUp{})
	}
}

func (m *App) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.width, m.height = w, h
	cols, rows := canvasSize(w, h)
	m.backend.Resize(cols, rows)
	dw, dh := m.backend.Canvas.Dots()
	m.session.Enqueue(explorer.Resize{Width: float64(dw), Height: float64(dh)})
}

// moveSlider nudges the hue slider. The slider is hidden, and ignored,
// while the animation runs.
func (m *App) moveSlider(delta float64) {
	if !m.panel.hueVisible {
		return
	}
	m.slider = math.Max(0, math.Min(360, m.slider+delta))
	m.session.Enqueue(explorer.HueInput{Degrees: m.slider})
}

func (m *App) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.status = "recording"
		return
	}
	m.recording = false
	n := m.recorder.Len()
	if err := m.recorder.Save(); err != nil {
		m.log.Warn("recording not saved", "err", err)
		m.status = err.Error()
		return
	}
	m.log.Info("recording saved", "path", m.recorder.Path, "frames", n)
	m.status = fmt.Sprintf("saved %s (%d frames)", m.recorder.Path, n)
}

func (m App) frame(now time.Time) (App, tea.Cmd) {
	if err := m.session.Frame(m.backend); err != nil {
		m.err = err
		return m, tea.Quit
	}
	if !m.lastFrame.IsZero() {
		if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
			m.measuredFPS = 0.9*m.measuredFPS + 0.1/dt
		}
		m.fpsHistory = appendCapped(m.fpsHistory, m.measuredFPS)
	}
	m.lastFrame = now

	p := m.session.Params
	m.coefHistory = appendCapped(m.coefHistory, p.Coef[p.ActiveCoef])
	if m.recording {
		m.recorder.Capture(m.backend.Canvas, m.session.Hue())
	}
	return m, m.tick()
}

func (m App) View() string {
	hue := m.session.Hue()
	curveStyle := canvasStyle.Foreground(lipgloss.Color(palette.Hex(hue)))
	canvasView := curveStyle.Render(m.backend.Canvas.String())

	statsView := statsStyle.BorderForeground(CurrentTheme.Muted).Render(m.stats())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m App) stats() string {
	header, label, value, active, muted := themed()
	s := m.session
	p := s.Params
	f, _ := curve.Lookup(p.FamilyID)

	var b strings.Builder
	b.WriteString(GradientText(strings.ToUpper(f.Name), CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	b.WriteString(muted.Render(f.Description) + "\n\n")

	status := "STILL"
	if s.Anim.Enabled {
		status = "ANIMATING"
		if s.Anim.Direction < 0 {
			status += " ◀"
		} else {
			status += " ▶"
		}
	}
	if m.recording {
		status += fmt.Sprintf("  ● REC %d", m.recorder.Len())
	}
	b.WriteString(header.Render(status) + "\n\n")

	for i, name := range []string{"a", "b", "c"} {
		line := fmt.Sprintf("%-8s %8.3f", name, p.Coef[i])
		if i == p.ActiveCoef {
			b.WriteString(active.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + value.Render(line) + "\n")
		}
	}
	b.WriteString(label.Render("t") + value.Render(fmt.Sprintf("[%.2f, %.2f]", p.TMin, p.TMax)) + "\n")
	b.WriteString(label.Render("samples") + value.Render(fmt.Sprintf("%-6d ", p.SampleCount)) +
		ProgressBar(float64(p.SampleCount)/explorer.SampleCapacity, 12) + "\n")
	b.WriteString(label.Render("mode") + value.Render(s.Mode.String()) + "\n")
	b.WriteString(label.Render("zoom") + value.Render(fmt.Sprintf("%.3fx", s.View.Scale)) + "\n")
	b.WriteString(label.Render("offset") + value.Render(fmt.Sprintf("(%.2f, %.2f)", s.View.Offset[0], s.View.Offset[1])) + "\n")
	b.WriteString(label.Render("hue") + HueBar(s.Hue(), 20, m.panel.hueVisible) + "\n")
	b.WriteString(label.Render("fps") + value.Render(fmt.Sprintf("%-4.0f ", m.measuredFPS)) +
		SparklineChart(m.fpsHistory, 16) + "\n")

	if len(m.coefHistory) > 1 {
		chart := asciigraph.Plot(m.coefHistory,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Precision(2),
			asciigraph.Caption("active coefficient"))
		b.WriteString(graphStyle.Foreground(CurrentTheme.Success).Render(chart) + "\n")
	}

	b.WriteString(muted.Render(m.panel.readout.String()) + "\n")
	if m.status != "" {
		b.WriteString(muted.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Foreground(CurrentTheme.Muted).Render(
		Separator(statsWidth-6) + "\n1-6:Family SP:Animate R:Reset\n←→:Coef ↑↓:Nudge PgUp/Dn:Domain\n+/-:Samples P:Mode ?:Help Q:Quit"))
	return b.String()
}

const helpOverlay = `
╔══════════════════════════════════════════╗
║             KEYBOARD SHORTCUTS           ║
╠══════════════════════════════════════════╣
║  1-6       - Select curve family         ║
║  Space     - Toggle animation            ║
║  Left/Right- Select coefficient          ║
║  Up/Down   - Nudge coefficient (±0.01)   ║
║  PgUp/PgDn - Extend/shrink domain        ║
║  R         - Reset family defaults       ║
║  P         - Points / lines              ║
║  + / -     - More / fewer samples        ║
║  Wheel     - Zoom     Drag - Pan         ║
║  [ / ]     - Hue slider                  ║
║  T         - Cycle themes                ║
║  G         - Toggle GIF recording        ║
║  ?         - Toggle this help            ║
║  Q         - Quit                        ║
╚══════════════════════════════════════════╝`

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// canvasSize returns the braille canvas size in cells for a terminal of
// w×h cells, leaving room for the stats column.
func canvasSize(w, h int) (int, int) {
	cols := w - statsWidth - 2*canvasLeft - 2
	rows := h - 2*canvasTop
	return max(cols, minCols), max(rows, minRows)
}
