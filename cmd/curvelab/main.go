package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/curvelab/internal/config"
	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
	"github.com/san-kum/curvelab/internal/export"
	"github.com/san-kum/curvelab/internal/gui"
	"github.com/san-kum/curvelab/internal/viz"
)

var (
	configFile string
	preset     string
	family     string
	samples    int
	drawMode   string
	animate    bool
	speed      float64
	direction  float64
	fps        int
	theme      string
	// Logging
	logFile  string
	logLevel string
	logSink  io.Closer
	// Output
	outPath    string
	imgWidth   int
	imgHeight  int
	recordPath string
	plotPoints int
	force      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "curvelab",
		Short:             "interactive parametric curve explorer",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logSink != nil {
				logSink.Close()
			}
		},
		RunE: runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addSessionFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "explore curves in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addSessionFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&recordPath, "record", "curvelab.gif", "GIF recording path")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "explore curves in a native window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSessionFlags(guiCmd)

	familiesCmd := &cobra.Command{
		Use:   "families",
		Short: "list registered curve families",
		Args:  cobra.NoArgs,
		RunE:  listFamilies,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [family]",
		Short: "plot x(t) and y(t) for a family",
		Args:  cobra.ExactArgs(1),
		RunE:  plotFamily,
	}
	addSessionFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotPoints, "points", 80, "samples per plot")

	exportCmd := &cobra.Command{
		Use:   "export [family]",
		Short: "render one frame to .png or .svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportFamily,
	}
	addSessionFlags(exportCmd)
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "curve.png", "output file (.png or .svg)")
	exportCmd.Flags().IntVar(&imgWidth, "width", 1280, "image width")
	exportCmd.Flags().IntVar(&imgHeight, "height", 720, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the current settings",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addSessionFlags(configInitCmd)
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, familiesCmd, plotCmd, exportCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset as family/name, or name with --family")
	cmd.Flags().StringVarP(&family, "family", "f", "1", "curve family id or name")
	cmd.Flags().IntVarP(&samples, "samples", "n", def.SampleCount, "sample count")
	cmd.Flags().StringVar(&drawMode, "mode", def.DrawMode.String(), "draw mode (points, lines)")
	cmd.Flags().BoolVar(&animate, "animate", false, "start animating")
	cmd.Flags().Float64Var(&speed, "speed", def.Animation.Speed, "animation speed per frame")
	cmd.Flags().Float64Var(&direction, "direction", def.Animation.Direction, "animation direction (1 or -1)")
	cmd.Flags().IntVar(&fps, "fps", def.FPS, "frame rate")
	cmd.Flags().StringVar(&theme, "theme", def.Theme, "terminal theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if logFile == "" {
		return nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logSink = f
	explorer.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// resolveConfig builds the session config: preset first, then the config
// file, then explicitly set flags. A positional family argument wins over
// --family.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	flags := cmd.Flags()
	famArg := family
	if len(args) > 0 {
		famArg = args[0]
	}

	var base *config.Config
	if preset != "" {
		famName, name, ok := strings.Cut(preset, "/")
		if !ok {
			f, err := curve.Parse(famArg)
			if err != nil {
				return nil, err
			}
			famName, name = f.Name, preset
		}
		base = config.GetPreset(famName, name)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s (available for %s: %v)", preset, famName, config.ListPresets(famName))
		}
	}

	cfg, err := config.Resolve(base, configFile, func(cfg *config.Config) error {
		if len(args) > 0 || flags.Changed("family") {
			f, err := curve.Parse(famArg)
			if err != nil {
				return err
			}
			cfg.SetFamily(f.ID)
		}
		if flags.Changed("samples") {
			cfg.SampleCount = samples
		}
		if flags.Changed("mode") {
			m, err := explorer.ParseDrawMode(drawMode)
			if err != nil {
				return err
			}
			cfg.DrawMode = m
		}
		if flags.Changed("animate") {
			cfg.Animation.Enabled = animate
		}
		if flags.Changed("speed") {
			cfg.Animation.Speed = speed
		}
		if flags.Changed("direction") {
			cfg.Animation.Direction = direction
		}
		if flags.Changed("fps") {
			cfg.FPS = fps
		}
		if flags.Changed("theme") {
			cfg.Theme = theme
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !viz.HasTheme(cfg.Theme) {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	app, err := viz.NewApp(viz.Options{
		FPS:        cfg.FPS,
		Theme:      cfg.Theme,
		RecordPath: recordPath,
		Session:    cfg.SessionOptions(),
	})
	if err != nil {
		return err
	}
	return viz.Run(app)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{FPS: cfg.FPS, Session: cfg.SessionOptions()})
}

func listFamilies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOEFFICIENTS\tDOMAIN\tARC LENGTH\tBOUNDS\tDESCRIPTION")
	stats := curve.MeasureAll(4000)
	for i, f := range curve.Families() {
		d := f.Defaults
		st := stats[i]
		fmt.Fprintf(w, "%d\t%s\t%.2f, %.2f, %.2f\t[%.2f, %.2f]\t%.3f\t[%.2f,%.2f]x[%.2f,%.2f]\t%s\n",
			f.ID, f.Name, d.A, d.B, d.C, d.T0, d.T1,
			st.ArcLength, st.MinX, st.MaxX, st.MinY, st.MaxY, f.Description)
	}
	return w.Flush()
}

func plotFamily(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s := explorer.NewSession(cfg.SessionOptions()...)
	f, _ := curve.Lookup(s.Params.FamilyID)
	p := s.Params

	xs, ys := curve.Components(f, p.Coef, p.TMin, p.TMax, plotPoints)
	if len(xs) < 2 {
		return errors.New("curve has no finite samples at these coefficients")
	}

	fmt.Printf("%s  coefficients %.2f, %.2f, %.2f  t in [%.2f, %.2f]\n\n",
		f.Name, p.Coef[0], p.Coef[1], p.Coef[2], p.TMin, p.TMax)
	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{xs, "x(t)"},
		{ys, "y(t)"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportFamily(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	// a still frame: the coefficients on disk match the configured ones
	opts := append(cfg.SessionOptions(), explorer.WithAnimation(false, cfg.Animation.Speed, cfg.Animation.Direction))
	s := explorer.NewSession(opts...)

	if err := export.Render(s, outPath, export.Options{Width: imgWidth, Height: imgHeight}); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	families := make([]string, 0, len(curve.IDs()))
	if len(args) == 1 {
		f, err := curve.Parse(args[0])
		if err != nil {
			return err
		}
		families = append(families, f.Name)
	} else {
		for _, f := range curve.Families() {
			families = append(families, f.Name)
		}
	}

	for _, name := range families {
		presets := config.ListPresets(name)
		if len(presets) == 0 {
			fmt.Printf("no presets for family: %s\n", name)
			continue
		}
		fmt.Printf("presets for %s:\n", name)
		for _, p := range presets {
			fmt.Printf("  %s/%s\n", name, p)
		}
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
