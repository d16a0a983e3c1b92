package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/curvelab/internal/curve"
	"github.com/san-kum/curvelab/internal/explorer"
)

const (
	DefaultFamily    = 1
	DefaultSamples   = explorer.SampleCapacity
	DefaultFPS       = 60
	DefaultTheme     = "cyberpunk"
	DefaultScale     = 1.0
	DefaultDirection = 1.0

	MaxFPS = 240
)

type Config struct {
	Family       int               `yaml:"family"`
	SampleCount  int               `yaml:"sample_count"`
	DrawMode     explorer.DrawMode `yaml:"draw_mode"`
	Theme        string            `yaml:"theme"`
	FPS          int               `yaml:"fps"`
	Animation    AnimationConfig   `yaml:"animation"`
	View         ViewConfig        `yaml:"view"`
	Coefficients []float64         `yaml:"coefficients,omitempty"`
}

type AnimationConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Speed     float64 `yaml:"speed"`
	Direction float64 `yaml:"direction"`
}

type ViewConfig struct {
	Scale  float64    `yaml:"scale"`
	Offset [2]float64 `yaml:"offset,flow"`
}

// FieldError reports an invalid configuration value.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s = %v: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func DefaultConfig() *Config {
	return &Config{
		Family:      DefaultFamily,
		SampleCount: DefaultSamples,
		DrawMode:    explorer.DrawPoints,
		Theme:       DefaultTheme,
		FPS:         DefaultFPS,
		Animation: AnimationConfig{
			Speed:     explorer.DefaultSpeed,
			Direction: DefaultDirection,
		},
		View: ViewConfig{Scale: DefaultScale},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Merge reads path on top of an existing config, leaving fields the file
// does not mention untouched. Coefficient overrides belong to a family: when
// the file switches family without listing coefficients, the old ones are
// dropped so the new family starts from its defaults.
func Merge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	family, coef := cfg.Family, cfg.Coefficients
	cfg.Coefficients = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Coefficients = coef
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Coefficients == nil && cfg.Family == family {
		cfg.Coefficients = coef
	}
	return nil
}

// SetFamily switches family, dropping coefficient overrides meant for
// another one.
func (c *Config) SetFamily(id int) {
	if id != c.Family {
		c.Coefficients = nil
	}
	c.Family = id
}

// Resolve layers a session config: base (the defaults when nil), then the
// file at path when one is given, then each override in order. The result
// is validated.
func Resolve(base *Config, path string, overrides ...func(*Config) error) (*Config, error) {
	cfg := base
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if path != "" {
		if err := Merge(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	for _, apply := range overrides {
		if err := apply(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate returns every invalid field, joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, v any, err error) {
		errs = append(errs, &FieldError{Field: field, Value: v, Err: err})
	}

	if _, ok := curve.Lookup(c.Family); !ok {
		bad("family", c.Family, curve.ErrUnknownFamily)
	}
	if c.SampleCount < explorer.MinSamples || c.SampleCount > explorer.SampleCapacity ||
		c.SampleCount%explorer.SampleStep != 0 {
		bad("sample_count", c.SampleCount, explorer.ErrParameterBounds)
	}
	if c.DrawMode != explorer.DrawPoints && c.DrawMode != explorer.DrawLines {
		bad("draw_mode", int(c.DrawMode), explorer.ErrUnknownDrawMode)
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		bad("fps", c.FPS, explorer.ErrParameterBounds)
	}
	if c.Animation.Speed <= 0 {
		bad("animation.speed", c.Animation.Speed, explorer.ErrParameterBounds)
	}
	if c.Animation.Direction != 1 && c.Animation.Direction != -1 {
		bad("animation.direction", c.Animation.Direction, explorer.ErrParameterBounds)
	}
	if c.View.Scale <= 0 {
		bad("view.scale", c.View.Scale, explorer.ErrParameterBounds)
	}
	if c.Coefficients != nil && len(c.Coefficients) != 3 {
		bad("coefficients", c.Coefficients, explorer.ErrParameterBounds)
	}
	return errors.Join(errs...)
}

// SessionOptions turns the config into explorer options, family first so an
// explicit coefficient override wins over the family defaults.
func (c *Config) SessionOptions() []explorer.Option {
	opts := []explorer.Option{
		explorer.WithFamily(c.Family),
		explorer.WithSampleCount(c.SampleCount),
		explorer.WithDrawMode(c.DrawMode),
		explorer.WithAnimation(c.Animation.Enabled, c.Animation.Speed, c.Animation.Direction),
		explorer.WithView(c.View.Scale, c.View.Offset),
	}
	if len(c.Coefficients) == 3 {
		opts = append(opts, explorer.WithCoefficients([3]float64{
			c.Coefficients[0], c.Coefficients[1], c.Coefficients[2],
		}))
	}
	return opts
}
