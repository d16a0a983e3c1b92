package config

import (
	"sort"

	"github.com/san-kum/curvelab/internal/explorer"
)

// Presets holds named starting points per family name.
var Presets = map[string]map[string]*Config{
	"harmonic": {
		"lissajous": {
			Family: 1, SampleCount: 20000, DrawMode: explorer.DrawLines, FPS: 60,
			Animation:    AnimationConfig{Speed: 0.01, Direction: 1},
			View:         ViewConfig{Scale: 1.0},
			Coefficients: []float64{3, 2, 0},
		},
		"drift": {
			Family: 1, SampleCount: 60000, FPS: 60,
			Animation: AnimationConfig{Enabled: true, Speed: 0.005, Direction: 1},
			View:      ViewConfig{Scale: 1.0},
		},
	},
	"wheel": {
		"spokes": {
			Family: 2, SampleCount: 60000, FPS: 60,
			Animation: AnimationConfig{Speed: 0.01, Direction: 1},
			View:      ViewConfig{Scale: 1.0},
		},
		"spin": {
			Family: 2, SampleCount: 40000, FPS: 60,
			Animation: AnimationConfig{Enabled: true, Speed: 0.002, Direction: -1},
			View:      ViewConfig{Scale: 1.0},
		},
	},
	"rose": {
		"petals": {
			Family: 3, SampleCount: 30000, DrawMode: explorer.DrawLines, FPS: 60,
			Animation: AnimationConfig{Speed: 0.01, Direction: 1},
			View:      ViewConfig{Scale: 1.0},
		},
		"bloom": {
			Family: 3, SampleCount: 60000, FPS: 60,
			Animation:    AnimationConfig{Enabled: true, Speed: 0.02, Direction: 1},
			View:         ViewConfig{Scale: 1.2},
			Coefficients: []float64{1, 5, 0},
		},
	},
	"hypotrochoid": {
		"spirograph": {
			Family: 4, SampleCount: 60000, DrawMode: explorer.DrawLines, FPS: 60,
			Animation: AnimationConfig{Speed: 0.01, Direction: 1},
			View:      ViewConfig{Scale: 1.0},
		},
	},
	"polarwave": {
		"ripple": {
			Family: 5, SampleCount: 30000, FPS: 60,
			Animation: AnimationConfig{Enabled: true, Speed: 0.01, Direction: 1},
			View:      ViewConfig{Scale: 1.0},
		},
	},
	"epitrochoid": {
		"limacon": {
			Family: 6, SampleCount: 20000, DrawMode: explorer.DrawLines, FPS: 60,
			Animation:    AnimationConfig{Speed: 0.01, Direction: 1},
			View:         ViewConfig{Scale: 1.0},
			Coefficients: []float64{1, 1, 0.5},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(family, preset string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	cfg, ok := familyPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	c.Coefficients = append([]float64(nil), cfg.Coefficients...)
	if len(c.Coefficients) == 0 {
		c.Coefficients = nil
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	return &c
}

func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
