package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme defines the panel colours. The curve itself is always drawn in the
// session hue.
type Theme struct {
	Name string
	// Hue anchors the panel colours, in degrees.
	Hue float64

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
}

// newTheme derives a panel palette from an anchor hue. Secondary sits spread
// degrees away; sat scales every colour, so zero yields greys.
func newTheme(name string, hue, spread, sat float64) Theme {
	c := func(h, s, v float64) lipgloss.Color {
		return lipgloss.Color(colorful.Hsv(math.Mod(h+360, 360), s, v).Hex())
	}
	return Theme{
		Name:      name,
		Hue:       hue,
		Primary:   c(hue, sat, 1),
		Secondary: c(hue+spread, sat*0.9, 0.95),
		Text:      c(hue, sat*0.08, 1),
		Muted:     c(hue, sat*0.35, 0.45),
		Success:   c(hue+spread/2, sat*0.7, 0.9),
	}
}

var (
	ThemeCyberpunk  = newTheme("cyberpunk", 300, 180, 1)
	ThemeRetroGreen = newTheme("retro", 120, 20, 1)
	ThemeMinimal    = newTheme("minimal", 0, 0, 0)
	ThemeOcean      = newTheme("ocean", 200, 30, 0.8)
	ThemeSunset     = newTheme("sunset", 5, 40, 0.6)

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeCyberpunk
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
