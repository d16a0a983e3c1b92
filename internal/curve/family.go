package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownFamily is returned by Get for ids outside the registry.
var ErrUnknownFamily = errors.New("curve: unknown family")

// Defaults is the registered starting point of a family.
type Defaults struct {
	A, B, C float64
	T0, T1  float64
}

// Coef returns the default coefficient triple.
func (d Defaults) Coef() [3]float64 {
	return [3]float64{d.A, d.B, d.C}
}

type evalFunc func(coef [3]float64, t float64) (x, y float64)

// Family is one registered parametric curve.
type Family struct {
	ID          int
	Name        string
	Description string
	Defaults    Defaults
	eval        evalFunc
}

// Eval returns the curve point at parameter t in curve space, roughly [-1, 1]².
func (f Family) Eval(coef [3]float64, t float64) (float64, float64) {
	if f.eval == nil {
		return math.NaN(), math.NaN()
	}
	return f.eval(coef, t)
}

func (f Family) String() string {
	return fmt.Sprintf("%d:%s", f.ID, f.Name)
}

var registry = map[int]Family{
	1: {
		ID: 1, Name: "harmonic", Description: "lissajous figure",
		Defaults: Defaults{A: 1.0, B: 1.0, C: 0.0, T0: 0.0, T1: 2 * math.Pi},
		eval:     harmonic,
	},
	2: {
		ID: 2, Name: "wheel", Description: "farris mystery wheel",
		Defaults: Defaults{A: 1.0, B: 17.0, C: 0.0, T0: 0.0, T1: 2 * math.Pi},
		eval:     wheel,
	},
	3: {
		ID: 3, Name: "rose", Description: "rhodonea with rational petals",
		Defaults: Defaults{A: 1.0, B: 8.6, C: 0.0, T0: 0.0, T1: 10 * math.Pi},
		eval:     rose,
	},
	4: {
		ID: 4, Name: "hypotrochoid", Description: "spirograph, inner wheel",
		Defaults: Defaults{A: 7.6, B: 5.1, C: 0.0, T0: 0.0, T1: 10.0},
		eval:     hypotrochoid,
	},
	5: {
		ID: 5, Name: "polarwave", Description: "damped polar wave",
		Defaults: Defaults{A: 1.0, B: 4.0, C: 0.0, T0: 0.0, T1: 10.0},
		eval:     polarWave,
	},
	6: {
		ID: 6, Name: "epitrochoid", Description: "spirograph, outer wheel",
		Defaults: Defaults{A: 4.0, B: 1.0, C: 0.0, T0: 0.0, T1: 2 * math.Pi},
		eval:     epitrochoid,
	},
}

// Lookup returns the family registered under id.
func Lookup(id int) (Family, bool) {
	f, ok := registry[id]
	return f, ok
}

// Get is Lookup with an error for the CLI paths.
func Get(id int) (Family, error) {
	f, ok := registry[id]
	if !ok {
		return Family{}, fmt.Errorf("%w: %d (available: %v)", ErrUnknownFamily, id, IDs())
	}
	return f, nil
}

// Parse resolves a family by id ("3") or by name ("rose").
func Parse(s string) (Family, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return Get(id)
	}
	for _, f := range registry {
		if strings.EqualFold(f.Name, s) {
			return f, nil
		}
	}
	return Family{}, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// IDs returns the registered ids in ascending order.
func IDs() []int {
	ids := make([]int, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Families returns every registered family ordered by id.
func Families() []Family {
	ids := IDs()
	out := make([]Family, len(ids))
	for i, id := range ids {
		out[i] = registry[id]
	}
	return out
}

func harmonic(c [3]float64, t float64) (float64, float64) {
	return math.Cos(c[0]*t + c[2]), math.Sin(c[1] * t)
}

func wheel(c [3]float64, t float64) (float64, float64) {
	norm := 1.5 + math.Abs(c[2])
	x := math.Cos(c[0]*t) + 0.5*math.Cos(c[1]*t) + c[2]*math.Sin(t)
	y := math.Sin(c[0]*t) + 0.5*math.Sin(c[1]*t) + c[2]*math.Cos(t)
	return x / norm, y / norm
}

func rose(c [3]float64, t float64) (float64, float64) {
	r := c[0] * math.Cos(c[1]*t+c[2])
	return r * math.Cos(t), r * math.Sin(t)
}

func hypotrochoid(c [3]float64, t float64) (float64, float64) {
	big, small := c[0], c[1]
	if big == 0 || small == 0 {
		return math.NaN(), math.NaN()
	}
	d := small + c[2]
	k := (big - small) / small
	norm := math.Abs(big-small) + math.Abs(d)
	x := (big-small)*math.Cos(t) + d*math.Cos(k*t)
	y := (big-small)*math.Sin(t) - d*math.Sin(k*t)
	return x / norm, y / norm
}

func polarWave(c [3]float64, t float64) (float64, float64) {
	norm := math.Abs(c[0]) + 0.5
	r := (c[0] + 0.5*math.Sin(c[1]*t)) * math.Exp(-c[2]*t) / norm
	return r * math.Cos(t), r * math.Sin(t)
}

func epitrochoid(c [3]float64, t float64) (float64, float64) {
	big, small := c[0], c[1]
	if small == 0 {
		return math.NaN(), math.NaN()
	}
	d := small + c[2]
	k := (big + small) / small
	norm := math.Abs(big+small) + math.Abs(d)
	x := (big+small)*math.Cos(t) - d*math.Cos(k*t)
	y := (big+small)*math.Sin(t) - d*math.Sin(k*t)
	return x / norm, y / norm
}
