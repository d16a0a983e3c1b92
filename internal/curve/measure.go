package curve

import "math"

// Stats summarises a sampled family at its defaults.
type Stats struct {
	ArcLength              float64
	MinX, MaxX, MinY, MaxY float64
	Samples                int
}

// Measure samples f over its default domain with n points.
func Measure(f Family, n int) Stats {
	if n < 2 {
		n = 2
	}
	d := f.Defaults
	coef := d.Coef()
	st := Stats{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	var px, py float64
	have := false
	for i := 0; i < n; i++ {
		t := d.T0 + (d.T1-d.T0)*float64(i)/float64(n-1)
		x, y := f.Eval(coef, t)
		if !finite(x) || !finite(y) {
			have = false
			continue
		}
		st.MinX, st.MaxX = math.Min(st.MinX, x), math.Max(st.MaxX, x)
		st.MinY, st.MaxY = math.Min(st.MinY, y), math.Max(st.MaxY, y)
		if have {
			st.ArcLength += math.Hypot(x-px, y-py)
		}
		px, py, have = x, y, true
		st.Samples++
	}
	return st
}

// Components samples x(t) and y(t) separately, for plotting.
func Components(f Family, coef [3]float64, t0, t1 float64, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs, ys = make([]float64, 0, n), make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(n-1)
		x, y := f.Eval(coef, t)
		if !finite(x) || !finite(y) {
			continue
		}
		xs, ys = append(xs, x), append(ys, y)
	}
	return xs, ys
}
