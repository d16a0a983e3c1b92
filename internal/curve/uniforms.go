package curve

import "math"

// Uniforms are the parameter slots a backend reads for its next draw.
type Uniforms struct {
	Coefficients [3]float64
	DomainMin    float64
	DomainMax    float64
	SampleCount  int
	FamilyType   int
	ZoomScale    float64
	PanOffset    [2]float64
	AspectRatio  float64
	Hue          float64
}

// Param maps a vertex index to its curve parameter.
func (u Uniforms) Param(i int) float64 {
	if u.SampleCount <= 1 {
		return u.DomainMin
	}
	return u.DomainMin + (u.DomainMax-u.DomainMin)*float64(i)/float64(u.SampleCount-1)
}

// Vertex evaluates index i into normalized device coordinates.
func (u Uniforms) Vertex(i int) (x, y float64, ok bool) {
	f, found := Lookup(u.FamilyType)
	if !found {
		return 0, 0, false
	}
	return u.project(f, i)
}

func (u Uniforms) project(f Family, i int) (float64, float64, bool) {
	cx, cy := f.Eval(u.Coefficients, u.Param(i))
	aspect := u.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}
	x := cx*u.ZoomScale/aspect + u.PanOffset[0]
	y := cy*u.ZoomScale + u.PanOffset[1]
	if !finite(x) || !finite(y) {
		return 0, 0, false
	}
	return x, y, true
}

// Trace calls fn for every finite vertex in index order. It returns the
// number of vertices visited.
func Trace(u Uniforms, fn func(i int, x, y float64)) int {
	f, found := Lookup(u.FamilyType)
	if !found {
		return 0
	}
	n := 0
	for i := 0; i < u.SampleCount; i++ {
		x, y, ok := u.project(f, i)
		if !ok {
			continue
		}
		fn(i, x, y)
		n++
	}
	return n
}

// ToPixel maps normalized device coordinates onto a w×h surface with the
// origin at the top left.
func ToPixel(x, y float64, w, h int) (float64, float64) {
	return (x + 1) / 2 * float64(w), (1 - y) / 2 * float64(h)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
