// Package curve holds the six parametric curve families explored by curvelab
// and the evaluation function every rendering backend shares.
//
// The registry is static. Each [Family] carries its default coefficient
// triple and time domain; [Lookup] returns a copy, so callers cannot mutate
// the registered defaults.
//
//   - [Family]: a named family with default [Defaults] and an evaluator
//   - [Uniforms]: the parameter slots published to a backend once per frame
//   - [Trace]: walks the implicit vertex indices 0..SampleCount-1
//
// # Evaluation
//
// A vertex is derived from its index alone:
//
//	t := DomainMin + (DomainMax-DomainMin)*i/(SampleCount-1)
//	x, y := family(coef, t)
//	ndc := (x*ZoomScale/AspectRatio + PanOffset[0], y*ZoomScale + PanOffset[1])
//
// Vertices whose evaluation is not finite are skipped by [Trace].
package curve
