// Package explorer is the interaction state machine of curvelab.
//
// A [Session] owns the live curve parameters, the view transform and the
// animation state. Frontends translate their raw input into [Command]
// values and [Session.Enqueue] them; once per display frame they call
// [Session.Frame], which applies the queued commands in arrival order,
// advances the animation and publishes a [curve.Uniforms] snapshot to a
// [Backend].
//
//   - [ParameterState]: coefficients, time domain, sample count
//   - [ViewTransform]: zoom scale and pan offset
//   - [AnimationState]: per-frame coefficient drift and hue cycling
//   - [Backend]: anything that can clear, receive uniforms and draw
//
// # Thread Safety
//
// Sessions are NOT thread-safe. Enqueue and Frame must be called from the
// goroutine that drives the frontend's event loop.
package explorer
