// Package viz is the terminal frontend for curve exploration.
//
// An [App] owns an explorer session and renders it through a
// [CanvasBackend], which rasterises the curve onto a braille [Canvas]:
// every terminal cell holds 2x4 dots, so the session sees a surface of
// cols*2 by rows*4 dots and pointer positions are reported in the same
// units.
//
// # Key Bindings
//
//	1-6       - Select curve family
//	Space     - Toggle animation
//	←/→       - Select coefficient
//	↑/↓       - Nudge coefficient
//	PgUp/PgDn - Extend or shrink the parameter domain
//	R         - Reset family defaults
//	P         - Toggle points/lines
//	+/-       - Sample count
//	[ ]       - Hue slider
//	T         - Cycle color themes
//	G         - Toggle GIF recording
//	?         - Show help overlay
//
// The mouse wheel zooms and a left-button drag pans.
package viz
