// Package gui is the native window frontend, built on raylib. It shares the
// explorer session and key map with the terminal frontend, adds a clickable
// hue slider, and tracks window resizes.
package gui
