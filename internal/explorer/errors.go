package explorer

import "errors"

// Domain errors for explorer sessions.
var (
	// ErrBackendUnavailable indicates the rendering backend is missing or not ready.
	ErrBackendUnavailable = errors.New("explorer: rendering backend unavailable")

	// ErrParameterBounds indicates a session setting is outside its valid range.
	ErrParameterBounds = errors.New("explorer: parameter out of valid bounds")

	// ErrUnknownDrawMode indicates a draw mode name that is neither points nor lines.
	ErrUnknownDrawMode = errors.New("explorer: unknown draw mode")
)
