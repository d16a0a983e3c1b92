package explorer

// Key is a dispatcher key code, independent of any frontend's key naming.
type Key int

const (
	KeyUnknown Key = iota
	KeyFamily1
	KeyFamily2
	KeyFamily3
	KeyFamily4
	KeyFamily5
	KeyFamily6
	KeyToggleAnimation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyReset
	KeyToggleDrawMode
	KeyMoreSamples
	KeyFewerSamples
)

var keyNames = map[string]Key{
	"1": KeyFamily1, "2": KeyFamily2, "3": KeyFamily3,
	"4": KeyFamily4, "5": KeyFamily5, "6": KeyFamily6,

	" ": KeyToggleAnimation, "space": KeyToggleAnimation,

	"up": KeyUp, "ArrowUp": KeyUp,
	"down": KeyDown, "ArrowDown": KeyDown,
	"left": KeyLeft, "ArrowLeft": KeyLeft,
	"right": KeyRight, "ArrowRight": KeyRight,

	"pgup": KeyPageUp, "PageUp": KeyPageUp,
	"pgdown": KeyPageDown, "PageDown": KeyPageDown,

	"r": KeyReset,
	"p": KeyToggleDrawMode,
	"+": KeyMoreSamples,
	"-": KeyFewerSamples,
}

// ParseKey maps a key name to its dispatcher code. It understands the names
// bubbletea reports ("up", "pgdown", " ") as well as DOM key values
// ("ArrowUp", "PageDown"). Anything else is KeyUnknown.
func ParseKey(name string) Key {
	return keyNames[name]
}

// Family returns the family id selected by a digit key, or 0.
func (k Key) Family() int {
	if k >= KeyFamily1 && k <= KeyFamily6 {
		return int(k-KeyFamily1) + 1
	}
	return 0
}

func (k Key) String() string {
	switch k {
	case KeyFamily1, KeyFamily2, KeyFamily3, KeyFamily4, KeyFamily5, KeyFamily6:
		return string(rune('0' + k.Family()))
	case KeyToggleAnimation:
		return "space"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	case KeyReset:
		return "r"
	case KeyToggleDrawMode:
		return "p"
	case KeyMoreSamples:
		return "+"
	case KeyFewerSamples:
		return "-"
	}
	return "unknown"
}
