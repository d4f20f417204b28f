package input

// DefaultKeyMap provides default key mappings. Key names are the ones the
// terminal backend produces: special keys by name, printable keys as the
// rune itself.
var DefaultKeyMap = KeyMap{
	// Game Boy controls
	"Up":        GBDPadUp,
	"Down":      GBDPadDown,
	"Left":      GBDPadLeft,
	"Right":     GBDPadRight,
	"z":         GBButtonA,
	"x":         GBButtonB,
	"Enter":     GBButtonStart,
	"Backspace": GBButtonSelect,

	// Alternative arrow keys (WASD)
	"w": GBDPadUp,
	"s": GBDPadDown,
	"a": GBDPadLeft,
	"d": GBDPadRight,

	// Frontend controls
	"F12":    EmulatorSnapshot,
	"F10":    EmulatorLogToggle,
	"Escape": EmulatorQuit,
	"q":      EmulatorQuit,
	"Ctrl-C": EmulatorQuit,

	// Debug controls
	"+": DebugLogLevelIncrease,
	"=": DebugLogLevelIncrease, // Alternative without shift
	"-": DebugLogLevelDecrease,
	"_": DebugLogLevelDecrease, // Alternative with shift
}
