package input

import (
	"fmt"
	"strings"
)

// Action represents input actions that can be performed in the frontend
type Action int

const (
	// Game Boy hardware controls
	GBButtonA Action = iota
	GBButtonB
	GBButtonStart
	GBButtonSelect
	GBDPadUp
	GBDPadDown
	GBDPadLeft
	GBDPadRight

	// Frontend features
	EmulatorSnapshot
	EmulatorLogToggle
	EmulatorQuit
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by who consumes them.
type Category int

const (
	// CategoryGameInput actions are forwarded to the simulation
	CategoryGameInput Category = iota
	// CategoryFrontend actions are handled by the UI goroutine
	CategoryFrontend
)

type Info struct {
	Name        string
	Description string
	Category    Category
}

var actionInfo = map[Action]Info{
	GBButtonA:             {"a", "A button", CategoryGameInput},
	GBButtonB:             {"b", "B button", CategoryGameInput},
	GBButtonStart:         {"start", "Start button", CategoryGameInput},
	GBButtonSelect:        {"select", "Select button", CategoryGameInput},
	GBDPadUp:              {"up", "D-pad up", CategoryGameInput},
	GBDPadDown:            {"down", "D-pad down", CategoryGameInput},
	GBDPadLeft:            {"left", "D-pad left", CategoryGameInput},
	GBDPadRight:           {"right", "D-pad right", CategoryGameInput},
	EmulatorSnapshot:      {"snapshot", "Save a PNG snapshot", CategoryFrontend},
	EmulatorLogToggle:     {"logs", "Toggle the log panel", CategoryFrontend},
	EmulatorQuit:          {"quit", "Quit", CategoryFrontend},
	DebugLogLevelIncrease: {"log+", "Show more log levels", CategoryFrontend},
	DebugLogLevelDecrease: {"log-", "Show fewer log levels", CategoryFrontend},
}

// GetInfo returns metadata for an action.
func GetInfo(act Action) Info {
	if info, ok := actionInfo[act]; ok {
		return info
	}
	return Info{Name: fmt.Sprintf("action(%d)", int(act)), Category: CategoryFrontend}
}

func (a Action) String() string { return GetInfo(a).Name }

var actionButtons = map[Action]Button{
	GBButtonA:      A,
	GBButtonB:      B,
	GBButtonStart:  Start,
	GBButtonSelect: Select,
	GBDPadUp:       Up,
	GBDPadDown:     Down,
	GBDPadLeft:     Left,
	GBDPadRight:    Right,
}

// Button returns the joypad button for a game input action.
func (a Action) Button() (Button, bool) {
	b, ok := actionButtons[a]
	return b, ok
}

// ParseAction converts an action name as used in key map files.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for act, info := range actionInfo {
		if info.Name == s {
			return act, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
