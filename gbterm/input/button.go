package input

import (
	"fmt"
	"strings"
)

// Button is one of the eight Game Boy joypad inputs.
type Button uint8

const (
	Up Button = iota
	Down
	Left
	Right
	A
	B
	Start
	Select

	// ButtonCount is the number of buttons; Button values are below it.
	ButtonCount = int(Select) + 1
)

// Buttons lists every button in declaration order. Anything that walks
// over buttons uses this order so that output is deterministic.
var Buttons = []Button{Up, Down, Left, Right, A, B, Start, Select}

var buttonNames = [...]string{
	Up:     "Up",
	Down:   "Down",
	Left:   "Left",
	Right:  "Right",
	A:      "A",
	B:      "B",
	Start:  "Start",
	Select: "Select",
}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", b)
}

// ParseButton converts a case-insensitive button name.
func ParseButton(s string) (Button, error) {
	for _, b := range Buttons {
		if strings.EqualFold(s, buttonNames[b]) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", s)
}
