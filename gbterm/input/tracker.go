package input

import "time"

// DefaultKeyTimeout is how long a button stays held after its last press.
//
// Terminals report key presses only, never releases. A held key produces
// auto-repeat presses, and each one refreshes the timestamp; once repeats
// stop for this long the button is considered released. Typical repeat
// intervals are 30-50ms after the initial delay, so this value must stay
// above that. Changing it changes how games perceive input timing.
const DefaultKeyTimeout = 100 * time.Millisecond

// Tracker records which buttons are currently held and when each was last
// pressed. It is owned by a single goroutine and is not safe for
// concurrent use.
type Tracker struct {
	timeout time.Duration
	held    map[Button]time.Time
}

// NewTracker creates a tracker. A non-positive timeout selects DefaultKeyTimeout.
func NewTracker(timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = DefaultKeyTimeout
	}
	return &Tracker{
		timeout: timeout,
		held:    make(map[Button]time.Time),
	}
}

func (t *Tracker) Timeout() time.Duration { return t.timeout }

// Press marks b as held at now, refreshing it if it already was.
// It reports whether b was newly added.
func (t *Tracker) Press(b Button, now time.Time) bool {
	_, existed := t.held[b]
	t.held[b] = now
	return !existed
}

// Expire removes every button whose last press is at least timeout old
// and returns them in Buttons order.
func (t *Tracker) Expire(now time.Time) []Button {
	if len(t.held) == 0 {
		return nil
	}

	var released []Button
	for _, b := range Buttons {
		pressedAt, ok := t.held[b]
		if !ok {
			continue
		}
		if now.Sub(pressedAt) >= t.timeout {
			delete(t.held, b)
			released = append(released, b)
		}
	}
	return released
}

// ReleaseAll removes every held button and returns them in Buttons order.
func (t *Tracker) ReleaseAll() []Button {
	var released []Button
	for _, b := range Buttons {
		if _, ok := t.held[b]; ok {
			delete(t.held, b)
			released = append(released, b)
		}
	}
	return released
}

func (t *Tracker) IsHeld(b Button) bool {
	_, ok := t.held[b]
	return ok
}

// Held returns the held buttons in Buttons order.
func (t *Tracker) Held() []Button {
	var out []Button
	for _, b := range Buttons {
		if _, ok := t.held[b]; ok {
			out = append(out, b)
		}
	}
	return out
}
