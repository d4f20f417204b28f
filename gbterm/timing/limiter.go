package timing

import "time"

// Limiter controls frame rate timing for presentation.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// DefaultFramePeriod is the 60Hz presentation period, 16,667µs.
const DefaultFramePeriod = 16667 * time.Microsecond

// PeriodForFPS converts a frame rate to a period rounded to the microsecond.
// Non-positive rates select DefaultFramePeriod.
func PeriodForFPS(fps int) time.Duration {
	if fps <= 0 {
		return DefaultFramePeriod
	}
	return (time.Second / time.Duration(fps)).Round(time.Microsecond)
}
