package gbterm

import (
	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/video"
)

// StepResult reports what a single simulation step produced.
type StepResult struct {
	// Frame is set when the step completed a frame, nil otherwise.
	Frame *video.Frame
}

// FrameReady reports whether the step produced a frame.
func (r StepResult) FrameReady() bool { return r.Frame != nil }

// Simulation is the interface for all emulation engines driven by the
// frontend. All methods are called from a single goroutine.
type Simulation interface {
	// Step advances the simulation by one unit of work. Any error is
	// fatal: the simulation is assumed to be out of sync afterwards.
	Step() (StepResult, error)

	ButtonPressed(b input.Button)
	ButtonReleased(b input.Button)
}
