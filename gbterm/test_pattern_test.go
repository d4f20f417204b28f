package gbterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/gbterm/gbterm/display"
	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/video"
)

// stepUntilFrame steps the simulation until it yields a frame and returns
// the number of steps taken.
func stepUntilFrame(t *testing.T, sim Simulation) (*video.Frame, int) {
	t.Helper()
	for steps := 1; steps <= 10*display.LinesPerFrame; steps++ {
		res, err := sim.Step()
		require.NoError(t, err)
		if res.FrameReady() {
			return res.Frame, steps
		}
	}
	t.Fatal("simulation never produced a frame")
	return nil, 0
}

func TestTestPattern_FrameEveryLinesPerFrameSteps(t *testing.T) {
	sim := NewTestPattern()

	for i := 0; i < 3; i++ {
		frame, steps := stepUntilFrame(t, sim)
		assert.NotNil(t, frame)
		assert.Equal(t, display.LinesPerFrame, steps)
	}
}

func TestTestPattern_FramesAreIndependent(t *testing.T) {
	sim := NewTestPattern()
	first, _ := stepUntilFrame(t, sim)
	before := first.Pixels()

	sim.ButtonPressed(input.Start) // switch to gradient
	second, _ := stepUntilFrame(t, sim)

	assert.Equal(t, before, first.Pixels(), "a delivered frame must never change")
	assert.NotEqual(t, first.Pixels(), second.Pixels())
}

func TestTestPattern_StartCyclesOncePerPress(t *testing.T) {
	sim := NewTestPattern()
	assert.Equal(t, "Checkerboard", sim.Pattern())

	sim.ButtonPressed(input.Start)
	assert.Equal(t, "Gradient", sim.Pattern())

	// key repeat while held must not keep cycling
	sim.ButtonPressed(input.Start)
	sim.ButtonPressed(input.Start)
	assert.Equal(t, "Gradient", sim.Pattern())

	sim.ButtonReleased(input.Start)
	sim.ButtonPressed(input.Start)
	assert.Equal(t, "Stripes", sim.Pattern())
}

func TestTestPattern_GradientShades(t *testing.T) {
	sim := NewTestPattern()
	sim.ButtonPressed(input.Start)
	frame, _ := stepUntilFrame(t, sim)

	// cursor sits in the middle, sample the bottom row away from it
	y := video.FramebufferHeight - 1
	assert.Equal(t, video.Lightest, frame.Pixel(0, y))
	assert.Equal(t, video.Light, frame.Pixel(video.FramebufferWidth/4, y))
	assert.Equal(t, video.Dark, frame.Pixel(video.FramebufferWidth/2, y))
	assert.Equal(t, video.Darkest, frame.Pixel(video.FramebufferWidth-1, y))
}

func TestTestPattern_CursorMovesWhileHeld(t *testing.T) {
	sim := NewTestPattern()
	x0, y0 := sim.Cursor()

	sim.ButtonPressed(input.Right)
	sim.ButtonPressed(input.Down)
	for i := 0; i < 5; i++ {
		stepUntilFrame(t, sim)
	}
	sim.ButtonReleased(input.Right)
	sim.ButtonReleased(input.Down)
	stepUntilFrame(t, sim)

	x1, y1 := sim.Cursor()
	assert.Equal(t, x0+5, x1)
	assert.Equal(t, y0+5, y1)
}

func TestTestPattern_HeldMarkers(t *testing.T) {
	sim := NewTestPattern()
	sim.patternType = 2 // stripes: x=154 is a light stripe on the first frames
	markerX := video.FramebufferWidth - display.TestPatternCursorSize

	sim.ButtonPressed(input.A)
	frame, _ := stepUntilFrame(t, sim)
	assert.True(t, sim.IsHeld(input.A))
	assert.Equal(t, video.Darkest, frame.Pixel(markerX, 0))
	assert.Equal(t, video.Lightest, frame.Pixel(0, 0), "no B marker")

	sim.ButtonReleased(input.A)
	frame, _ = stepUntilFrame(t, sim)
	assert.False(t, sim.IsHeld(input.A))
	assert.Equal(t, video.Lightest, frame.Pixel(markerX, 0))
}
