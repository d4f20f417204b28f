package gbterm

import (
	"log/slog"

	"github.com/valerio/gbterm/gbterm/display"
	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/video"
)

var patternNames = []string{"Checkerboard", "Gradient", "Stripes", "Diagonal"}

// TestPattern is a Simulation that draws test patterns instead of running
// a cartridge. It advances one scanline per step and completes a frame
// every display.LinesPerFrame steps, like real hardware does.
//
// Start cycles the pattern, the d-pad moves a cursor while held and held
// A/B buttons light up markers in the top corners, so input latency and
// release timing are visible on screen.
type TestPattern struct {
	builder     *video.FrameBuilder
	patternType int
	frameCount  int
	line        int

	held    [input.ButtonCount]bool
	cursorX int
	cursorY int
}

func NewTestPattern() *TestPattern {
	return &TestPattern{
		builder: video.NewFrameBuilder(),
		cursorX: video.FramebufferWidth / 2,
		cursorY: video.FramebufferHeight / 2,
	}
}

func (e *TestPattern) Step() (StepResult, error) {
	e.line++
	if e.line < display.LinesPerFrame {
		return StepResult{}, nil
	}
	e.line = 0
	e.frameCount++

	e.moveCursor()
	e.generateTestPattern()
	e.drawOverlay()

	return StepResult{Frame: e.builder.Build()}, nil
}

func (e *TestPattern) ButtonPressed(b input.Button) {
	if !e.held[b] && b == input.Start {
		e.CycleTestPattern()
	}
	e.held[b] = true
}

func (e *TestPattern) ButtonReleased(b input.Button) {
	e.held[b] = false
}

// IsHeld reports whether the simulation currently sees b as pressed.
func (e *TestPattern) IsHeld(b input.Button) bool { return e.held[b] }

func (e *TestPattern) Pattern() string { return patternNames[e.patternType] }

func (e *TestPattern) CycleTestPattern() {
	e.patternType = (e.patternType + 1) % display.TestPatternCount
	slog.Info("Switched to test pattern", "pattern", patternNames[e.patternType])
}

// Cursor returns the top-left corner of the d-pad cursor.
func (e *TestPattern) Cursor() (x, y int) { return e.cursorX, e.cursorY }

func (e *TestPattern) moveCursor() {
	if e.held[input.Left] && e.cursorX > 0 {
		e.cursorX--
	}
	if e.held[input.Right] && e.cursorX < video.FramebufferWidth-display.TestPatternCursorSize {
		e.cursorX++
	}
	if e.held[input.Up] && e.cursorY > 0 {
		e.cursorY--
	}
	if e.held[input.Down] && e.cursorY < video.FramebufferHeight-display.TestPatternCursorSize {
		e.cursorY++
	}
}

func (e *TestPattern) generateTestPattern() {
	// animation offset advances every TestPatternAnimationFrames frames
	step := e.frameCount / display.TestPatternAnimationFrames

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			var shade video.Shade
			switch e.patternType {
			case 0: // Checkerboard
				if ((x/display.TestPatternTileSize)+(y/display.TestPatternTileSize))%2 == 0 {
					shade = video.Lightest
				} else {
					shade = video.Darkest
				}
			case 1: // Gradient, lightest on the left
				shade = video.Shade(x * video.ShadeCount / video.FramebufferWidth)
			case 2: // Vertical stripes
				if ((x+step*display.TestPatternStripeSpeed)/display.TestPatternStripeWidth)%2 == 0 {
					shade = video.Lightest
				} else {
					shade = video.Dark
				}
			case 3: // Diagonal lines
				if ((x+y+step*display.TestPatternDiagonalSpeed)/display.TestPatternTileSize)%2 == 0 {
					shade = video.Light
				} else {
					shade = video.Dark
				}
			}
			e.builder.SetPixel(x, y, shade)
		}
	}
}

func (e *TestPattern) drawOverlay() {
	e.fillRect(e.cursorX, e.cursorY, display.TestPatternCursorSize, video.Darkest)

	if e.held[input.A] {
		e.fillRect(video.FramebufferWidth-display.TestPatternCursorSize, 0, display.TestPatternCursorSize, video.Darkest)
	}
	if e.held[input.B] {
		e.fillRect(0, 0, display.TestPatternCursorSize, video.Darkest)
	}
}

func (e *TestPattern) fillRect(x0, y0, size int, shade video.Shade) {
	for y := y0; y < y0+size && y < video.FramebufferHeight; y++ {
		for x := x0; x < x0+size && x < video.FramebufferWidth; x++ {
			e.builder.SetPixel(x, y, shade)
		}
	}
}

var _ Simulation = (*TestPattern)(nil)
