package display

// Terminal layout constants
const (
	// CellRows is the number of terminal rows used by the game screen;
	// each cell packs two pixel rows.
	CellRows = 144 / 2
	// CellColumns is the number of terminal columns used by the game screen
	CellColumns = 160
)

// Timing constants
const (
	// LinesPerFrame is the number of simulated scanlines per frame, including vblank.
	// The test pattern simulation advances one scanline per step.
	LinesPerFrame = 154
	// DefaultFPS is the target presentation rate
	DefaultFPS = 60
)

// Test pattern constants
const (
	// TestPatternCount is the number of available test patterns
	TestPatternCount = 4
	// TestPatternTileSize is the size of tiles for checkerboard and diagonal patterns
	TestPatternTileSize = 8
	// TestPatternStripeWidth is the width of stripes in the stripe pattern
	TestPatternStripeWidth = 4
	// TestPatternAnimationFrames is the number of frames between test pattern animations
	TestPatternAnimationFrames = 30
	// TestPatternStripeSpeed is the animation speed for stripe patterns
	TestPatternStripeSpeed = 2
	// TestPatternDiagonalSpeed is the animation speed for diagonal patterns
	TestPatternDiagonalSpeed = 4
	// TestPatternCursorSize is the side of the d-pad cursor square
	TestPatternCursorSize = 6
)

// Color mapping constants
const (
	// GrayscaleWhite is the RGB value for white in grayscale
	GrayscaleWhite = 255
	// GrayscaleLightGray is the RGB value for light gray in grayscale
	GrayscaleLightGray = 170
	// GrayscaleDarkGray is the RGB value for dark gray in grayscale
	GrayscaleDarkGray = 85
	// GrayscaleBlack is the RGB value for black in grayscale
	GrayscaleBlack = 0
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 255
)
