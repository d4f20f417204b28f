package video

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
	FramebufferSize   = FramebufferWidth * FramebufferHeight
)

// Shade is a 2-bit Game Boy color index, lightest first.
type Shade uint8

const (
	Lightest Shade = iota
	Light
	Dark
	Darkest
)

// ShadeCount is the number of distinct shades a pixel can take.
const ShadeCount = 4

// Frame is an immutable snapshot of one full screen of pixels.
// Frames are built once with a FrameBuilder and never written afterwards,
// so they can be handed between goroutines without copying.
type Frame struct {
	pixels [FramebufferSize]Shade
}

func (f *Frame) Width() int  { return FramebufferWidth }
func (f *Frame) Height() int { return FramebufferHeight }

// Pixel returns the shade at x, y with a top-left origin.
func (f *Frame) Pixel(x, y int) Shade {
	return f.pixels[y*FramebufferWidth+x]
}

// Pixels returns a copy of the frame in row-major order.
func (f *Frame) Pixels() []Shade {
	out := make([]Shade, FramebufferSize)
	copy(out, f.pixels[:])
	return out
}

// FrameBuilder accumulates pixels for the next frame. Build hands out a
// snapshot and leaves the builder reusable.
type FrameBuilder struct {
	pixels [FramebufferSize]Shade
}

func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{}
}

func (b *FrameBuilder) SetPixel(x, y int, shade Shade) {
	b.pixels[y*FramebufferWidth+x] = shade & 0x3
}

func (b *FrameBuilder) GetPixel(x, y int) Shade {
	return b.pixels[y*FramebufferWidth+x]
}

// Fill sets every pixel to shade.
func (b *FrameBuilder) Fill(shade Shade) {
	for i := range b.pixels {
		b.pixels[i] = shade & 0x3
	}
}

// Build returns an immutable copy of the current pixels.
func (b *FrameBuilder) Build() *Frame {
	f := &Frame{}
	f.pixels = b.pixels
	return f
}

// NewFilledFrame returns a frame where every pixel has the given shade.
func NewFilledFrame(shade Shade) *Frame {
	b := NewFrameBuilder()
	b.Fill(shade)
	return b.Build()
}
