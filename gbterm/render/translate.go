package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/gbterm/gbterm/video"
)

// Cell is one pixel positioned in the display's coordinate system, where y
// grows upwards from the south edge.
type Cell struct {
	X     int
	Y     int
	Color tcell.Color
}

// Palette maps each shade, lightest first, to a display color.
type Palette [video.ShadeCount]tcell.Color

// Game Boy greens, darkest (Green1) to lightest (Green4).
var (
	Green1 = tcell.NewRGBColor(0x0f, 0x38, 0x0f)
	Green2 = tcell.NewRGBColor(0x30, 0x62, 0x30)
	Green3 = tcell.NewRGBColor(0x8b, 0xac, 0x0f)
	Green4 = tcell.NewRGBColor(0x9b, 0xbc, 0x0f)
)

// GreenPalette is the default palette.
var GreenPalette = Palette{
	video.Lightest: Green4,
	video.Light:    Green3,
	video.Dark:     Green2,
	video.Darkest:  Green1,
}

// GrayPalette works on terminals limited to the basic 16 colors.
var GrayPalette = Palette{
	video.Lightest: tcell.ColorWhite,
	video.Light:    tcell.ColorSilver,
	video.Dark:     tcell.ColorGray,
	video.Darkest:  tcell.ColorBlack,
}

// ParsePalette returns the palette called name ("green" or "gray").
func ParsePalette(name string) (*Palette, error) {
	switch strings.ToLower(name) {
	case "", "green":
		return &GreenPalette, nil
	case "gray", "grey":
		return &GrayPalette, nil
	}
	return nil, fmt.Errorf("unknown palette %q (want green or gray)", name)
}

// Color returns the display color for a shade.
func (p *Palette) Color(s video.Shade) tcell.Color {
	return p[s&0x3]
}

// Translate converts every pixel of frame into a Cell, column by column.
// Source rows count down from the top while display rows count up from the
// bottom, so source row y lands on display row north-y.
//
// Cells are appended to dst[:0], letting callers reuse one buffer across
// frames. The frame is only read.
func Translate(frame *video.Frame, north int, palette *Palette, dst []Cell) []Cell {
	w, h := frame.Width(), frame.Height()
	if cap(dst) < w*h {
		dst = make([]Cell, 0, w*h)
	}
	dst = dst[:0]

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			dst = append(dst, Cell{
				X:     x,
				Y:     north - y,
				Color: palette.Color(frame.Pixel(x, y)),
			})
		}
	}
	return dst
}

// Translator keeps the reusable cell buffer for one rendering surface.
// It belongs to the UI goroutine.
type Translator struct {
	North   int
	Palette *Palette
	buf     []Cell
}

func NewTranslator(north int, palette *Palette) *Translator {
	if palette == nil {
		palette = &GreenPalette
	}
	return &Translator{North: north, Palette: palette}
}

// Translate converts frame using the translator's buffer. The returned
// slice is only valid until the next call.
func (t *Translator) Translate(frame *video.Frame) []Cell {
	t.buf = Translate(frame, t.North, t.Palette, t.buf)
	return t.buf
}
