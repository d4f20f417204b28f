package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/valerio/gbterm/gbterm/display"
	"github.com/valerio/gbterm/gbterm/render"
	"github.com/valerio/gbterm/gbterm/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	halfBlock = '▀'
)

// Screen is a tview primitive showing the Game Boy display. It holds a
// fixed 160x144 grid addressed with y growing upwards: south is row 0 of
// the grid's coordinate system and north is the top pixel row.
//
// Two pixel rows share one terminal cell: the upper half block takes the
// top pixel as foreground and the bottom pixel as background.
type Screen struct {
	*tview.Box

	pixels [height][width]tcell.Color // [top-down row][column]
}

// NewScreen returns a screen filled with black.
func NewScreen() *Screen {
	s := &Screen{Box: tview.NewBox()}
	for y := range s.pixels {
		for x := range s.pixels[y] {
			s.pixels[y][x] = tcell.ColorBlack
		}
	}
	return s
}

// Bounds returns the grid's coordinate range.
func (s *Screen) Bounds() (west, east, south, north int) {
	return 0, width - 1, 0, height - 1
}

// North is the y coordinate of the top row.
func (s *Screen) North() int { return height - 1 }

// Reset replaces the contents of the grid. Cells outside the bounds are
// ignored. Must be called on the UI goroutine.
func (s *Screen) Reset(cells []render.Cell) {
	north := s.North()
	for _, c := range cells {
		if c.X < 0 || c.X >= width || c.Y < 0 || c.Y > north {
			continue
		}
		s.pixels[north-c.Y][c.X] = c.Color
	}
}

// At returns the color stored at grid coordinates x, y.
func (s *Screen) At(x, y int) tcell.Color {
	return s.pixels[s.North()-y][x]
}

// Draw implements tview.Primitive.
func (s *Screen) Draw(screen tcell.Screen) {
	s.Box.DrawForSubclass(screen, s)
	x, y, w, h := s.GetInnerRect()

	if w < display.CellColumns || h < display.CellRows {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", display.CellColumns, display.CellRows)
		tview.Print(screen, msg, x, y+h/2, w, tview.AlignCenter, tcell.ColorRed)
		return
	}

	for row := 0; row < display.CellRows; row++ {
		top := s.pixels[2*row]
		bottom := s.pixels[2*row+1]
		for col := 0; col < display.CellColumns; col++ {
			style := tcell.StyleDefault.Foreground(top[col]).Background(bottom[col])
			screen.SetContent(x+col, y+row, halfBlock, nil, style)
		}
	}
}
