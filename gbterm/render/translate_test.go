package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/gbterm/gbterm/video"
)

const north = video.FramebufferHeight - 1

func TestTranslate_AllLightest(t *testing.T) {
	frame := video.NewFilledFrame(video.Lightest)

	cells := Translate(frame, north, &GreenPalette, nil)

	require.Len(t, cells, video.FramebufferWidth*video.FramebufferHeight)
	minY, maxY := cells[0].Y, cells[0].Y
	for _, c := range cells {
		assert.Equal(t, Green4, c.Color)
		minY = min(minY, c.Y)
		maxY = max(maxY, c.Y)
	}
	assert.Equal(t, north, maxY)
	assert.Equal(t, north-(video.FramebufferHeight-1), minY)
}

func TestTranslate_ColumnOrderAndFlip(t *testing.T) {
	frame := video.NewFilledFrame(video.Lightest)

	cells := Translate(frame, north, &GreenPalette, nil)

	// first column top to bottom, then the next column
	assert.Equal(t, Cell{X: 0, Y: north, Color: Green4}, cells[0])
	assert.Equal(t, Cell{X: 0, Y: north - 1, Color: Green4}, cells[1])
	assert.Equal(t, Cell{X: 0, Y: 0, Color: Green4}, cells[video.FramebufferHeight-1])
	assert.Equal(t, Cell{X: 1, Y: north, Color: Green4}, cells[video.FramebufferHeight])
}

func TestTranslate_PaletteMapping(t *testing.T) {
	tests := []struct {
		shade    video.Shade
		expected tcell.Color
	}{
		{video.Lightest, Green4},
		{video.Light, Green3},
		{video.Dark, Green2},
		{video.Darkest, Green1},
	}

	for _, tt := range tests {
		b := video.NewFrameBuilder()
		b.SetPixel(10, 20, tt.shade)
		cells := Translate(b.Build(), north, &GreenPalette, nil)

		c := cells[10*video.FramebufferHeight+20]
		assert.Equal(t, 10, c.X)
		assert.Equal(t, north-20, c.Y)
		assert.Equal(t, tt.expected, c.Color)
	}
}

func TestTranslate_Idempotent(t *testing.T) {
	b := video.NewFrameBuilder()
	for x := 0; x < video.FramebufferWidth; x++ {
		b.SetPixel(x, x%video.FramebufferHeight, video.Shade(x%video.ShadeCount))
	}
	frame := b.Build()

	first := append([]Cell(nil), Translate(frame, north, &GreenPalette, nil)...)
	second := Translate(frame, north, &GreenPalette, nil)

	assert.Equal(t, first, second)
}

func TestTranslator_ReusesBuffer(t *testing.T) {
	tr := NewTranslator(north, nil)
	assert.Equal(t, &GreenPalette, tr.Palette)

	first := tr.Translate(video.NewFilledFrame(video.Dark))
	second := tr.Translate(video.NewFilledFrame(video.Darkest))

	require.Len(t, second, video.FramebufferWidth*video.FramebufferHeight)
	assert.Same(t, &first[0], &second[0], "buffer must be reused between frames")
	assert.Equal(t, Green1, second[0].Color)
}

func TestTranslate_GrayPalette(t *testing.T) {
	cells := Translate(video.NewFilledFrame(video.Darkest), north, &GrayPalette, nil)
	assert.Equal(t, tcell.ColorBlack, cells[0].Color)
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette("")
	require.NoError(t, err)
	assert.Equal(t, &GreenPalette, p)

	p, err = ParsePalette("Gray")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorBlack, p.Color(video.Darkest))

	_, err = ParsePalette("sepia")
	assert.Error(t, err)
}
