package snapshot

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/gbterm/gbterm/display"
	"github.com/valerio/gbterm/gbterm/video"
)

// grays maps shades to the grayscale used for PNG output.
var grays = [video.ShadeCount]uint8{
	video.Lightest: display.GrayscaleWhite,
	video.Light:    display.GrayscaleLightGray,
	video.Dark:     display.GrayscaleDarkGray,
	video.Darkest:  display.GrayscaleBlack,
}

// shadeChars is the text legend, darkest last.
var shadeChars = [video.ShadeCount]rune{
	video.Lightest: '░',
	video.Light:    '▒',
	video.Dark:     '▓',
	video.Darkest:  '█',
}

// Image converts a frame to an RGBA image.
func Image(frame *video.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width(), frame.Height()))
	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			g := grays[frame.Pixel(x, y)]
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: display.FullAlpha})
		}
	}
	return img
}

// WritePNG encodes frame as PNG.
func WritePNG(w io.Writer, frame *video.Frame) error {
	if err := png.Encode(w, Image(frame)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WriteText writes a shaded-block rendering of frame, one line per pixel row.
func WriteText(w io.Writer, frame *video.Frame, header string) error {
	bw := bufio.NewWriter(w)

	if header != "" {
		fmt.Fprintf(bw, "# %s\n", header)
	}
	fmt.Fprintf(bw, "# Resolution: %dx%d pixels\n", frame.Width(), frame.Height())
	fmt.Fprintf(bw, "# Legend: █=darkest ▓=dark ▒=light ░=lightest\n")
	fmt.Fprintf(bw, "#\n")

	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			bw.WriteRune(shadeChars[frame.Pixel(x, y)])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Format selects the snapshot file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatText Format = "txt"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatText:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown snapshot format %q (want png or txt)", s)
}

// Save writes frame into directory (the working directory when empty) as
// <baseName>.<format> and returns the path written.
func Save(frame *video.Frame, baseName, directory string, format Format) (string, error) {
	if frame == nil {
		return "", fmt.Errorf("no frame data available for snapshot")
	}
	if directory == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		directory = cwd
	}
	if format == "" {
		format = FormatPNG
	}

	path := filepath.Join(directory, fmt.Sprintf("%s.%s", baseName, format))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if err := encode(file, frame, baseName, format); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Info("Snapshot saved", "path", path, "format", format)
	return path, nil
}

// encode writes frame to w and closes it; a failed close is reported.
func encode(w io.WriteCloser, frame *video.Frame, header string, format Format) error {
	var err error
	switch format {
	case FormatText:
		err = WriteText(w, frame, header)
	default:
		err = WritePNG(w, frame)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

// SaveTimestamped saves frame with the current time appended to baseName.
func SaveTimestamped(frame *video.Frame, baseName, directory string) (string, error) {
	name := fmt.Sprintf("%s_%s", baseName, time.Now().Format("20060102_150405"))
	return Save(frame, name, directory, FormatPNG)
}

// PrepareDir returns a directory ready for snapshots: dir itself, created if
// missing, or a fresh temporary directory when dir is empty.
func PrepareDir(dir string) (string, error) {
	if dir == "" {
		tempDir, err := os.MkdirTemp("", "gbterm-snapshots-*")
		if err != nil {
			return "", fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		return tempDir, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return dir, nil
}
