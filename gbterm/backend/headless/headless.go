package headless

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/valerio/gbterm/gbterm/backend"
	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/snapshot"
	"github.com/valerio/gbterm/gbterm/video"
)

// Backend implements backend.Backend for automated testing and batch runs.
// Work items run inline on the caller's goroutine, which in the
// application is the driver goroutine, so no frame is ever dropped.
type Backend struct {
	config         backend.Config
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	presses        []Press
	next           int
	last           *video.Frame
	logToStderr    bool
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	Name      string // Prefix for snapshot filenames
	Format    snapshot.Format
}

// Press injects a button press once the given frame has been presented.
type Press struct {
	Button input.Button
	Frame  int
}

// Option customises a headless backend.
type Option func(*Backend)

// WithPresses schedules scripted button presses.
func WithPresses(presses []Press) Option {
	return func(b *Backend) {
		b.presses = append([]Press(nil), presses...)
		sort.SliceStable(b.presses, func(i, j int) bool { return b.presses[i].Frame < b.presses[j].Frame })
	}
}

// WithStderrLogging makes Init install a text logger on stderr at the
// configured level.
func WithStderrLogging() Option {
	return func(b *Backend) { b.logToStderr = true }
}

// New creates a backend that quits after maxFrames frames; 0 runs until the
// context is cancelled.
func New(maxFrames int, snapshotConfig SnapshotConfig, opts ...Option) *Backend {
	b := &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (h *Backend) Init(config backend.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	h.config = config

	if h.logToStderr {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: h.config.Level()})
		slog.SetDefault(slog.New(handler))
	}

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory,
		"presses", len(h.presses))
	return nil
}

// Schedule runs work immediately.
func (h *Backend) Schedule(work func()) { work() }

// Present counts the frame, saves snapshots and injects scripted presses.
func (h *Backend) Present(frame *video.Frame) {
	h.frameCount++
	h.last = frame

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	for h.next < len(h.presses) && h.presses[h.next].Frame <= h.frameCount {
		p := h.presses[h.next]
		h.next++
		slog.Debug("Scripted press", "button", p.Button, "frame", h.frameCount)
		h.config.Buttons.Put(p.Button)
	}

	if h.frameCount%60 == 0 {
		slog.Info("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount == h.maxFrames {
		// Save final snapshot if enabled and we haven't just saved one
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			h.saveSnapshot(frame)
		}
		if h.snapshotConfig.Enabled {
			slog.Info("Headless execution completed", "frames", h.maxFrames, "snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.maxFrames)
		}
		h.quit()
	}
}

// Run blocks until the run is cancelled.
func (h *Backend) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns how many frames were presented.
func (h *Backend) Frames() int { return h.frameCount }

// LastFrame returns the most recently presented frame.
func (h *Backend) LastFrame() *video.Frame { return h.last }

func (h *Backend) quit() {
	if h.config.Quit != nil {
		h.config.Quit()
	}
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, name string, format snapshot.Format) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		Name:     name,
		Format:   format,
	}
	if !config.Enabled {
		return config, nil
	}

	dir, err := snapshot.PrepareDir(directory)
	if err != nil {
		return config, err
	}
	config.Directory = dir
	return config, nil
}

// ParsePresses parses a comma separated list of BUTTON@FRAME entries,
// e.g. "start@10,a@30".
func ParsePresses(s string) ([]Press, error) {
	var presses []Press
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, frame, ok := strings.Cut(item, "@")
		if !ok {
			return nil, fmt.Errorf("invalid press %q: want BUTTON@FRAME", item)
		}
		b, err := input.ParseButton(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("invalid press %q: %w", item, err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(frame))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid press %q: bad frame number", item)
		}
		presses = append(presses, Press{Button: b, Frame: n})
	}
	return presses, nil
}

// saveSnapshot saves a snapshot of the current frame
func (h *Backend) saveSnapshot(frame *video.Frame) {
	name := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.Name, h.frameCount)
	if _, err := snapshot.Save(frame, name, h.snapshotConfig.Directory, h.snapshotConfig.Format); err != nil {
		slog.Error("Failed to save snapshot", "frame", h.frameCount, "error", err)
	}
}

var _ backend.Backend = (*Backend)(nil)
