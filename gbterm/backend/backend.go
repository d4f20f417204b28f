// Package backend defines the UI side of the frontend: something that owns
// a goroutine, runs scheduled work items on it and presents frames.
package backend

import (
	"context"
	"errors"
	"log/slog"

	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/mailbox"
	"github.com/valerio/gbterm/gbterm/video"
)

var ErrNoButtons = errors.New("backend: nil button mailbox")

// Backend represents a complete frontend platform (rendering + input).
// Backends are responsible for:
// - Running work items from the bridge on their UI goroutine
// - Presenting frames handed to them by those work items
// - Translating platform input to buttons in the button mailbox
type Backend interface {
	// Init configures the backend. It must be called before Run.
	Init(config Config) error

	// Schedule queues work to run on the UI goroutine. It must not wait
	// for the work to run.
	Schedule(work func())

	// Present draws frame. Only called from scheduled work.
	Present(frame *video.Frame)

	// Run drives the UI until ctx is cancelled or the user quits, in which
	// case it calls Config.Quit.
	Run(ctx context.Context) error

	// Cleanup releases platform resources after Run returns.
	Cleanup() error
}

// Config holds what a backend needs from the application.
type Config struct {
	Title string

	// Buttons receives game button presses.
	Buttons *mailbox.Mailbox[input.Button]

	// KeyMap translates platform keys to actions. Nil selects the defaults.
	KeyMap input.KeyMap
	// KeyMapPath, when set, is watched and reloaded on change.
	KeyMapPath string

	// LogLevel is the threshold of the logger the backend installs. The
	// terminal backend adjusts it at runtime. Nil means info.
	LogLevel *slog.LevelVar

	// SnapshotDir is where user-requested snapshots are written.
	SnapshotDir string

	// Quit asks the application to shut down. Backends call it when the
	// user quits; it cancels the context passed to Run.
	Quit func()
}

func (c Config) Validate() error {
	if c.Buttons == nil {
		return ErrNoButtons
	}
	return nil
}

// Level returns the configured log level, allocating one if unset.
func (c *Config) Level() *slog.LevelVar {
	if c.LogLevel == nil {
		c.LogLevel = new(slog.LevelVar)
	}
	return c.LogLevel
}
