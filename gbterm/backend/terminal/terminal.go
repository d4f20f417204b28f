package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/valerio/gbterm/gbterm/backend"
	"github.com/valerio/gbterm/gbterm/display"
	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/logbuf"
	"github.com/valerio/gbterm/gbterm/render"
	"github.com/valerio/gbterm/gbterm/snapshot"
	"github.com/valerio/gbterm/gbterm/video"
)

const (
	logBufferSize = 200
	logLines      = 100
)

// Backend implements backend.Backend on top of a tview application. The
// application's event loop is the UI goroutine: key handling, scheduled
// work and drawing all happen there.
type Backend struct {
	config backend.Config

	app     *tview.Application
	layout  *tview.Flex
	screen  *Screen
	logView *tview.TextView

	tscreen    tcell.Screen
	palette    *render.Palette
	translator *render.Translator

	logs        *logbuf.Buffer
	logsVersion uint64
	showLogs    bool

	watcher *input.KeyMapWatcher

	// work queued by Schedule, drained into the event loop by pump
	queueMu  sync.Mutex
	queue    []func()
	wake     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	// owned by the UI goroutine
	keys      input.KeyMap
	last      *video.Frame
	presented uint64
}

// Option customises a terminal backend.
type Option func(*Backend)

// WithScreen draws to s instead of the controlling terminal.
func WithScreen(s tcell.Screen) Option {
	return func(b *Backend) { b.tscreen = s }
}

// WithPalette selects the colors used for the four shades.
func WithPalette(p *render.Palette) Option {
	return func(b *Backend) { b.palette = p }
}

// New creates a new terminal backend
func New(opts ...Option) *Backend {
	b := &Backend{showLogs: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init builds the UI and routes logging into the log panel.
func (b *Backend) Init(config backend.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	b.config = config
	level := b.config.Level()

	b.keys = config.KeyMap
	if b.keys == nil {
		b.keys = input.DefaultKeyMap.Clone()
	}

	b.logs = logbuf.New(logBufferSize)
	slog.SetDefault(slog.New(logbuf.NewHandler(b.logs, level)))

	b.screen = NewScreen()
	b.screen.SetBorder(true)
	title := config.Title
	if title == "" {
		title = "Game Boy"
	}
	b.screen.SetTitle(" " + title + " ")

	b.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetMaxLines(logLines)
	b.logView.SetBorder(true)
	b.updateLogTitle()

	b.layout = tview.NewFlex().
		AddItem(b.screen, display.CellColumns+2, 0, true).
		AddItem(b.logView, 0, 1, false)

	b.app = tview.NewApplication()
	if b.tscreen != nil {
		b.app.SetScreen(b.tscreen)
	}
	b.app.SetRoot(b.layout, true).
		SetInputCapture(b.handleKey)

	b.translator = render.NewTranslator(b.screen.North(), b.palette)

	b.wake = make(chan struct{}, 1)
	b.stopped = make(chan struct{})
	go b.pump()

	if config.KeyMapPath != "" {
		w, err := input.WatchKeyMap(config.KeyMapPath, func(km input.KeyMap) {
			b.Schedule(func() { b.keys = km })
		})
		if err != nil {
			b.markStopped()
			return err
		}
		b.watcher = w
	}

	slog.Info("Terminal backend initialized", "bindings", len(b.keys))
	slog.Info("Controls", "keys", b.keys.Help())
	return nil
}

// Schedule queues work for the tview event loop, which redraws after
// running it. It never waits for the loop; work queued after the loop has
// stopped is dropped.
func (b *Backend) Schedule(work func()) {
	b.queueMu.Lock()
	b.queue = append(b.queue, work)
	b.queueMu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// pump hands queued work to the event loop in submission order. tview's
// QueueUpdate blocks until the item has run, so only this goroutine ever
// waits on it.
func (b *Backend) pump() {
	for {
		select {
		case <-b.stopped:
			return
		case <-b.wake:
		}

		b.queueMu.Lock()
		batch := b.queue
		b.queue = nil
		b.queueMu.Unlock()
		if len(batch) == 0 {
			continue
		}

		b.app.QueueUpdateDraw(func() {
			for _, work := range batch {
				work()
			}
		})
	}
}

func (b *Backend) markStopped() {
	b.stopOnce.Do(func() { close(b.stopped) })
}

// Present translates frame into the screen primitive. The next draw of the
// application shows it.
func (b *Backend) Present(frame *video.Frame) {
	b.last = frame
	b.presented++
	b.screen.Reset(b.translator.Translate(frame))
	b.refreshLogs()
}

// Run runs the tview event loop until ctx is cancelled or the user quits.
func (b *Backend) Run(ctx context.Context) error {
	defer b.markStopped()

	go func() {
		select {
		case <-ctx.Done():
			b.Schedule(b.app.Stop)
		case <-b.stopped:
		}
	}()

	if err := b.app.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// Cleanup stops the key map watcher and sends logging back to stderr.
func (b *Backend) Cleanup() error {
	b.markStopped()

	var err error
	if b.watcher != nil {
		err = b.watcher.Close()
		b.watcher = nil
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: b.config.Level()})))
	slog.Info("Terminal backend closed", "presented", b.presented)
	return err
}

// handleKey is the application's input capture. Mapped keys are consumed;
// anything else is passed on to tview.
func (b *Backend) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	act, ok := b.keys.Lookup(KeyName(ev))
	if !ok {
		return ev
	}

	if btn, ok := act.Button(); ok {
		if b.config.Buttons.Put(btn) {
			slog.Debug("Button press coalesced", "button", btn)
		}
		return nil
	}

	b.HandleAction(act)
	return nil
}

// HandleAction processes frontend actions. Must run on the UI goroutine.
func (b *Backend) HandleAction(act input.Action) {
	switch act {
	case input.EmulatorQuit:
		slog.Info("Quit requested")
		b.quit()
	case input.EmulatorSnapshot:
		if _, err := snapshot.SaveTimestamped(b.last, "gbterm", b.config.SnapshotDir); err != nil {
			slog.Error("Failed to save snapshot", "error", err)
		}
	case input.EmulatorLogToggle:
		b.showLogs = !b.showLogs
		if b.showLogs {
			b.layout.AddItem(b.logView, 0, 1, false)
		} else {
			b.layout.RemoveItem(b.logView)
		}
	case input.DebugLogLevelIncrease:
		b.changeLogLevel(false)
	case input.DebugLogLevelDecrease:
		b.changeLogLevel(true)
	}
	b.refreshLogs()
}

func (b *Backend) quit() {
	if b.config.Quit != nil {
		b.config.Quit()
		return
	}
	b.app.Stop()
}

func (b *Backend) changeLogLevel(quieter bool) {
	level := b.config.Level()
	old := level.Level()
	if l := logbuf.ShiftLevel(level, quieter); l != old {
		slog.Warn("Log filter changed", "from", old, "to", l)
	}
	b.updateLogTitle()
}

func (b *Backend) updateLogTitle() {
	b.logView.SetTitle(fmt.Sprintf(" Logs [%s] (-/+ filter) ", b.config.Level().Level()))
}

// refreshLogs rewrites the log panel when new entries arrived, newest last.
func (b *Backend) refreshLogs() {
	v := b.logs.Version()
	if v == b.logsVersion || !b.showLogs {
		return
	}
	b.logsVersion = v

	entries := b.logs.Recent(logLines)
	var sb strings.Builder
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(&sb, "[%s]%s[-]\n", levelColor(e.Level), tview.Escape(logbuf.Format(e)))
	}
	b.logView.SetText(sb.String())
	b.logView.ScrollToEnd()
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "red"
	case l >= slog.LevelWarn:
		return "yellow"
	case l >= slog.LevelInfo:
		return "blue"
	default:
		return "gray"
	}
}

// Keys returns the active key map. Must run on the UI goroutine.
func (b *Backend) Keys() input.KeyMap { return b.keys }

// LastFrame returns the most recently presented frame.
func (b *Backend) LastFrame() *video.Frame { return b.last }

var _ backend.Backend = (*Backend)(nil)
