// Package driver runs a simulation on its own goroutine, feeding it input
// from the UI and pacing the frames it produces.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/valerio/gbterm/gbterm"
	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/mailbox"
	"github.com/valerio/gbterm/gbterm/timing"
	"github.com/valerio/gbterm/gbterm/video"
)

var (
	ErrNoSimulation = errors.New("driver: nil simulation")
	ErrNoOutput     = errors.New("driver: nil frame output")
	ErrNoButtons    = errors.New("driver: nil button mailbox")
)

// FrameOutput receives every paced frame. In the application this is the
// UI bridge.
type FrameOutput interface {
	Deliver(frame *video.Frame)
}

// Options configures a Driver. Zero values select defaults.
type Options struct {
	// KeyTimeout is how long a button stays held without a repeat press.
	KeyTimeout time.Duration
	// Limiter paces frames; defaults to a 60Hz timing.Pacer.
	Limiter timing.Limiter
	// Clock supplies timestamps for key timeouts; defaults to the wall clock.
	Clock timing.Clock
	// MaxIterations stops the loop after this many steps; 0 means unbounded.
	MaxIterations uint64
}

// Stats describes a finished or running loop.
type Stats struct {
	Iterations uint64
	Frames     uint64
	Presses    uint64
	Releases   uint64
}

// Driver is the emulation loop. Run must be called from exactly one
// goroutine; the button mailbox is the only state shared with the UI.
type Driver struct {
	sim     gbterm.Simulation
	buttons *mailbox.Mailbox[input.Button]
	out     FrameOutput
	tracker *input.Tracker
	limiter timing.Limiter
	clock   timing.Clock
	max     uint64

	stats Stats
}

func New(sim gbterm.Simulation, buttons *mailbox.Mailbox[input.Button], out FrameOutput, opts Options) (*Driver, error) {
	if sim == nil {
		return nil, ErrNoSimulation
	}
	if buttons == nil {
		return nil, ErrNoButtons
	}
	if out == nil {
		return nil, ErrNoOutput
	}

	d := &Driver{
		sim:     sim,
		buttons: buttons,
		out:     out,
		tracker: input.NewTracker(opts.KeyTimeout),
		limiter: opts.Limiter,
		clock:   opts.Clock,
		max:     opts.MaxIterations,
	}
	if d.clock == nil {
		d.clock = timing.SystemClock{}
	}
	if d.limiter == nil {
		d.limiter = timing.NewPacer(timing.DefaultFramePeriod, d.clock)
	}
	return d, nil
}

// Run loops until ctx is cancelled, MaxIterations is reached or the
// simulation fails. Cancellation is checked once per iteration and is not
// an error. On either clean exit held buttons are released before
// returning. A simulation error is fatal and returned wrapped.
func (d *Driver) Run(ctx context.Context) error {
	slog.Info("Driver started", "key_timeout", d.tracker.Timeout())
	d.limiter.Reset()

	for d.max == 0 || d.stats.Iterations < d.max {
		select {
		case <-ctx.Done():
			d.releaseAll()
			slog.Info("Driver stopped", "frames", d.stats.Frames, "iterations", d.stats.Iterations)
			return nil
		default:
		}

		if err := d.iterate(); err != nil {
			slog.Error("Simulation failed", "error", err, "frames", d.stats.Frames)
			return err
		}
	}

	d.releaseAll()
	slog.Info("Driver finished", "frames", d.stats.Frames, "iterations", d.stats.Iterations)
	return nil
}

func (d *Driver) iterate() error {
	d.stats.Iterations++
	now := d.clock.Now()

	if b, ok := d.buttons.Take(); ok {
		if d.tracker.Press(b, now) {
			slog.Debug("Button down", "button", b, "held", d.tracker.Held())
		}
		d.sim.ButtonPressed(b)
		d.stats.Presses++
	}

	for _, b := range d.tracker.Expire(now) {
		slog.Debug("Button up", "button", b)
		d.sim.ButtonReleased(b)
		d.stats.Releases++
	}

	res, err := d.sim.Step()
	if err != nil {
		return fmt.Errorf("simulation step %d: %w", d.stats.Iterations, err)
	}

	if res.FrameReady() {
		d.limiter.WaitForNextFrame()
		d.stats.Frames++
		d.out.Deliver(res.Frame)
	}
	return nil
}

// releaseAll lets the simulation see every held button go up before the
// loop exits.
func (d *Driver) releaseAll() {
	for _, b := range d.tracker.ReleaseAll() {
		d.sim.ButtonReleased(b)
		d.stats.Releases++
	}
}

// Stats returns the loop counters. Only valid once Run has returned, or
// from the driver goroutine itself.
func (d *Driver) Stats() Stats { return d.stats }
