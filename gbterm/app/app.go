// Package app wires a simulation, the driver loop, the UI bridge and a
// backend into a running frontend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/valerio/gbterm/gbterm"
	"github.com/valerio/gbterm/gbterm/backend"
	"github.com/valerio/gbterm/gbterm/bridge"
	"github.com/valerio/gbterm/gbterm/display"
	"github.com/valerio/gbterm/gbterm/driver"
	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/mailbox"
	"github.com/valerio/gbterm/gbterm/timing"
)

var (
	ErrNoSimulation = errors.New("app: nil simulation")
	ErrNoBackend    = errors.New("app: nil backend")
)

// Config describes one run of the frontend.
type Config struct {
	Simulation gbterm.Simulation
	Backend    backend.Backend

	// BackendConfig is passed to Backend.Init. Buttons and Quit are
	// filled in by the app.
	BackendConfig backend.Config

	// KeyTimeout is the synthesized release delay; 0 selects
	// input.DefaultKeyTimeout.
	KeyTimeout time.Duration
	// FPS sets the pacing rate; 0 selects 60.
	FPS int
	// Unpaced runs frames as fast as the simulation produces them.
	Unpaced bool
	// MaxIterations bounds the driver loop; 0 means unbounded.
	MaxIterations uint64
}

// Stats summarises a finished run.
type Stats struct {
	Driver driver.Stats
	Bridge bridge.Stats
}

// App owns the mailboxes, the bridge and the driver for a single run.
type App struct {
	config  Config
	buttons *mailbox.Mailbox[input.Button]
	bridge  *bridge.Bridge
	driver  *driver.Driver
}

func New(config Config) (*App, error) {
	if config.Simulation == nil {
		return nil, ErrNoSimulation
	}
	if config.Backend == nil {
		return nil, ErrNoBackend
	}
	if config.FPS < 0 {
		return nil, fmt.Errorf("invalid fps %d", config.FPS)
	}
	if config.FPS == 0 {
		config.FPS = display.DefaultFPS
	}
	return &App{config: config, buttons: mailbox.New[input.Button]()}, nil
}

// Run initialises the backend, starts the driver on its own goroutine and
// runs the backend's UI loop on the calling goroutine. It returns once
// both have stopped: when ctx is cancelled, the user quits, the driver
// reaches MaxIterations or either side fails. A driver error takes
// precedence over a UI error.
func (a *App) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	be := a.config.Backend
	bcfg := a.config.BackendConfig
	bcfg.Buttons = a.buttons
	bcfg.Quit = cancel
	if err := be.Init(bcfg); err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if cerr := be.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("backend cleanup: %w", cerr)
		}
	}()

	a.bridge, err = bridge.New(be, be.Present)
	if err != nil {
		return err
	}

	var limiter timing.Limiter
	if a.config.Unpaced {
		limiter = timing.NewNoOpLimiter()
	} else {
		limiter = timing.NewPacer(timing.PeriodForFPS(a.config.FPS), timing.SystemClock{})
	}

	a.driver, err = driver.New(a.config.Simulation, a.buttons, a.bridge, driver.Options{
		KeyTimeout:    a.config.KeyTimeout,
		Limiter:       limiter,
		MaxIterations: a.config.MaxIterations,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the UI has nothing left to show once the driver stops
		defer cancel()
		return a.driver.Run(gctx)
	})

	uiErr := be.Run(gctx)
	cancel()
	driverErr := g.Wait()

	stats := a.Stats()
	slog.Info("Run finished",
		"frames", stats.Driver.Frames,
		"presented", stats.Bridge.Presented,
		"dropped", stats.Bridge.Dropped,
		"presses", stats.Driver.Presses)

	if driverErr != nil {
		return driverErr
	}
	return uiErr
}

// Stats returns counters for the last run. Only meaningful after Run
// has returned.
func (a *App) Stats() Stats {
	var s Stats
	if a.driver != nil {
		s.Driver = a.driver.Stats()
	}
	if a.bridge != nil {
		s.Bridge = a.bridge.Stats()
	}
	return s
}
