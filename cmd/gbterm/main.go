package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"github.com/valerio/gbterm/gbterm"
	"github.com/valerio/gbterm/gbterm/app"
	"github.com/valerio/gbterm/gbterm/backend"
	"github.com/valerio/gbterm/gbterm/backend/headless"
	"github.com/valerio/gbterm/gbterm/backend/terminal"
	"github.com/valerio/gbterm/gbterm/display"
	"github.com/valerio/gbterm/gbterm/input"
	"github.com/valerio/gbterm/gbterm/logbuf"
	"github.com/valerio/gbterm/gbterm/render"
	"github.com/valerio/gbterm/gbterm/snapshot"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Error running frontend", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	c := cli.NewApp()
	c.Name = "gbterm"
	c.Description = "A terminal frontend for a Game Boy simulation"
	c.Usage = "gbterm [options]"
	c.Version = "1.0.0"
	c.Flags = []cli.Flag{
		cli.BoolTFlag{
			Name:   "test-pattern",
			Usage:  "Run the built-in test pattern simulation",
			EnvVar: "GBTERM_TEST_PATTERN",
		},
		cli.BoolFlag{
			Name:   "headless",
			Usage:  "Run without a terminal UI",
			EnvVar: "GBTERM_HEADLESS",
		},
		cli.IntFlag{
			Name:   "frames",
			Usage:  "Number of frames to run in headless mode (required for headless)",
			EnvVar: "GBTERM_FRAMES",
		},
		cli.IntFlag{
			Name:   "snapshot-interval",
			Usage:  "Save frame snapshots every N frames in headless mode (0 = disabled)",
			EnvVar: "GBTERM_SNAPSHOT_INTERVAL",
		},
		cli.StringFlag{
			Name:   "snapshot-dir",
			Usage:  "Directory to save frame snapshots (default: temp directory in headless mode, working directory otherwise)",
			EnvVar: "GBTERM_SNAPSHOT_DIR",
		},
		cli.StringFlag{
			Name:   "snapshot-format",
			Usage:  "Headless snapshot format: png or txt",
			Value:  string(snapshot.FormatPNG),
			EnvVar: "GBTERM_SNAPSHOT_FORMAT",
		},
		cli.StringFlag{
			Name:   "keymap",
			Usage:  "Key map file (key = action per line), reloaded on change",
			EnvVar: "GBTERM_KEYMAP",
		},
		cli.DurationFlag{
			Name:   "key-timeout",
			Usage:  "How long a button stays held after its last key press",
			Value:  input.DefaultKeyTimeout,
			EnvVar: "GBTERM_KEY_TIMEOUT",
		},
		cli.IntFlag{
			Name:   "fps",
			Usage:  "Target frame rate",
			Value:  display.DefaultFPS,
			EnvVar: "GBTERM_FPS",
		},
		cli.BoolFlag{
			Name:   "unpaced",
			Usage:  "Do not pace frames (default in headless mode)",
			EnvVar: "GBTERM_UNPACED",
		},
		cli.StringFlag{
			Name:   "press",
			Usage:  "Scripted presses for headless mode, e.g. start@10,a@30",
			EnvVar: "GBTERM_PRESS",
		},
		cli.StringFlag{
			Name:   "palette",
			Usage:  "Terminal palette: green or gray",
			Value:  "green",
			EnvVar: "GBTERM_PALETTE",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "Log level: debug, info, warn or error (default: debug headless, info otherwise)",
			EnvVar: "GBTERM_LOG_LEVEL",
		},
	}
	c.Action = runFrontend
	return c
}

func runFrontend(c *cli.Context) error {
	if !c.BoolT("test-pattern") {
		return errors.New("no emulation core is built in, only --test-pattern is available")
	}

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	return a.Run(ctx)
}

func buildConfig(c *cli.Context) (app.Config, error) {
	isHeadless := c.Bool("headless")

	level := new(slog.LevelVar)
	switch {
	case c.String("log-level") != "":
		l, err := logbuf.ParseLevel(c.String("log-level"))
		if err != nil {
			return app.Config{}, err
		}
		level.Set(l)
	case isHeadless:
		level.Set(slog.LevelDebug)
	}

	cfg := app.Config{
		Simulation: gbterm.NewTestPattern(),
		KeyTimeout: c.Duration("key-timeout"),
		FPS:        c.Int("fps"),
		Unpaced:    c.Bool("unpaced"),
		BackendConfig: backend.Config{
			Title:       "Test Pattern",
			LogLevel:    level,
			SnapshotDir: c.String("snapshot-dir"),
		},
	}
	if cfg.KeyTimeout <= 0 {
		return cfg, fmt.Errorf("--key-timeout must be positive, got %v", cfg.KeyTimeout)
	}
	if cfg.FPS <= 0 {
		return cfg, fmt.Errorf("--fps must be positive, got %d", cfg.FPS)
	}

	if isHeadless {
		be, err := headlessBackend(c)
		if err != nil {
			return cfg, err
		}
		cfg.Backend = be
		cfg.Unpaced = cfg.Unpaced || !c.IsSet("fps")
		return cfg, nil
	}

	if path := c.String("keymap"); path != "" {
		km, err := input.LoadKeyMap(path)
		if err != nil {
			return cfg, err
		}
		cfg.BackendConfig.KeyMap = km
		cfg.BackendConfig.KeyMapPath = path
	}

	palette, err := render.ParsePalette(c.String("palette"))
	if err != nil {
		return cfg, err
	}
	cfg.Backend = terminal.New(terminal.WithPalette(palette))
	return cfg, nil
}

func headlessBackend(c *cli.Context) (*headless.Backend, error) {
	frames := c.Int("frames")
	if frames <= 0 {
		return nil, errors.New("headless mode requires --frames option with a positive value")
	}

	format, err := snapshot.ParseFormat(c.String("snapshot-format"))
	if err != nil {
		return nil, err
	}
	snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), "test_pattern", format)
	if err != nil {
		return nil, err
	}

	presses, err := headless.ParsePresses(c.String("press"))
	if err != nil {
		return nil, err
	}

	return headless.New(frames, snapshots,
		headless.WithPresses(presses),
		headless.WithStderrLogging(),
	), nil
}
