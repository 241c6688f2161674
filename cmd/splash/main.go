package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/splash/internal/config"
	"github.com/1broseidon/splash/internal/launcher"
	"github.com/1broseidon/splash/internal/platform"
	"github.com/1broseidon/splash/internal/render"
	"github.com/1broseidon/splash/internal/supervisor"
)

// child is the view of a spawned program the command needs.
type child interface {
	launcher.Child
	PID() int
	Release() error
}

// deps holds the side-effecting constructors so tests can replace them.
type deps struct {
	openWindow func(platform.Options) (platform.SplashWindow, error)
	spawn      func(path string, args ...string) (child, error)
	sleep      func(time.Duration)
}

func defaultDeps() deps {
	return deps{
		openWindow: platform.NewSplashWindow,
		spawn: func(path string, args ...string) (child, error) {
			p, err := supervisor.Spawn(path, args...)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		sleep: time.Sleep,
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, defaultDeps()))
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: splash [options] <program> [args...]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Shows an animated splash screen while <program> starts. The splash")
	fmt.Fprintln(w, "stays up for at least the minimum display time, then closes.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func run(args []string, stdout, stderr io.Writer, d deps) int {
	fs := flag.NewFlagSet("splash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "Config file path (default: $XDG_CONFIG_HOME/splash/config.yaml)")
	variant := fs.String("variant", "", "Animation variant: rocket or dots")
	minDisplay := fs.Duration("min-display", config.DefaultMinDisplay, "Minimum time the splash stays visible")
	caption := fs.String("caption", "", "Text drawn under the animation")
	verbose := fs.Bool("verbose", false, "Enable debug logging on stderr")
	printConfig := fs.Bool("print-config", false, "Print the effective configuration and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, fs)
			return 0
		}
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "")
		printUsage(stderr, fs)
		return 2
	}

	if fs.NArg() < 1 && !*printConfig {
		printUsage(stderr, fs)
		return 2
	}

	logger := newLogger(stderr, *verbose)

	var (
		res *config.LoadResult
		err error
	)
	if *configPath == "" {
		res, err = config.Load()
	} else {
		res, err = config.LoadFromPath(*configPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	cfg := res.Config
	if res.File != "" {
		logger.Debug("loaded config", "file", res.File)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "variant":
			cfg.Variant = config.Variant(*variant)
		case "min-display":
			cfg.MinDisplay = *minDisplay
		case "caption":
			cfg.Caption = *caption
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid option: %v\n\n", err)
		printUsage(stderr, fs)
		return 2
	}

	if *printConfig {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
		return 0
	}

	program := fs.Arg(0)
	programArgs := fs.Args()[1:]

	scene, err := render.SceneByName(string(cfg.Variant), cfg.Caption)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid option: %v\n", err)
		return 2
	}
	renderer := render.NewRenderer(scene, render.WithBackground(cfg.BackgroundColor()))

	fmt.Fprintf(stdout, "Launching: %s\n", program)

	win, err := d.openWindow(platform.Options{
		Title:    cfg.Title,
		Renderer: renderer,
		Display:  cfg.Display,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer win.Close()

	proc, err := d.spawn(program, programArgs...)
	if err != nil {
		win.Close()
		var lerr *supervisor.LaunchError
		if errors.As(err, &lerr) {
			err = lerr.Err
		}
		fmt.Fprintf(stderr, "Failed to launch program: %v\n", err)
		return 1
	}
	defer proc.Release()

	fmt.Fprintf(stdout, "Started process with PID: %d\n", proc.PID())
	fmt.Fprintf(stdout, "Showing splash screen for at least %s...\n", launcher.DescribeMinDisplay(cfg.MinDisplay))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := &launcher.Loop{
		Window:        win,
		Child:         proc,
		MinDisplay:    cfg.MinDisplay,
		FrameInterval: cfg.FrameInterval,
		Sleep:         d.sleep,
		Out:           stdout,
		Logger:        logger,
	}
	result := loop.Run(ctx)
	logger.Debug("splash closed",
		"outcome", result.Outcome.String(),
		"frames", result.Frames,
		"elapsed", result.Elapsed,
		"pid", proc.PID(),
	)
	return 0
}

// newLogger writes text to a terminal and JSON otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
