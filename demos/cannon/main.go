// cannon aims a cannon at the cursor and fires projectiles through air
// with gravity and drag. It runs in an Ebitengine window, in a terminal or
// headless under an input script.
//
//	go run ./demos/cannon -config cannon.yaml
//	go run ./demos/cannon -backend terminal
//	go run ./demos/cannon -backend headless -script demo.json -frames 600
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/yohamta/donburi"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/throwsim"
	"github.com/phanxgames/throwsim/audio"
	"github.com/phanxgames/throwsim/ecs"
	"github.com/phanxgames/throwsim/internal/logger"
	"github.com/phanxgames/throwsim/terminal"
)

var (
	configPath = flag.String("config", "", "YAML config file; defaults are used when empty")
	backend    = flag.String("backend", "ebiten", "surface: ebiten, terminal or headless")
	scriptPath = flag.String("script", "", "JSON input script to replay")
	maxFrames  = flag.Int("frames", 0, "headless: stop after this many frames (0 = until the script ends)")
	shotDir    = flag.String("screenshots", "screenshots", "ebiten: directory for script screenshots")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cannon: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := throwsim.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = throwsim.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	out, closeLog, err := logOutput(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: out})
	log := logger.L().With("backend", *backend)

	var script *throwsim.ScriptedEvents
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("throwsim: script: %w", err)
		}
		if script, err = throwsim.LoadScript(data); err != nil {
			return err
		}
	}

	world := donburi.NewWorld()
	tally := ecs.NewTally(world)
	store := throwsim.MultiStore{throwsim.LogStore{Logger: log}, ecs.NewProcessingDonburiStore(world)}
	if cfg.Audio.Enabled && *backend != "headless" {
		cues, err := audio.Open(cfg.Audio, log)
		if err != nil {
			log.Warn("audio disabled", "err", err)
		} else {
			defer cues.Close()
			store = append(store, cues)
		}
	}

	surface, source, fonts, cleanup, err := openBackend(cfg, script, log)
	if err != nil {
		return err
	}
	defer cleanup()

	input := throwsim.NewInput()
	sim := throwsim.NewCannonSim(cfg, surface, input, throwsim.SimOptions{
		Fonts:    fonts,
		FontData: goregular.TTF,
		Store:    store,
		Logger:   log,
	})
	loop := throwsim.NewLoop(sim, surface, source, input, throwsim.LoopConfig{
		Background: cfg.BackgroundColor(),
		Logger:     log,
		Debug:      cfg.Logging.Debug,
	})

	log.Info("starting", "width", cfg.Window.Width, "height", cfg.Window.Height)
	runErr := loop.Run()

	t := ecs.ReadTally(world, tally)
	log.Info("stopped", "ticks", sim.Tick(), "fired", t.Fired, "removed", t.Removed, "cleared", t.Cleared, "live", t.Live)
	return runErr
}

// openBackend builds the surface, event source and font loader for the
// -backend flag. A script replaces live input on the headless backend and
// is merged with it elsewhere so Escape still works.
func openBackend(cfg *throwsim.Config, script *throwsim.ScriptedEvents, log *slog.Logger) (
	throwsim.Surface, throwsim.EventSource, throwsim.FontLoader, func(), error,
) {
	withScript := func(live throwsim.EventSource, shots throwsim.Screenshotter) throwsim.EventSource {
		if script == nil {
			return live
		}
		if shots != nil {
			script.SetScreenshotter(shots)
		}
		return throwsim.MultiSource{script, live}
	}

	switch *backend {
	case "ebiten":
		w := throwsim.NewWindow(throwsim.WindowOptions{
			Title:         cfg.Window.Title,
			Width:         cfg.Window.Width,
			Height:        cfg.Window.Height,
			Antialias:     cfg.Window.Antialias,
			ShowFPS:       cfg.Window.ShowFPS,
			ScreenshotDir: *shotDir,
			Logger:        log,
		})
		return w, withScript(w, w), w, func() {}, nil

	case "terminal":
		term, err := terminal.New(terminal.Options{
			SceneWidth:  float64(cfg.Window.Width),
			SceneHeight: float64(cfg.Window.Height),
			Logger:      log,
		})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		cleanup := func() {
			if r := recover(); r != nil {
				term.Fini()
				fmt.Fprintf(os.Stderr, "cannon crashed: %v\n%s\n", r, debug.Stack())
				os.Exit(1)
			}
			term.Fini()
		}
		return term, withScript(term, nil), term, cleanup, nil

	case "headless":
		if script == nil && *maxFrames <= 0 {
			return nil, nil, nil, nil, errors.New("throwsim: headless needs -script or -frames")
		}
		rec := &throwsim.Recorder{MaxFrames: *maxFrames, KeepFrames: 1}
		var source throwsim.EventSource = throwsim.NoEvents{}
		if script != nil {
			script.SetScreenshotter(rec)
			source = closeWhenDone{script}
		}
		return rec, source, rec, func() {
			log.Info("recorded", "frames", rec.Presented(), "screenshots", len(rec.Screenshots()))
		}, nil
	}
	return nil, nil, nil, nil, fmt.Errorf("throwsim: unknown backend %q", *backend)
}

// logOutput returns where log lines go: the configured file, or stderr.
// The terminal backend owns the screen, so without a file it logs nowhere.
func logOutput(path string) (io.Writer, func(), error) {
	if path != "" {
		f, err := logger.OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if *backend == "terminal" {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

// closeWhenDone presses Escape once its script has run out, so a headless
// run without a frame limit still ends.
type closeWhenDone struct {
	script *throwsim.ScriptedEvents
}

func (c closeWhenDone) PollEvents(dst []throwsim.Event) []throwsim.Event {
	if c.script.Done() {
		return append(dst, throwsim.Event{Kind: throwsim.EventKeyDown, Key: throwsim.KeyEscape})
	}
	return c.script.PollEvents(dst)
}
