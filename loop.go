package throwsim

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// TargetTPS is the number of simulation ticks per second.
	TargetTPS = 60
	// FixedStep is the dt, in seconds, passed to every Simulation.Update.
	FixedStep = 1.0 / TargetTPS
	// MaxFrameTime caps the accumulator so a stall never produces more than
	// MaxFrameTime/FixedStep catch-up updates in one cycle.
	MaxFrameTime = 0.25
)

// Simulation is the domain behavior driven by a Loop. Hooks are called from
// the loop's goroutine only, in the order LoadContent, Initialize, then any
// interleaving of Update and Render.
type Simulation interface {
	// LoadContent acquires render resources such as fonts.
	LoadContent() error
	// Initialize builds the initial scene.
	Initialize() error
	// Update advances the simulation by dt seconds. dt is always FixedStep.
	Update(dt float64) error
	// Render draws the current state. alpha in [0, 1) is how far the render
	// falls into the next unconsumed tick.
	Render(alpha float64) error
}

// Clock abstracts wall time for the loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// LoopState is the lifecycle position of a Loop.
type LoopState uint8

const (
	StateCreated LoopState = iota
	StateLoadedContent
	StateInitialized
	StateUpdating
	StateRendering
	StateClosed
)

func (s LoopState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateLoadedContent:
		return "loaded-content"
	case StateInitialized:
		return "initialized"
	case StateUpdating:
		return "updating"
	case StateRendering:
		return "rendering"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// LoopConfig holds optional Loop settings. The zero value is usable.
type LoopConfig struct {
	// Background is the color passed to Surface.Clear each cycle.
	// Zero means opaque black.
	Background Color
	// Clock defaults to the wall clock.
	Clock Clock
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Debug logs per-cycle timing and update counts at debug level.
	Debug bool
}

// Loop runs a Simulation with a fixed update step and one render per cycle.
type Loop struct {
	sim     Simulation
	surface Surface
	events  EventSource
	input   *Input

	clock      Clock
	log        *slog.Logger
	background Color
	debug      bool

	state       LoopState
	accumulator float64
	prev        time.Time
	eventBuf    []Event
}

// NewLoop creates a loop. The loop takes ownership of input: it installs
// surface.Close as the Escape handler and feeds it every event polled from
// events. sim must read the same input during Update.
func NewLoop(sim Simulation, surface Surface, events EventSource, input *Input, cfg LoopConfig) *Loop {
	if events == nil {
		events = NoEvents{}
	}
	if input == nil {
		input = NewInput()
	}
	if cfg.Clock == nil {
		cfg.Clock = wallClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Background == (Color{}) {
		cfg.Background = ColorBlack
	}
	input.SetCloser(surface.Close)
	return &Loop{
		sim:        sim,
		surface:    surface,
		events:     events,
		input:      input,
		clock:      cfg.Clock,
		log:        cfg.Logger,
		background: cfg.Background,
		debug:      cfg.Debug,
		eventBuf:   make([]Event, 0, 16),
	}
}

// Input returns the adapter fed by this loop.
func (l *Loop) Input() *Input { return l.input }

// State returns the current lifecycle state.
func (l *Loop) State() LoopState { return l.state }

// Accumulator returns the simulated time not yet consumed by Update.
func (l *Loop) Accumulator() float64 { return l.accumulator }

// Run loads content, initializes the simulation, then cycles until the
// surface reports closed. The first hook error stops the loop and is
// returned.
func (l *Loop) Run() error {
	if err := l.start(); err != nil {
		return err
	}
	l.prev = l.clock.Now()

	if d, ok := l.surface.(Driver); ok {
		err := d.Drive(func() error {
			_, err := l.cycle()
			return err
		})
		l.state = StateClosed
		return err
	}

	for l.surface.IsOpen() {
		started, err := l.cycle()
		if err != nil {
			return err
		}
		if rest := started.Add(time.Duration(FixedStep * float64(time.Second))).Sub(l.clock.Now()); rest > 0 {
			l.clock.Sleep(rest)
		}
	}
	l.state = StateClosed
	l.log.Debug("loop closed")
	return nil
}

func (l *Loop) start() error {
	if err := l.sim.LoadContent(); err != nil {
		return fmt.Errorf("throwsim: load content: %w", err)
	}
	l.state = StateLoadedContent
	if err := l.sim.Initialize(); err != nil {
		return fmt.Errorf("throwsim: initialize: %w", err)
	}
	l.state = StateInitialized
	return nil
}

// cycle measures the wall time since the previous cycle and steps once.
// It returns the time the cycle started.
func (l *Loop) cycle() (time.Time, error) {
	now := l.clock.Now()
	elapsed := now.Sub(l.prev).Seconds()
	l.prev = now
	_, _, err := l.Step(elapsed)
	return now, err
}

// Step runs one cycle as if elapsed seconds of wall time had passed: clear,
// dispatch pending input, accumulate, drain with fixed updates, render once
// and present. It returns the number of updates run and the alpha passed to
// Render.
func (l *Loop) Step(elapsed float64) (updates int, alpha float64, err error) {
	l.surface.Clear(l.background)
	l.dispatchEvents()

	l.accumulator += elapsed
	if l.accumulator > MaxFrameTime {
		l.log.Debug("frame time clamped", "accumulated", l.accumulator, "dropped", l.accumulator-MaxFrameTime)
		l.accumulator = MaxFrameTime
	}

	l.state = StateUpdating
	for l.accumulator >= FixedStep {
		if err := l.sim.Update(FixedStep); err != nil {
			return updates, 0, fmt.Errorf("throwsim: update: %w", err)
		}
		l.accumulator -= FixedStep
		updates++
	}

	alpha = l.accumulator / FixedStep
	l.state = StateRendering
	if err := l.sim.Render(alpha); err != nil {
		return updates, alpha, fmt.Errorf("throwsim: render: %w", err)
	}
	l.surface.Present()

	if l.debug {
		l.logStats(cycleStats{elapsed: elapsed, updates: updates, alpha: alpha, events: len(l.eventBuf)})
	}
	return updates, alpha, nil
}

// dispatchEvents drains the event source into the input adapter.
func (l *Loop) dispatchEvents() {
	l.eventBuf = l.events.PollEvents(l.eventBuf[:0])
	for _, ev := range l.eventBuf {
		l.input.Dispatch(ev)
	}
}
