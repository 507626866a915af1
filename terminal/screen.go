// Package terminal renders a throwsim scene into a character terminal with
// tcell. Batches are rasterised into cells: fills become solid blocks, lines
// become dots and text is written cell by cell. Mouse and keyboard input is
// translated into throwsim events.
package terminal

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/throwsim"
)

const (
	fillRune = '█'
	lineRune = '·'

	// DefaultKeyHold is how long a key counts as held after its last press
	// event when no release event arrives.
	DefaultKeyHold = 150 * time.Millisecond
)

// Options configures a Screen.
type Options struct {
	// SceneWidth and SceneHeight are the scene size in pixels that the
	// terminal grid is stretched over.
	SceneWidth  float64
	SceneHeight float64
	// KeyHold overrides DefaultKeyHold.
	KeyHold time.Duration
	Logger  *slog.Logger
}

// Screen is a tcell-backed Surface, EventSource and FontLoader.
//
// Terminals report key presses and repeats but no releases, so a key is
// released once KeyHold passes without another press event for it.
type Screen struct {
	screen tcell.Screen
	log    *slog.Logger

	width, height float64
	cols, rows    int
	background    tcell.Style

	events chan tcell.Event
	quit   chan struct{}
	closed bool

	keyHold time.Duration
	now     func() time.Time
	held    [throwsim.KeyEscape + 1]time.Time
	isHeld  [throwsim.KeyEscape + 1]bool

	buttons   tcell.ButtonMask
	cursorX   int
	cursorY   int
	hasCursor bool
}

// New opens the controlling terminal.
func New(opts Options) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("throwsim: terminal: %w", err)
	}
	return NewWithScreen(s, opts)
}

// NewWithScreen initializes s and starts pumping its events. Pass a
// tcell.SimulationScreen to run without a terminal.
func NewWithScreen(s tcell.Screen, opts Options) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("throwsim: terminal: init: %w", err)
	}
	s.EnableMouse()
	s.HideCursor()

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	hold := opts.KeyHold
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	t := &Screen{
		screen:     s,
		log:        log,
		width:      opts.SceneWidth,
		height:     opts.SceneHeight,
		background: tcell.StyleDefault,
		events:     make(chan tcell.Event, 100),
		quit:       make(chan struct{}),
		keyHold:    hold,
		now:        time.Now,
	}
	t.cols, t.rows = s.Size()
	go t.pump()
	return t, nil
}

// pump forwards raw tcell events to the loop goroutine. It exits when the
// screen is finalized.
func (t *Screen) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Fini restores the terminal. Call it once the loop has returned.
func (t *Screen) Fini() {
	select {
	case <-t.quit:
		return
	default:
	}
	close(t.quit)
	t.screen.Fini()
}

// Size returns the grid size in cells.
func (t *Screen) Size() (cols, rows int) { return t.cols, t.rows }

// IsOpen reports whether Close has been called.
func (t *Screen) IsOpen() bool { return !t.closed }

// Close stops the loop after the current cycle. The terminal stays
// initialized until Fini.
func (t *Screen) Close() { t.closed = true }

// LoadFont returns a font one cell tall; the data is ignored.
func (t *Screen) LoadFont([]byte) (throwsim.Font, error) {
	return cellFont{t}, nil
}

type cellFont struct{ t *Screen }

func (f cellFont) LineHeight(uint) float64 { return f.t.cellHeight() }

func (t *Screen) cellWidth() float64  { return t.width / float64(max(t.cols, 1)) }
func (t *Screen) cellHeight() float64 { return t.height / float64(max(t.rows, 1)) }

// toCell maps a scene point to the cell containing it.
func (t *Screen) toCell(p throwsim.Vec2) (int, int) {
	return int(math.Floor(p.X / t.cellWidth())), int(math.Floor(p.Y / t.cellHeight()))
}

// toScene maps a cell to the scene point at its center.
func (t *Screen) toScene(x, y int) throwsim.Vec2 {
	return throwsim.Vec2{
		X: (float64(x) + 0.5) * t.cellWidth(),
		Y: (float64(y) + 0.5) * t.cellHeight(),
	}
}
