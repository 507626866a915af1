package throwsim

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// lineWidth is the thickness, in pixels, of line and line-strip batches.
const lineWidth = 1.5

// WindowOptions configures a Window.
type WindowOptions struct {
	Title  string
	Width  int
	Height int
	// Antialias enables antialiasing on triangle draws.
	Antialias bool
	// ShowFPS overlays the actual FPS and TPS in the bottom-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNGs. Empty means
	// "screenshots".
	ScreenshotDir string
	Logger        *slog.Logger
}

// Window is an Ebitengine-backed Surface. It is also the EventSource,
// FontLoader and Driver for the loop that owns it: Ebitengine calls Update
// once per frame, the loop cycle runs inside it and records draw calls,
// and Draw replays the last presented frame.
type Window struct {
	opts WindowOptions
	log  *slog.Logger

	frames Recorder
	cycle  func() error
	closed bool

	cursorX, cursorY int
	cursorKnown      bool
	keyBuf           []ebiten.Key

	verts []ebiten.Vertex
	inds  []uint16

	screenshotQueue []string
	shotSeq         int
}

// NewWindow creates a window. Nothing is opened until Drive.
func NewWindow(opts WindowOptions) *Window {
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Window{
		opts:   opts,
		log:    log,
		frames: Recorder{KeepFrames: 1},
	}
}

// Clear starts recording a new frame.
func (w *Window) Clear(c Color) { w.frames.Clear(c) }

// DrawBatch records b for the frame being built.
func (w *Window) DrawBatch(b Batch) { w.frames.DrawBatch(b) }

// DrawText records t for the frame being built.
func (w *Window) DrawText(t TextDraw) { w.frames.DrawText(t) }

// Present makes the recorded frame the one Draw shows.
func (w *Window) Present() { w.frames.Present() }

// IsOpen reports whether Close has been called.
func (w *Window) IsOpen() bool { return !w.closed }

// Close ends Drive after the current frame.
func (w *Window) Close() { w.closed = true }

// LoadFont parses TrueType data.
func (w *Window) LoadFont(data []byte) (Font, error) {
	return LoadTTFFont(data)
}

// Drive opens the window and runs cycle once per Ebitengine update until
// the window is closed or cycle fails.
func (w *Window) Drive(cycle func() error) error {
	w.cycle = cycle
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowSize(w.opts.Width, w.opts.Height)
	// The loop does its own fixed stepping; one cycle per rendered frame.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(windowGame{w})
	w.closed = true
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("throwsim: window: %w", err)
	}
	return nil
}

// windowGame adapts Window to ebiten.Game.
type windowGame struct{ w *Window }

func (g windowGame) Update() error {
	w := g.w
	if w.closed {
		return ebiten.Termination
	}
	if err := w.cycle(); err != nil {
		return err
	}
	if w.closed {
		return ebiten.Termination
	}
	return nil
}

func (g windowGame) Draw(screen *ebiten.Image) {
	g.w.draw(screen)
}

func (g windowGame) Layout(_, _ int) (int, int) {
	return g.w.opts.Width, g.w.opts.Height
}

// PollEvents translates this frame's Ebitengine input state into events.
// It must be called from inside Update.
func (w *Window) PollEvents(dst []Event) []Event {
	x, y := ebiten.CursorPosition()
	if !w.cursorKnown || x != w.cursorX || y != w.cursorY {
		w.cursorX, w.cursorY, w.cursorKnown = x, y, true
		dst = append(dst, Event{Kind: EventMouseMove, X: float64(x), Y: float64(y)})
	}

	for eb, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(eb) {
			dst = append(dst, Event{Kind: EventButtonDown, Button: b})
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			dst = append(dst, Event{Kind: EventButtonUp, Button: b})
		}
	}

	w.keyBuf = inpututil.AppendJustPressedKeys(w.keyBuf[:0])
	dst = appendKeyEvents(dst, w.keyBuf, EventKeyDown)
	w.keyBuf = inpututil.AppendJustReleasedKeys(w.keyBuf[:0])
	dst = appendKeyEvents(dst, w.keyBuf, EventKeyUp)
	return dst
}

var mouseButtons = map[ebiten.MouseButton]MouseButton{
	ebiten.MouseButtonLeft:   MouseButtonLeft,
	ebiten.MouseButtonRight:  MouseButtonRight,
	ebiten.MouseButtonMiddle: MouseButtonMiddle,
}

var ebitenKeys = map[ebiten.Key]Key{
	ebiten.KeyQ: KeyQ, ebiten.KeyA: KeyA,
	ebiten.KeyW: KeyW, ebiten.KeyS: KeyS,
	ebiten.KeyE: KeyE, ebiten.KeyD: KeyD,
	ebiten.KeyR: KeyR, ebiten.KeyF: KeyF,
	ebiten.KeyT: KeyT, ebiten.KeyG: KeyG,
	ebiten.KeyY: KeyY, ebiten.KeyH: KeyH,
	ebiten.KeyC:      KeyC,
	ebiten.KeyF1:     KeyF1,
	ebiten.KeyF2:     KeyF2,
	ebiten.KeyEscape: KeyEscape,
}

// appendKeyEvents appends one event per mapped key; unmapped keys are
// dropped.
func appendKeyEvents(dst []Event, keys []ebiten.Key, kind EventKind) []Event {
	for _, ek := range keys {
		if k, ok := ebitenKeys[ek]; ok {
			dst = append(dst, Event{Kind: kind, Key: k})
		}
	}
	return dst
}

// --- drawing ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

func (w *Window) draw(screen *ebiten.Image) {
	f := w.frames.Last()
	if f == nil {
		return
	}
	screen.Fill(toRGBA(f.Background))
	for _, op := range f.Ops {
		switch {
		case op.Batch != nil:
			w.drawBatch(screen, op.Batch)
		case op.Text != nil:
			drawTextOp(screen, op.Text)
		}
	}
	w.flushScreenshots(screen)
	if w.opts.ShowFPS {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
			4, w.opts.Height-36)
	}
}

func (w *Window) drawBatch(screen *ebiten.Image, b *Batch) {
	switch b.Primitive {
	case PrimitivePolygon, PrimitiveTriangleFan:
		w.verts, w.inds = appendFan(w.verts[:0], w.inds[:0], b.Vertices)
	case PrimitiveLineStrip:
		w.verts, w.inds = w.verts[:0], w.inds[:0]
		for i := 0; i+1 < len(b.Vertices); i++ {
			w.verts, w.inds = appendLineQuad(w.verts, w.inds, b.Vertices[i], b.Vertices[i+1], lineWidth)
		}
	case PrimitiveLines:
		w.verts, w.inds = w.verts[:0], w.inds[:0]
		for i := 0; i+1 < len(b.Vertices); i += 2 {
			w.verts, w.inds = appendLineQuad(w.verts, w.inds, b.Vertices[i], b.Vertices[i+1], lineWidth)
		}
	}
	if len(w.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = w.opts.Antialias
	screen.DrawTriangles(w.verts, w.inds, ensureWhitePixel(), &op)
}

func drawTextOp(screen *ebiten.Image, t *TextDraw) {
	f, ok := t.Font.(*TTFFont)
	if !ok {
		ebitenutil.DebugPrintAt(screen, t.Value, int(t.Position.X), int(t.Position.Y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(t.Position.X, t.Position.Y)
	op.ColorScale.Scale(
		float32(t.Color.R*t.Color.A),
		float32(t.Color.G*t.Color.A),
		float32(t.Color.B*t.Color.A),
		float32(t.Color.A),
	)
	op.LineSpacing = f.LineHeight(t.Size)
	text.Draw(screen, t.Value, f.Face(t.Size), op)
}

// vertex converts v into a premultiplied ebiten vertex sampling the center
// of the white pixel.
func vertex(x, y float64, c Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R * c.A),
		ColorG: float32(c.G * c.A),
		ColorB: float32(c.B * c.A),
		ColorA: float32(c.A),
	}
}

// appendFan appends a fan triangulation of vs with vs[0] as the hub.
// N vertices, 3*(N-2) indices.
func appendFan(verts []ebiten.Vertex, inds []uint16, vs []Vertex) ([]ebiten.Vertex, []uint16) {
	if len(vs) < 3 {
		return verts, inds
	}
	base := uint16(len(verts))
	for _, v := range vs {
		verts = append(verts, vertex(v.Pos.X, v.Pos.Y, v.Color))
	}
	for i := 0; i < len(vs)-2; i++ {
		inds = append(inds, base, base+uint16(i+1), base+uint16(i+2))
	}
	return verts, inds
}

// appendLineQuad appends a quad of the given width centered on the segment
// a-b, two triangles with colors interpolated from a to b.
func appendLineQuad(verts []ebiten.Vertex, inds []uint16, a, b Vertex, width float64) ([]ebiten.Vertex, []uint16) {
	nx, ny := perpendicular(a.Pos, b.Pos)
	hw := width / 2
	base := uint16(len(verts))
	verts = append(verts,
		vertex(a.Pos.X+nx*hw, a.Pos.Y+ny*hw, a.Color),
		vertex(a.Pos.X-nx*hw, a.Pos.Y-ny*hw, a.Color),
		vertex(b.Pos.X+nx*hw, b.Pos.Y+ny*hw, b.Color),
		vertex(b.Pos.X-nx*hw, b.Pos.Y-ny*hw, b.Color),
	)
	inds = append(inds, base, base+1, base+2, base+1, base+3, base+2)
	return verts, inds
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	d := b.Sub(a)
	ln := d.Len()
	if ln < 1e-10 {
		return 0, -1
	}
	return -d.Y / ln, d.X / ln
}

func toRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}
