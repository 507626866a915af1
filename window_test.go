package throwsim

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func TestWindowRecordsPresentedFrame(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 100, Height: 100})
	if !w.IsOpen() {
		t.Fatal("new window should be open")
	}

	w.Clear(ColorBlack)
	w.DrawBatch(Batch{Primitive: PrimitiveLines, Vertices: []Vertex{{}, {}}})
	if w.frames.Last() != nil {
		t.Fatal("nothing should be shown before Present")
	}
	w.Present()

	w.Clear(ColorWhite)
	w.DrawText(TextDraw{Value: "pending"})

	shown := w.frames.Last()
	if shown == nil || shown.Background != ColorBlack || len(shown.Ops) != 1 {
		t.Fatalf("shown frame = %+v, want the presented one", shown)
	}
	w.Present()
	if got := w.frames.Last(); got.Background != ColorWhite || len(w.frames.Frames()) != 1 {
		t.Errorf("window should keep only the latest frame")
	}

	w.Close()
	if w.IsOpen() {
		t.Error("Close should close the window")
	}
}

func TestWindowLoadFont(t *testing.T) {
	w := NewWindow(WindowOptions{})
	f, err := w.LoadFont(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.(*TTFFont); !ok {
		t.Errorf("font = %T, want *TTFFont", f)
	}
	if _, err := w.LoadFont([]byte("junk")); err == nil {
		t.Error("expected error for junk font data")
	}
}

func TestAppendFan(t *testing.T) {
	red := RGB8(255, 0, 0)
	vs := []Vertex{
		{Pos: Vec2{0, 0}, Color: red},
		{Pos: Vec2{10, 0}, Color: red},
		{Pos: Vec2{10, 10}, Color: red},
		{Pos: Vec2{0, 10}, Color: red},
		{Pos: Vec2{0, 0}, Color: red},
	}
	verts, inds := appendFan(nil, nil, vs)
	if len(verts) != 5 || len(inds) != 9 {
		t.Fatalf("verts = %d inds = %d, want 5 and 9", len(verts), len(inds))
	}
	for i := 0; i < 3; i++ {
		if inds[i*3] != 0 || inds[i*3+1] != uint16(i+1) || inds[i*3+2] != uint16(i+2) {
			t.Errorf("triangle %d = %v", i, inds[i*3:i*3+3])
		}
	}
	if verts[1].DstX != 10 || verts[1].SrcX != 0.5 || verts[1].ColorR != 1 || verts[1].ColorA != 1 {
		t.Errorf("vertex 1 = %+v", verts[1])
	}

	// a second batch is offset past the first
	verts, inds = appendFan(verts, inds, vs[:3])
	if inds[len(inds)-3] != 5 {
		t.Errorf("second fan hub = %d, want 5", inds[len(inds)-3])
	}

	if v, i := appendFan(nil, nil, vs[:2]); v != nil || i != nil {
		t.Error("fewer than three vertices should draw nothing")
	}
}

func TestAppendLineQuad(t *testing.T) {
	a := Vertex{Pos: Vec2{0, 0}, Color: GridLineColor}
	b := Vertex{Pos: Vec2{10, 0}, Color: GridFadeColor}
	verts, inds := appendLineQuad(nil, nil, a, b, 2)

	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("verts = %d inds = %d", len(verts), len(inds))
	}
	for i, wantY := range []float32{1, -1, 1, -1} {
		if verts[i].DstY != wantY {
			t.Errorf("vertex %d y = %f, want %f", i, verts[i].DstY, wantY)
		}
	}
	if verts[0].DstX != 0 || verts[2].DstX != 10 {
		t.Error("quad should span the segment")
	}
	fade := float32(GridFadeColor.A)
	if verts[2].ColorA != fade || verts[0].ColorA != 1 {
		t.Errorf("alphas = %f, %f", verts[0].ColorA, verts[2].ColorA)
	}
	if math.Abs(float64(verts[2].ColorG)-GridFadeColor.G*GridFadeColor.A) > 1e-6 {
		t.Errorf("color should be premultiplied, got %f", verts[2].ColorG)
	}
}

func TestPerpendicular(t *testing.T) {
	nx, ny := perpendicular(Vec2{0, 0}, Vec2{0, 5})
	if nx != -1 || ny != 0 {
		t.Errorf("perpendicular = (%f, %f), want (-1, 0)", nx, ny)
	}
	nx, ny = perpendicular(Vec2{3, 3}, Vec2{3, 3})
	if nx != 0 || ny != -1 {
		t.Errorf("degenerate perpendicular = (%f, %f), want (0, -1)", nx, ny)
	}
}

func TestAppendKeyEvents(t *testing.T) {
	keys := []ebiten.Key{ebiten.KeyQ, ebiten.KeyZ, ebiten.KeyF2, ebiten.KeyEscape}
	got := appendKeyEvents(nil, keys, EventKeyDown)
	want := []Event{
		{Kind: EventKeyDown, Key: KeyQ},
		{Kind: EventKeyDown, Key: KeyF2},
		{Kind: EventKeyDown, Key: KeyEscape},
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEbitenKeysCoverAdapterKeys(t *testing.T) {
	mapped := make(map[Key]bool)
	for _, k := range ebitenKeys {
		mapped[k] = true
	}
	for k := KeyQ; k <= KeyEscape; k++ {
		if !mapped[k] {
			t.Errorf("%v has no ebiten key", k)
		}
	}
}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		in   Color
		want color.RGBA
	}{
		{ColorBlack, color.RGBA{0, 0, 0, 255}},
		{ColorWhite, color.RGBA{255, 255, 255, 255}},
		{Color{1, 0, 0, 0.5}, color.RGBA{128, 0, 0, 128}},
	}
	for _, tt := range tests {
		if got := toRGBA(tt.in); got != tt.want {
			t.Errorf("toRGBA(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
