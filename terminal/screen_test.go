package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/throwsim"
)

// newTestScreen returns an 80x24 simulated terminal stretched over an
// 800x240 scene, so every cell is 10x10 scene pixels.
func newTestScreen(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewWithScreen(sim, Options{SceneWidth: 800, SceneHeight: 240})
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	t.Cleanup(s.Fini)
	sim.SetSize(80, 24)
	s.cols, s.rows = sim.Size()
	s.Clear(throwsim.ColorBlack)
	return s, sim
}

func runeAt(sim tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := sim.GetContent(x, y)
	return r
}

func square(x0, y0, x1, y1 float64, c throwsim.Color) throwsim.Batch {
	return throwsim.Batch{
		Primitive: throwsim.PrimitivePolygon,
		Vertices: []throwsim.Vertex{
			{Pos: throwsim.Vec2{X: x0, Y: y0}, Color: c},
			{Pos: throwsim.Vec2{X: x1, Y: y0}, Color: c},
			{Pos: throwsim.Vec2{X: x1, Y: y1}, Color: c},
			{Pos: throwsim.Vec2{X: x0, Y: y1}, Color: c},
			{Pos: throwsim.Vec2{X: x0, Y: y0}, Color: c},
		},
	}
}

func TestFillPolygon(t *testing.T) {
	s, sim := newTestScreen(t)
	s.DrawBatch(square(0, 0, 100, 50, throwsim.RGB8(255, 0, 0)))
	s.Present()

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, fillRune},
		{9, 4, fillRune},
		{5, 2, fillRune},
		{10, 4, ' '},
		{9, 5, ' '},
	}
	for _, tt := range tests {
		if got := runeAt(sim, tt.x, tt.y); got != tt.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFillTinyShapeMarksCentroid(t *testing.T) {
	s, sim := newTestScreen(t)
	circle := throwsim.NewCircle(throwsim.Vec2{X: 52, Y: 58}, 2, throwsim.CircleSegments)
	b := throwsim.Batch{Primitive: throwsim.PrimitiveTriangleFan}
	for _, p := range circle.Vertices {
		b.Vertices = append(b.Vertices, throwsim.Vertex{Pos: p, Color: throwsim.ColorWhite})
	}
	s.DrawBatch(b)

	if got := runeAt(sim, 5, 5); got != fillRune {
		t.Errorf("centroid cell = %q, want a block", got)
	}
}

func TestFillClipsOffScreen(t *testing.T) {
	s, sim := newTestScreen(t)
	s.DrawBatch(square(-500, -500, 15, 15, throwsim.ColorWhite))
	if got := runeAt(sim, 0, 0); got != fillRune {
		t.Errorf("cell (0,0) = %q, want a block", got)
	}
}

func TestLines(t *testing.T) {
	s, sim := newTestScreen(t)
	s.DrawBatch(throwsim.Batch{
		Primitive: throwsim.PrimitiveLines,
		Vertices: []throwsim.Vertex{
			{Pos: throwsim.Vec2{X: 0, Y: 105}, Color: throwsim.GridLineColor},
			{Pos: throwsim.Vec2{X: 795, Y: 105}, Color: throwsim.GridFadeColor},
		},
	})
	for x := 0; x < 80; x++ {
		if got := runeAt(sim, x, 10); got != lineRune {
			t.Fatalf("cell (%d,10) = %q, want a dot", x, got)
		}
	}
	if got := runeAt(sim, 0, 9); got != ' ' {
		t.Errorf("row above the line = %q", got)
	}
}

func TestLineStripDiagonal(t *testing.T) {
	s, sim := newTestScreen(t)
	s.DrawBatch(throwsim.Batch{
		Primitive: throwsim.PrimitiveLineStrip,
		Vertices: []throwsim.Vertex{
			{Pos: throwsim.Vec2{X: 5, Y: 5}, Color: throwsim.ColorGreen},
			{Pos: throwsim.Vec2{X: 45, Y: 45}, Color: throwsim.ColorGreen},
			{Pos: throwsim.Vec2{X: 85, Y: 45}, Color: throwsim.ColorGreen},
		},
	})
	for i := 0; i <= 4; i++ {
		if got := runeAt(sim, i, i); got != lineRune {
			t.Errorf("cell (%d,%d) = %q, want a dot", i, i, got)
		}
	}
	if got := runeAt(sim, 8, 4); got != lineRune {
		t.Errorf("second segment end = %q", got)
	}
}

func TestDrawText(t *testing.T) {
	s, sim := newTestScreen(t)
	s.DrawText(throwsim.TextDraw{Value: "Hi", Position: throwsim.Vec2{X: 20, Y: 30}, Color: throwsim.TextColor})
	if runeAt(sim, 2, 3) != 'H' || runeAt(sim, 3, 3) != 'i' {
		t.Errorf("text cells = %q %q", runeAt(sim, 2, 3), runeAt(sim, 3, 3))
	}

	// clipped at the right edge without panicking
	s.DrawText(throwsim.TextDraw{Value: "overflow", Position: throwsim.Vec2{X: 770, Y: 0}})
	if runeAt(sim, 79, 0) != 'e' {
		t.Errorf("last column = %q, want 'e'", runeAt(sim, 79, 0))
	}
}

func TestClearBlanksGrid(t *testing.T) {
	s, sim := newTestScreen(t)
	s.DrawBatch(square(0, 0, 100, 50, throwsim.ColorWhite))
	s.Clear(throwsim.ColorBlack)
	if got := runeAt(sim, 5, 2); got != ' ' {
		t.Errorf("cell after clear = %q", got)
	}
}

func TestDrawSceneOnTerminal(t *testing.T) {
	s, sim := newTestScreen(t)
	font, err := s.LoadFont(nil)
	if err != nil {
		t.Fatal(err)
	}
	if font.LineHeight(14) != 10 {
		t.Errorf("line height = %f, want one cell", font.LineHeight(14))
	}

	scene := &throwsim.Scene{Width: 800, Height: 240, TextHeight: 10}
	scene.LayoutParameters(0, 14)
	scene.Cannon = throwsim.Cannon{Pivot: throwsim.Vec2{X: 400, Y: 200}, Length: 60, Width: 20}
	scene.Cannon.Aim(throwsim.Vec2{X: 800, Y: 200})

	throwsim.DrawScene(s, scene, font, 1, 1)
	s.Present()

	if got := runeAt(sim, 42, 20); got != fillRune {
		t.Errorf("cannon cell = %q, want a block", got)
	}
	if got := runeAt(sim, 0, 0); got != 'G' {
		t.Errorf("first label starts with %q, want 'G'", got)
	}
}

func TestCloseKeepsTerminal(t *testing.T) {
	s, _ := newTestScreen(t)
	if !s.IsOpen() {
		t.Fatal("new screen should be open")
	}
	s.Close()
	if s.IsOpen() {
		t.Error("Close should close the surface")
	}
	s.Present()
}

func TestFiniTwice(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Fini()
	s.Fini()
}

func TestInjectedKeyArrives(t *testing.T) {
	s, sim := newTestScreen(t)
	sim.InjectKey(tcell.KeyRune, 'e', tcell.ModNone)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, ev := range s.PollEvents(nil) {
			if ev.Kind == throwsim.EventKeyDown && ev.Key == throwsim.KeyE {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("injected key never arrived")
}
