package throwsim

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func testScene() *Scene {
	s := &Scene{
		Width:      800,
		Height:     600,
		TextHeight: 20,
		Cannon: Cannon{
			Shape: []Vec2{{10, 500}, {60, 500}, {60, 520}, {10, 520}},
		},
	}
	s.LayoutParameters(5, 14)
	s.Gravity.Value = 9.81
	s.ProjectileMass.Value = 2
	return s
}

func testProjectile() *Projectile {
	return &Projectile{
		Hitch:  Vec2{100, 100},
		Radius: 5,
		Color:  RGB8(200, 10, 10),
		Vectors: VectorsField{
			ConstForces: []Vec2{{0, 10}, {-3, 0}},
			Momentum:    Vec2{1, 0},
		},
	}
}

func TestDrawCannonClosesPolygon(t *testing.T) {
	r := NewRecorder()
	s := testScene()
	DrawCannon(r, &s.Cannon)

	ops := r.Pending().Ops
	if len(ops) != 1 || ops[0].Batch == nil {
		t.Fatalf("ops = %d, want one batch", len(ops))
	}
	b := ops[0].Batch
	if b.Primitive != PrimitivePolygon {
		t.Errorf("Primitive = %v, want polygon", b.Primitive)
	}
	if len(b.Vertices) != len(s.Cannon.Shape)+1 {
		t.Fatalf("vertices = %d, want %d", len(b.Vertices), len(s.Cannon.Shape)+1)
	}
	if b.Vertices[len(b.Vertices)-1].Pos != s.Cannon.Shape[0] {
		t.Error("closing vertex should repeat the first point")
	}
	for i, v := range b.Vertices {
		if v.Color != CannonColor {
			t.Errorf("vertex %d color = %v, want cannon color", i, v.Color)
		}
	}
}

func TestDrawProjectileFillModes(t *testing.T) {
	tests := []struct {
		name string
		fill int
		want Primitive
	}{
		{"filled", 1, PrimitiveTriangleFan},
		{"filled any other value", 0, PrimitiveTriangleFan},
		{"outline", -1, PrimitiveLineStrip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder()
			p := testProjectile()
			DrawProjectile(r, p, tt.fill)

			b := r.Pending().Ops[0].Batch
			if b.Primitive != tt.want {
				t.Errorf("Primitive = %v, want %v", b.Primitive, tt.want)
			}
			if len(b.Vertices) != CircleSegments+1 {
				t.Errorf("vertices = %d, want %d", len(b.Vertices), CircleSegments+1)
			}
			if b.Vertices[0].Pos != b.Vertices[CircleSegments].Pos {
				t.Error("last vertex should close the loop")
			}
			if b.Vertices[3].Color != p.Color {
				t.Errorf("color = %v, want %v", b.Vertices[3].Color, p.Color)
			}
			for i, v := range b.Vertices {
				d := v.Pos.Sub(p.Hitch).Len()
				if !approxEqual(d, p.Radius, 1e-9) {
					t.Errorf("vertex %d at distance %f, want %f", i, d, p.Radius)
				}
			}
		})
	}
}

func TestDrawProjectileDoesNotMutate(t *testing.T) {
	r := NewRecorder()
	p := testProjectile()
	before := *p
	DrawProjectile(r, p, 1)
	DrawVectorsField(r, p)
	if p.Hitch != before.Hitch || p.Radius != before.Radius || p.Color != before.Color {
		t.Error("drawing should not modify the projectile")
	}
}

func TestDrawVectorsFieldCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		r := NewRecorder()
		p := testProjectile()
		p.Vectors.ConstForces = make([]Vec2, n)
		for i := range p.Vectors.ConstForces {
			p.Vectors.ConstForces[i] = Vec2{float64(i), 1}
		}
		DrawVectorsField(r, p)

		b := r.Pending().Ops[0].Batch
		if b.Primitive != PrimitiveLines {
			t.Errorf("n=%d: Primitive = %v, want lines", n, b.Primitive)
		}
		if want := 2 * (n + 1); len(b.Vertices) != want {
			t.Errorf("n=%d: vertices = %d, want %d", n, len(b.Vertices), want)
		}
	}
}

func TestDrawVectorsFieldGeometry(t *testing.T) {
	r := NewRecorder()
	p := testProjectile()
	DrawVectorsField(r, p)
	v := r.Pending().Ops[0].Batch.Vertices

	// two constant forces, green, anchored at the hitch
	for i := 0; i < 4; i += 2 {
		if v[i].Pos != p.Hitch {
			t.Errorf("segment %d starts at %v, want hitch", i/2, v[i].Pos)
		}
		if v[i].Color != ConstForceColor || v[i+1].Color != ConstForceColor {
			t.Errorf("segment %d should be constant-force colored", i/2)
		}
	}
	if v[1].Pos != (Vec2{100, 110}) || v[3].Pos != (Vec2{97, 100}) {
		t.Errorf("force ends = %v, %v", v[1].Pos, v[3].Pos)
	}
	// momentum last, magenta
	if v[4].Pos != p.Hitch || v[5].Pos != (Vec2{101, 100}) {
		t.Errorf("momentum segment = %v -> %v", v[4].Pos, v[5].Pos)
	}
	if v[4].Color != MomentumColor || v[5].Color != MomentumColor {
		t.Error("momentum should be magenta")
	}
}

func TestDrawText(t *testing.T) {
	r := NewRecorder()
	font, _ := r.LoadFont(nil)
	DrawText(r, font, "hello", 18, Vec2{3, 4})

	texts := r.Pending().Texts()
	if len(texts) != 1 {
		t.Fatalf("texts = %d, want 1", len(texts))
	}
	got := texts[0]
	if got.Value != "hello" || got.Size != 18 || got.Position != (Vec2{3, 4}) || got.Color != TextColor {
		t.Errorf("text = %+v", got)
	}
	if got.Font != font {
		t.Error("font handle should be passed through")
	}
}

func TestDrawSceneInfo(t *testing.T) {
	r := NewRecorder()
	s := testScene()
	DrawSceneInfo(r, nil, s)

	ops := r.Pending().Ops
	if len(ops) != 1+7 {
		t.Fatalf("ops = %d, want 8", len(ops))
	}
	grid := ops[0].Batch
	if grid == nil || grid.Primitive != PrimitiveLines {
		t.Fatal("first op should be the gridline batch")
	}
	if len(grid.Vertices) != 2*InfoGridLines {
		t.Fatalf("grid vertices = %d, want %d", len(grid.Vertices), 2*InfoGridLines)
	}
	for i := 0; i < InfoGridLines; i++ {
		a, b := grid.Vertices[2*i], grid.Vertices[2*i+1]
		wantY := float64(i)*s.TextHeight + 10
		if a.Pos != (Vec2{0, wantY}) || b.Pos != (Vec2{s.Width, wantY}) {
			t.Errorf("line %d = %v -> %v", i, a.Pos, b.Pos)
		}
		if a.Color != GridLineColor || b.Color != GridFadeColor {
			t.Errorf("line %d should fade toward the right edge", i)
		}
	}

	wantText := []string{
		"Gravity: 9.81",
		"Environment density: 0",
		"Shot power: 0",
		"Projectile radius: 0",
		"Projectile mass: 2",
		"Projectile restitution: 0",
		"Resistance force: 0",
	}
	for i, want := range wantText {
		txt := ops[i+1].Text
		if txt == nil {
			t.Fatalf("op %d should be text", i+1)
		}
		if txt.Value != want {
			t.Errorf("text %d = %q, want %q", i, txt.Value, want)
		}
		if txt.Position != (Vec2{5, float64(i) * 20}) || txt.Size != 14 {
			t.Errorf("text %d at %v size %d", i, txt.Position, txt.Size)
		}
	}
}

func TestDrawSceneOrder(t *testing.T) {
	r := NewRecorder()
	s := testScene()
	s.AddProjectile(testProjectile())

	DrawScene(r, s, nil, -1, 1)

	ops := r.Pending().Ops
	// projectile, vectors, cannon, grid, 7 texts
	if len(ops) != 4+7 {
		t.Fatalf("ops = %d, want 11", len(ops))
	}
	wantPrims := []Primitive{PrimitiveTriangleFan, PrimitiveLines, PrimitivePolygon, PrimitiveLines}
	for i, want := range wantPrims {
		if ops[i].Batch == nil {
			t.Fatalf("op %d should be a batch", i)
		}
		if ops[i].Batch.Primitive != want {
			t.Errorf("op %d primitive = %v, want %v", i, ops[i].Batch.Primitive, want)
		}
	}
	if len(ops[1].Batch.Vertices) != 6 {
		t.Errorf("vector batch vertices = %d, want 6", len(ops[1].Batch.Vertices))
	}
	for i := 4; i < len(ops); i++ {
		if ops[i].Text == nil {
			t.Errorf("op %d should be text", i)
		}
	}
}

func TestDrawSceneVectorsHidden(t *testing.T) {
	r := NewRecorder()
	s := testScene()
	s.AddProjectile(testProjectile())
	s.AddProjectile(testProjectile())

	DrawScene(r, s, nil, 1, -1)

	batches := r.Pending().Batches()
	// two outlines, cannon, grid
	if len(batches) != 4 {
		t.Fatalf("batches = %d, want 4", len(batches))
	}
	if batches[0].Primitive != PrimitiveLineStrip || batches[1].Primitive != PrimitiveLineStrip {
		t.Error("outline mode should draw line strips")
	}
	if batches[2].Primitive != PrimitivePolygon {
		t.Error("cannon should follow the projectiles")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{9.81, "9.81"},
		{100, "100"},
		{0.1 + 0.2, "0.3"},
		{0, "0"},
		{-1.5, "-1.5"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
