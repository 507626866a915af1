package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/throwsim"
)

// Clear fills the grid with the background color.
func (t *Screen) Clear(c throwsim.Color) {
	t.background = tcell.StyleDefault.Background(toTcell(c))
	t.screen.Fill(' ', t.background)
}

// DrawBatch rasterises b into cells.
func (t *Screen) DrawBatch(b throwsim.Batch) {
	vs := b.Vertices
	switch b.Primitive {
	case throwsim.PrimitivePolygon, throwsim.PrimitiveTriangleFan:
		t.fill(vs)
	case throwsim.PrimitiveLineStrip:
		for i := 0; i+1 < len(vs); i++ {
			t.line(vs[i], vs[i+1])
		}
	case throwsim.PrimitiveLines:
		for i := 0; i+1 < len(vs); i += 2 {
			t.line(vs[i], vs[i+1])
		}
	}
}

// DrawText writes t.Value one rune per cell starting at the cell containing
// its position. Text past the right edge is clipped.
func (t *Screen) DrawText(d throwsim.TextDraw) {
	x, y := t.toCell(d.Position)
	style := t.background.Foreground(toTcell(d.Color))
	for _, r := range d.Value {
		t.set(x, y, r, style)
		x++
	}
}

// Present shows the drawn frame.
func (t *Screen) Present() {
	t.screen.Show()
}

func (t *Screen) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= t.cols || y >= t.rows {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

// fill paints every cell whose center lies inside the convex polygon vs,
// in the first vertex's color. Shapes too small to cover a cell center
// still mark the cell holding their centroid.
func (t *Screen) fill(vs []throwsim.Vertex) {
	if len(vs) < 3 {
		return
	}
	pts := make([]throwsim.Vec2, len(vs))
	var centroid throwsim.Vec2
	minX, minY := vs[0].Pos.X, vs[0].Pos.Y
	maxX, maxY := minX, minY
	for i, v := range vs {
		pts[i] = v.Pos
		centroid = centroid.Add(v.Pos)
		minX, maxX = min(minX, v.Pos.X), max(maxX, v.Pos.X)
		minY, maxY = min(minY, v.Pos.Y), max(maxY, v.Pos.Y)
	}
	centroid = centroid.Scale(1 / float64(len(vs)))

	style := t.background.Foreground(toTcell(vs[0].Color))
	x0, y0 := t.toCell(throwsim.Vec2{X: minX, Y: minY})
	x1, y1 := t.toCell(throwsim.Vec2{X: maxX, Y: maxY})
	painted := false
	for y := max(y0, 0); y <= min(y1, t.rows-1); y++ {
		for x := max(x0, 0); x <= min(x1, t.cols-1); x++ {
			c := t.toScene(x, y)
			if throwsim.PolygonContains(pts, c.X, c.Y) {
				t.set(x, y, fillRune, style)
				painted = true
			}
		}
	}
	if !painted {
		cx, cy := t.toCell(centroid)
		t.set(cx, cy, fillRune, style)
	}
}

// line plots a from-to segment with Bresenham's algorithm, blending the
// endpoint colors along the way.
func (t *Screen) line(a, b throwsim.Vertex) {
	x0, y0 := t.toCell(a.Pos)
	x1, y1 := t.toCell(b.Pos)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	steps := max(dx, -dy)
	err := dx + dy

	for i := 0; ; i++ {
		c := a.Color
		if steps > 0 {
			c = a.Color.Lerp(b.Color, float64(i)/float64(steps))
		}
		t.set(x0, y0, lineRune, t.background.Foreground(toTcell(c)))
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toTcell flattens c over black, since cells have no alpha.
func toTcell(c throwsim.Color) tcell.Color {
	return tcell.NewRGBColor(
		int32(c.R*c.A*255+0.5),
		int32(c.G*c.A*255+0.5),
		int32(c.B*c.A*255+0.5),
	)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
