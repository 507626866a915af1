package throwsim

import "strconv"

// Fixed palette of the scene renderer.
var (
	CannonColor     = RGB8(255, 100, 100)
	ConstForceColor = ColorGreen
	MomentumColor   = ColorMagenta
	TextColor       = RGB8(50, 255, 130)
	GridLineColor   = RGB8(0, 230, 230)
	GridFadeColor   = RGBA8(0, 150, 150, 10)
)

const (
	// InfoGridLines is the number of horizontal lines behind the parameter
	// panel.
	InfoGridLines = 8
	// infoGridOffset shifts the grid down from each text row's top.
	infoGridOffset = 10
)

// The draw functions below translate domain values into batches on a
// Surface. They keep no state and never modify their inputs.

// DrawCannon draws the cannon as a filled closed polygon: every shape point
// followed by the first point again.
func DrawCannon(s Surface, cannon *Cannon) {
	verts := make([]Vertex, 0, len(cannon.Shape)+1)
	for _, p := range cannon.Shape {
		verts = append(verts, Vertex{Pos: p, Color: CannonColor})
	}
	verts = append(verts, Vertex{Pos: cannon.Shape[0], Color: CannonColor})
	s.DrawBatch(Batch{Primitive: PrimitivePolygon, Vertices: verts})
}

// DrawProjectile draws p as a CircleSegments-gon. fill == -1 draws the
// outline as a line strip; any other value draws a filled fan. Both close
// the loop by repeating the first vertex.
func DrawProjectile(s Surface, p *Projectile, fill int) {
	circle := NewCircle(p.Hitch, p.Radius, CircleSegments)
	prim := PrimitiveTriangleFan
	if fill == -1 {
		prim = PrimitiveLineStrip
	}

	verts := make([]Vertex, 0, len(circle.Vertices)+1)
	for _, v := range circle.Vertices {
		verts = append(verts, Vertex{Pos: v, Color: p.Color})
	}
	verts = append(verts, Vertex{Pos: circle.Vertices[0], Color: p.Color})
	s.DrawBatch(Batch{Primitive: prim, Vertices: verts})
}

// DrawVectorsField draws one segment per constant force and one for the
// momentum, all starting at the projectile's hitch.
func DrawVectorsField(s Surface, p *Projectile) {
	forces := p.Vectors.ConstForces
	verts := make([]Vertex, 0, 2*(len(forces)+1))
	for _, f := range forces {
		verts = append(verts,
			Vertex{Pos: p.Hitch, Color: ConstForceColor},
			Vertex{Pos: p.Hitch.Add(f), Color: ConstForceColor},
		)
	}
	verts = append(verts,
		Vertex{Pos: p.Hitch, Color: MomentumColor},
		Vertex{Pos: p.Hitch.Add(p.Vectors.Momentum), Color: MomentumColor},
	)
	s.DrawBatch(Batch{Primitive: PrimitiveLines, Vertices: verts})
}

// DrawText draws a single string at position.
func DrawText(s Surface, font Font, value string, size uint, position Vec2) {
	s.DrawText(TextDraw{
		Font:     font,
		Value:    value,
		Size:     size,
		Position: position,
		Color:    TextColor,
	})
}

// DrawSceneInfo draws the parameter panel: a backdrop of horizontal lines
// fading out toward the right edge, then one "<label>: <value>" row per
// parameter.
func DrawSceneInfo(s Surface, font Font, scene *Scene) {
	verts := make([]Vertex, 0, 2*InfoGridLines)
	for i := 0; i < InfoGridLines; i++ {
		y := float64(i)*scene.TextHeight + infoGridOffset
		verts = append(verts,
			Vertex{Pos: Vec2{0, y}, Color: GridLineColor},
			Vertex{Pos: Vec2{scene.Width, y}, Color: GridFadeColor},
		)
	}
	s.DrawBatch(Batch{Primitive: PrimitiveLines, Vertices: verts})

	for _, p := range scene.Parameters() {
		DrawText(s, font, p.Label+": "+FormatValue(p.Param.Value), p.Param.FontSize, p.Param.Position)
	}
}

// DrawScene draws a full frame: projectiles in collection order (each
// followed by its vector field when vectors == -1), then the cannon, then
// the parameter panel on top.
func DrawScene(s Surface, scene *Scene, font Font, vectors, fill int) {
	for _, p := range scene.Projectiles {
		DrawProjectile(s, p, fill)
		if vectors == -1 {
			DrawVectorsField(s, p)
		}
	}
	DrawCannon(s, &scene.Cannon)
	DrawSceneInfo(s, font, scene)
}

// FormatValue renders a parameter value with at most 15 significant digits
// and no trailing zeros, so accumulated stepping error does not show.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 15, 64)
}
