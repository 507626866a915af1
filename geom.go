package throwsim

import "math"

// CircleSegments is the number of vertices used to approximate a projectile
// outline.
const CircleSegments = 15

// Circle is a regular polygon approximation of a circle. It is generated on
// demand for drawing and never stored on the scene.
type Circle struct {
	Center   Vec2
	Radius   float64
	Vertices []Vec2
}

// NewCircle builds a circle of the given segment count, with the first
// vertex at angle 0 and the rest spaced evenly.
func NewCircle(center Vec2, radius float64, segments int) Circle {
	if segments < 3 {
		segments = 3
	}
	verts := make([]Vec2, segments)
	for i := range verts {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		verts[i] = Vec2{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return Circle{Center: center, Radius: radius, Vertices: verts}
}

// PolygonContains reports whether (x, y) lies inside the convex polygon
// using a cross-product sign test. Points must define a convex polygon in
// either winding order; a repeated closing vertex is allowed.
func PolygonContains(points []Vec2, x, y float64) bool {
	n := len(points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := points[i].X
		y1 := points[i].Y
		j := (i + 1) % n
		x2 := points[j].X
		y2 := points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Aim points the barrel at target and rebuilds Shape: a rectangle of
// Length x Width starting at Pivot, pulled back by Recoil.
func (c *Cannon) Aim(target Vec2) {
	d := target.Sub(c.Pivot)
	if d.X != 0 || d.Y != 0 {
		c.Angle = math.Atan2(d.Y, d.X)
	}
	c.rebuild()
}

// Muzzle returns the center of the barrel's open end.
func (c *Cannon) Muzzle() Vec2 {
	dir := c.Direction()
	return c.Pivot.Add(dir.Scale(c.Length - c.Recoil))
}

// Direction returns the unit vector the barrel points along.
func (c *Cannon) Direction() Vec2 {
	return Vec2{math.Cos(c.Angle), math.Sin(c.Angle)}
}

func (c *Cannon) rebuild() {
	dir := c.Direction()
	// left-perpendicular
	nx, ny := -dir.Y, dir.X
	hw := c.Width / 2
	back := c.Pivot.Sub(dir.Scale(c.Recoil))
	front := c.Pivot.Add(dir.Scale(c.Length - c.Recoil))

	if cap(c.Shape) < 4 {
		c.Shape = make([]Vec2, 4)
	}
	c.Shape = c.Shape[:4]
	c.Shape[0] = Vec2{back.X + nx*hw, back.Y + ny*hw}
	c.Shape[1] = Vec2{front.X + nx*hw, front.Y + ny*hw}
	c.Shape[2] = Vec2{front.X - nx*hw, front.Y - ny*hw}
	c.Shape[3] = Vec2{back.X - nx*hw, back.Y - ny*hw}
}
