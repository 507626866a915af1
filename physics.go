package throwsim

import "math"

const (
	// DragCoefficient is the drag coefficient of a sphere.
	DragCoefficient = 0.47
	// restingSpeed is the vertical speed, in pixels per second, below which
	// a bounce comes to rest on the floor.
	restingSpeed = 1.0
)

// Medium is the environment projectiles move through. Positions and
// velocities are in pixels; forces, masses and densities are SI, converted
// with PixelsPerMeter.
type Medium struct {
	// Gravity is the downward acceleration in m/s^2.
	Gravity float64
	// Density of the surrounding fluid in kg/m^3. Zero is vacuum.
	Density float64
	// Bounds is the scene rectangle. Its bottom edge is the floor; the side
	// edges are open.
	Bounds Rect
	// PixelsPerMeter converts between scene and world units. Zero means 1.
	PixelsPerMeter float64

	// ForceScale and MomentumScale convert newtons and kg*m/s into pixels
	// for the vector field overlay. Zero means 1.
	ForceScale    float64
	MomentumScale float64
}

func (m Medium) ppm() float64 {
	if m.PixelsPerMeter <= 0 {
		return 1
	}
	return m.PixelsPerMeter
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// Forces returns the gravity and drag forces on p, in newtons, with +Y
// pointing down.
func (m Medium) Forces(p *Projectile) (gravity, drag Vec2) {
	gravity = Vec2{0, p.Mass * m.Gravity}

	ppm := m.ppm()
	v := p.Velocity.Scale(1 / ppm)
	r := p.Radius / ppm
	area := math.Pi * r * r
	drag = v.Scale(-0.5 * m.Density * DragCoefficient * area * v.Len())
	return gravity, drag
}

// Advance moves p forward by dt seconds with semi-implicit Euler, bounces it
// off the floor scaled by its restitution and refreshes its vector field.
// A projectile with no mass does not move.
func (m Medium) Advance(p *Projectile, dt float64) {
	if p.Mass <= 0 {
		return
	}
	gravity, drag := m.Forces(p)
	accel := gravity.Add(drag).Scale(m.ppm() / p.Mass)

	p.Velocity = p.Velocity.Add(accel.Scale(dt))
	p.Hitch = p.Hitch.Add(p.Velocity.Scale(dt))

	floor := m.Bounds.Y + m.Bounds.Height
	if p.Hitch.Y+p.Radius > floor {
		p.Hitch.Y = floor - p.Radius
		if p.Velocity.Y > 0 {
			p.Velocity.Y = -p.Velocity.Y * p.Restitution
			if math.Abs(p.Velocity.Y) < restingSpeed {
				p.Velocity.Y = 0
			}
		}
	}

	m.updateVectors(p, gravity, drag)
}

// updateVectors stores the display vectors for p: gravity and drag as
// constant forces, then momentum.
func (m Medium) updateVectors(p *Projectile, gravity, drag Vec2) {
	fs := orOne(m.ForceScale)
	forces := p.Vectors.ConstForces[:0]
	forces = append(forces, gravity.Scale(fs), drag.Scale(fs))
	p.Vectors.ConstForces = forces
	p.Vectors.Momentum = p.Velocity.Scale(p.Mass / m.ppm() * orOne(m.MomentumScale))
}

// OffScene reports whether p has fully left the scene through a side edge.
func (m Medium) OffScene(p *Projectile) bool {
	return p.Hitch.X+p.Radius < m.Bounds.X ||
		p.Hitch.X-p.Radius > m.Bounds.X+m.Bounds.Width
}
