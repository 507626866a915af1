package throwsim

// LabeledParameter is a scene parameter together with where its label is
// drawn. Position is in scene coordinates and does not depend on the
// render alpha.
type LabeledParameter struct {
	Value    float64
	FontSize uint
	Position Vec2
}

// VectorsField holds the forces visualized for a projectile. Every vector is
// anchored at the projectile's hitch.
type VectorsField struct {
	ConstForces []Vec2
	Momentum    Vec2
}

// Projectile is a single fired shot.
type Projectile struct {
	// Hitch is the projectile's center, used both by the force model and as
	// the rendering origin.
	Hitch   Vec2
	Radius  float64
	Color   Color
	Vectors VectorsField

	Velocity    Vec2
	Mass        float64
	Restitution float64
}

// Cannon is the launcher. Shape is a closed polygon with at least three
// points; Aim rebuilds it from the pose fields.
type Cannon struct {
	Shape []Vec2

	// Pivot is the point the barrel rotates around.
	Pivot Vec2
	// Angle is the barrel direction in radians, 0 pointing along +X and
	// negative angles pointing up.
	Angle  float64
	Length float64
	Width  float64
	// Recoil pulls the barrel back along its axis, in pixels.
	Recoil float64
}

// Scene is everything the renderer draws.
type Scene struct {
	Cannon      Cannon
	Projectiles []*Projectile

	Width      float64
	Height     float64
	TextHeight float64

	Gravity               LabeledParameter
	EnvironmentDensity    LabeledParameter
	ShotPower             LabeledParameter
	ProjectileRadius      LabeledParameter
	ProjectileMass        LabeledParameter
	ProjectileRestitution LabeledParameter
	ResistanceForce       LabeledParameter
}

// NamedParameter pairs a parameter with its display label.
type NamedParameter struct {
	Label string
	Param *LabeledParameter
}

// Parameters returns the seven labeled parameters in display order.
func (s *Scene) Parameters() [7]NamedParameter {
	return [7]NamedParameter{
		{"Gravity", &s.Gravity},
		{"Environment density", &s.EnvironmentDensity},
		{"Shot power", &s.ShotPower},
		{"Projectile radius", &s.ProjectileRadius},
		{"Projectile mass", &s.ProjectileMass},
		{"Projectile restitution", &s.ProjectileRestitution},
		{"Resistance force", &s.ResistanceForce},
	}
}

// LayoutParameters places parameter labels one per row, each row
// TextHeight tall and starting at the top of the scene, all drawn at
// fontSize.
func (s *Scene) LayoutParameters(x float64, fontSize uint) {
	for i, p := range s.Parameters() {
		p.Param.FontSize = fontSize
		p.Param.Position = Vec2{X: x, Y: float64(i) * s.TextHeight}
	}
}

// AddProjectile appends p. Render order follows insertion order.
func (s *Scene) AddProjectile(p *Projectile) {
	if p == nil {
		return
	}
	s.Projectiles = append(s.Projectiles, p)
}

// RemoveProjectiles drops every projectile for which drop returns true,
// preserving the order of the rest. It returns the number removed.
func (s *Scene) RemoveProjectiles(drop func(*Projectile) bool) int {
	kept := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		if !drop(p) {
			kept = append(kept, p)
		}
	}
	removed := len(s.Projectiles) - len(kept)
	for i := len(kept); i < len(s.Projectiles); i++ {
		s.Projectiles[i] = nil
	}
	s.Projectiles = kept
	return removed
}

// ClearProjectiles removes every projectile.
func (s *Scene) ClearProjectiles() int {
	n := len(s.Projectiles)
	clear(s.Projectiles)
	s.Projectiles = s.Projectiles[:0]
	return n
}
