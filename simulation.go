package throwsim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

const (
	// infoX is the left margin of the parameter panel.
	infoX = 5
	// flashSeconds is how long a new projectile fades from white to its
	// color.
	flashSeconds = 0.3
)

// SimOptions holds the optional collaborators of a CannonSim.
type SimOptions struct {
	// Fonts loads FontData during LoadContent. Without it the panel text is
	// submitted with a nil font.
	Fonts    FontLoader
	FontData []byte
	// Store receives simulation events.
	Store  EventStore
	Logger *slog.Logger
}

// CannonSim is the cannon game: it aims the cannon at the cursor, fires on
// every press of the primary button, steps parameters while a parameter key
// is held and removes every projectile while Clear is held.
type CannonSim struct {
	cfg     *Config
	surface Surface
	input   *Input
	opts    SimOptions
	log     *slog.Logger

	scene  *Scene
	font   Font
	medium Medium
	keys   KeyTable
	rates  StepRates
	rng    *rand.Rand
	tweens Tweens

	wasHeld bool
	tick    uint64
}

// NewCannonSim creates a simulation drawing to surface and reading input.
// cfg must be valid.
func NewCannonSim(cfg *Config, surface Surface, input *Input, opts SimOptions) *CannonSim {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &CannonSim{
		cfg:     cfg,
		surface: surface,
		input:   input,
		opts:    opts,
		log:     log,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Scene returns the current scene. It is nil before Initialize.
func (s *CannonSim) Scene() *Scene { return s.scene }

// Tick returns the number of updates run so far.
func (s *CannonSim) Tick() uint64 { return s.tick }

// LoadContent loads the panel font.
func (s *CannonSim) LoadContent() error {
	if s.opts.Fonts == nil {
		return nil
	}
	font, err := s.opts.Fonts.LoadFont(s.opts.FontData)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	s.font = font
	return nil
}

// Initialize builds the scene from the configuration.
func (s *CannonSim) Initialize() error {
	keys, err := s.cfg.KeyTable()
	if err != nil {
		return err
	}
	s.keys = keys
	s.rates = s.cfg.StepRates()

	w := float64(s.cfg.Window.Width)
	h := float64(s.cfg.Window.Height)
	sc := s.cfg.Scene
	scene := &Scene{
		Width:      w,
		Height:     h,
		TextHeight: sc.TextHeight,
	}
	scene.LayoutParameters(infoX, sc.FontSize)
	p := s.cfg.Params
	scene.Gravity.Value = p.Gravity
	scene.EnvironmentDensity.Value = p.Density
	scene.ShotPower.Value = p.ShotPower
	scene.ProjectileRadius.Value = p.Radius
	scene.ProjectileMass.Value = p.Mass
	scene.ProjectileRestitution.Value = p.Restitution

	c := sc.Cannon
	scene.Cannon = Cannon{
		Pivot:  Vec2{fromEdge(c.X, w), fromEdge(c.Y, h)},
		Length: c.Length,
		Width:  c.Width,
	}
	// Start pointing up and to the right, halfway between the axes.
	scene.Cannon.Aim(scene.Cannon.Pivot.Add(Vec2{1, -1}))

	s.medium = Medium{
		Bounds:         Rect{Width: w, Height: h},
		PixelsPerMeter: sc.PixelsPerMeter,
		ForceScale:     sc.ForceScale,
		MomentumScale:  sc.MomentumScale,
	}
	s.scene = scene
	s.log.Debug("scene initialized", "width", w, "height", h, "pivot", scene.Cannon.Pivot)
	return nil
}

func fromEdge(v, size float64) float64 {
	if v < 0 {
		return size + v
	}
	return v
}

// Update advances the scene by dt seconds.
func (s *CannonSim) Update(dt float64) error {
	in := s.input.State()
	scene := s.scene

	if in.CursorSeen {
		scene.Cannon.Aim(in.Cursor)
	}
	if in.ActiveKey != KeyNone {
		s.keys.Apply(scene, in.ActiveKey, s.rates, dt)
	}

	if in.Clear {
		if n := scene.ClearProjectiles(); n > 0 {
			s.emit(SimulationEvent{Type: EventProjectilesCleared, Count: n})
		}
	}

	if in.PrimaryHeld && !s.wasHeld {
		s.fire()
	}
	s.wasHeld = in.PrimaryHeld

	s.medium.Gravity = scene.Gravity.Value
	s.medium.Density = scene.EnvironmentDensity.Value
	for _, p := range scene.Projectiles {
		s.medium.Advance(p, dt)
	}
	scene.RemoveProjectiles(func(p *Projectile) bool {
		if !s.medium.OffScene(p) {
			return false
		}
		s.emit(SimulationEvent{
			Type:     EventProjectileRemoved,
			Position: p.Hitch,
			Velocity: p.Velocity,
			Mass:     p.Mass,
			Count:    1,
		})
		return true
	})

	scene.ResistanceForce.Value = 0
	if n := len(scene.Projectiles); n > 0 {
		_, drag := s.medium.Forces(scene.Projectiles[n-1])
		scene.ResistanceForce.Value = drag.Len()
	}

	s.tweens.Update(float32(dt))
	s.tick++
	return nil
}

// fire spawns a projectile at the muzzle moving along the barrel with speed
// ShotPower / mass, and kicks the barrel back.
func (s *CannonSim) fire() {
	scene := s.scene
	mass := scene.ProjectileMass.Value
	if mass <= 0 {
		return
	}
	cannon := &scene.Cannon
	speed := scene.ShotPower.Value / mass * s.medium.ppm()
	color := RGB8(
		uint8(55+s.rng.IntN(200)),
		uint8(55+s.rng.IntN(200)),
		uint8(55+s.rng.IntN(200)),
	)
	p := &Projectile{
		Hitch:       cannon.Muzzle(),
		Radius:      scene.ProjectileRadius.Value,
		Color:       ColorWhite,
		Velocity:    cannon.Direction().Scale(speed),
		Mass:        mass,
		Restitution: scene.ProjectileRestitution.Value,
	}
	scene.AddProjectile(p)
	s.tweens = append(s.tweens, TweenColor(p, color, flashSeconds, ease.OutQuad))

	if rc := s.cfg.Scene.Cannon; rc.RecoilDistance > 0 && rc.RecoilSeconds > 0 {
		s.tweens = append(s.tweens, TweenRecoil(cannon, rc.RecoilDistance, rc.RecoilSeconds, ease.OutCubic))
	}

	s.emit(SimulationEvent{
		Type:     EventProjectileFired,
		Position: p.Hitch,
		Velocity: p.Velocity,
		Mass:     mass,
		Count:    1,
	})
}

func (s *CannonSim) emit(e SimulationEvent) {
	if s.opts.Store == nil {
		return
	}
	e.Tick = s.tick
	s.opts.Store.EmitEvent(e)
}

// Render draws the latest state. Positions are not interpolated by alpha.
func (s *CannonSim) Render(alpha float64) error {
	in := s.input.State()
	DrawScene(s.surface, s.scene, s.font, in.Vectors, in.Fill)
	return nil
}
