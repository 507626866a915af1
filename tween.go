package throwsim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenRecoil or TweenColor and call Update(dt) each tick. The group writes
// values into its fields and then runs its apply hook, if any.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	apply  func()
	Done   bool
}

// Update advances all tweens by dt seconds and writes their values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.apply != nil {
		g.apply()
	}
}

// TweenRecoil kicks the cannon barrel back by distance pixels and eases it
// back to rest over duration seconds. The cannon shape is rebuilt on every
// update.
func TweenRecoil(c *Cannon, distance float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	c.Recoil = distance
	c.rebuild()
	g := &TweenGroup{count: 1, apply: c.rebuild}
	g.tweens[0] = gween.New(float32(distance), 0, duration, fn)
	g.fields[0] = &c.Recoil
	return g
}

// TweenColor animates all four components of p.Color from its current value
// to the target color.
func TweenColor(p *Projectile, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(p.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(p.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(p.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(p.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &p.Color.R
	g.fields[1] = &p.Color.G
	g.fields[2] = &p.Color.B
	g.fields[3] = &p.Color.A
	return g
}

// Tweens is a set of running groups, pruned as they finish.
type Tweens []*TweenGroup

// Update advances every group and drops the finished ones.
func (ts *Tweens) Update(dt float32) {
	kept := (*ts)[:0]
	for _, g := range *ts {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	clear((*ts)[len(kept):])
	*ts = kept
}
