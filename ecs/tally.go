package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/throwsim"
)

// TallyData counts simulation events.
type TallyData struct {
	Fired   int
	Removed int
	Cleared int
	// Live is the number of projectiles still in the scene.
	Live int
	// LastTick is the tick of the latest event seen.
	LastTick uint64
}

// Tally is the component holding a TallyData.
var Tally = donburi.NewComponentType[TallyData]()

// NewTally creates an entity with a Tally component and subscribes it to
// SimulationEventType.
func NewTally(world donburi.World) donburi.Entity {
	entity := world.Create(Tally)
	SimulationEventType.Subscribe(world, func(w donburi.World, e throwsim.SimulationEvent) {
		if !w.Valid(entity) {
			return
		}
		Tally.Get(w.Entry(entity)).record(e)
	})
	return entity
}

// ReadTally returns a copy of the tally held by entity, or the zero value
// if the entity is gone.
func ReadTally(world donburi.World, entity donburi.Entity) TallyData {
	if !world.Valid(entity) {
		return TallyData{}
	}
	return *Tally.Get(world.Entry(entity))
}

func (t *TallyData) record(e throwsim.SimulationEvent) {
	switch e.Type {
	case throwsim.EventProjectileFired:
		t.Fired++
		t.Live++
	case throwsim.EventProjectileRemoved:
		t.Removed++
		t.Live--
	case throwsim.EventProjectilesCleared:
		t.Cleared += e.Count
		t.Live -= e.Count
	}
	t.Live = max(t.Live, 0)
	t.LastTick = e.Tick
}
