package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/throwsim"
)

// SimulationEventType is the Donburi event type for throwsim simulation
// events.
var SimulationEventType = events.NewEventType[throwsim.SimulationEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are queued on SimulationEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) throwsim.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event throwsim.SimulationEvent) {
	SimulationEventType.Publish(s.world, event)
}

type processingStore struct {
	donburiStore
}

// NewProcessingDonburiStore is like NewDonburiStore but delivers each event
// to subscribers as soon as it is published, so components such as Tally
// stay current while the simulation runs.
func NewProcessingDonburiStore(world donburi.World) throwsim.EventStore {
	return &processingStore{donburiStore{world: world}}
}

func (s *processingStore) EmitEvent(event throwsim.SimulationEvent) {
	SimulationEventType.Publish(s.world, event)
	SimulationEventType.ProcessEvents(s.world)
}
