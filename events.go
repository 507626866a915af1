package throwsim

import (
	"fmt"
	"log/slog"
)

// SimulationEventType identifies a SimulationEvent.
type SimulationEventType uint8

const (
	// EventProjectileFired is emitted when the cannon fires.
	EventProjectileFired SimulationEventType = iota
	// EventProjectileRemoved is emitted when a projectile leaves the scene.
	EventProjectileRemoved
	// EventProjectilesCleared is emitted when Clear removes projectiles.
	EventProjectilesCleared
)

func (t SimulationEventType) String() string {
	switch t {
	case EventProjectileFired:
		return "fired"
	case EventProjectileRemoved:
		return "removed"
	case EventProjectilesCleared:
		return "cleared"
	default:
		return fmt.Sprintf("event(%d)", t)
	}
}

// SimulationEvent describes something that happened during an Update.
type SimulationEvent struct {
	Type SimulationEventType
	// Tick is the number of updates run before the event.
	Tick uint64
	// Position and Velocity describe the projectile for fire and remove
	// events, in pixels and pixels per second.
	Position Vec2
	Velocity Vec2
	Mass     float64
	// Count is the number of projectiles affected.
	Count int
}

// EventStore receives simulation events. Implementations must not modify
// the scene.
type EventStore interface {
	EmitEvent(event SimulationEvent)
}

// MultiStore fans events out to every store in order.
type MultiStore []EventStore

// EmitEvent forwards event to each store.
func (m MultiStore) EmitEvent(event SimulationEvent) {
	for _, s := range m {
		s.EmitEvent(event)
	}
}

// LogStore writes every event to a logger at debug level.
type LogStore struct {
	Logger *slog.Logger
}

// EmitEvent logs event.
func (s LogStore) EmitEvent(event SimulationEvent) {
	s.Logger.Debug("simulation event",
		"type", event.Type.String(),
		"tick", event.Tick,
		"x", event.Position.X,
		"y", event.Position.Y,
		"count", event.Count,
	)
}

// EventLog keeps every event in memory.
type EventLog struct {
	Events []SimulationEvent
}

// EmitEvent appends event.
func (l *EventLog) EmitEvent(event SimulationEvent) {
	l.Events = append(l.Events, event)
}

// Count returns how many events of type t were logged.
func (l *EventLog) Count(t SimulationEventType) int {
	n := 0
	for _, e := range l.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}
