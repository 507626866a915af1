package throwsim

// EventKind identifies a kind of input event delivered by an EventSource.
type EventKind uint8

const (
	EventMouseMove  EventKind = iota // cursor moved to (X, Y)
	EventButtonDown                  // Button pressed
	EventButtonUp                    // Button released
	EventKeyDown                     // Key pressed
	EventKeyUp                       // Key released
)

func (k EventKind) String() string {
	switch k {
	case EventMouseMove:
		return "mouse-move"
	case EventButtonDown:
		return "button-down"
	case EventButtonUp:
		return "button-up"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	default:
		return "unknown"
	}
}

// Event is a single input event. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Button MouseButton
	Key    Key
}

// EventSource delivers pending input events. PollEvents appends every event
// that arrived since the previous call to dst and returns the extended slice.
// It must not block.
type EventSource interface {
	PollEvents(dst []Event) []Event
}

// NoEvents is an EventSource that never delivers anything.
type NoEvents struct{}

// PollEvents returns dst unchanged.
func (NoEvents) PollEvents(dst []Event) []Event { return dst }

// MultiSource polls every source in order each cycle.
type MultiSource []EventSource

// PollEvents appends the events of each source to dst.
func (m MultiSource) PollEvents(dst []Event) []Event {
	for _, s := range m {
		dst = s.PollEvents(dst)
	}
	return dst
}
