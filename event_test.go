package throwsim

import "testing"

func TestMultiSourceKeepsOrder(t *testing.T) {
	a := &queuedEvents{polls: [][]Event{{{Kind: EventMouseMove, X: 1}}}}
	b := &queuedEvents{polls: [][]Event{{{Kind: EventKeyDown, Key: KeyEscape}}}}
	src := MultiSource{a, NoEvents{}, b}

	got := src.PollEvents(nil)
	if len(got) != 2 || got[0].Kind != EventMouseMove || got[1].Key != KeyEscape {
		t.Errorf("events = %+v", got)
	}
	if got := src.PollEvents(nil); len(got) != 0 {
		t.Errorf("second poll = %+v, want nothing", got)
	}
}

func TestEventKindString(t *testing.T) {
	for k := EventMouseMove; k <= EventKeyUp; k++ {
		if k.String() == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
}
