package throwsim

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	Button string  `json:"button,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`

	key    Key
	button MouseButton
}

// script is the top-level JSON structure of an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Screenshotter captures the next presented frame under a label.
type Screenshotter interface {
	Screenshot(label string)
}

// ScriptedEvents is an EventSource that replays a JSON input script, one
// step per poll. Steps that span frames (click, key, drag) queue their
// later events and the script waits for them to drain before advancing.
//
// Supported actions:
//
//	move       {x, y}
//	press      {button}            button defaults to "left"
//	release    {button}
//	click      {x, y, button}      press this frame, release the next
//	drag       {fromX, fromY, toX, toY, frames}
//	key        {key, frames}       hold key for frames polls (default 1)
//	keydown    {key}
//	keyup      {key}
//	wait       {frames}
//	screenshot {label}
//	close                          press Escape
type ScriptedEvents struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	queue     [][]Event
	shots     Screenshotter
	done      bool
}

// LoadScript parses a JSON input script. Unknown actions, keys and buttons
// are rejected up front.
func LoadScript(data []byte) (*ScriptedEvents, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("throwsim: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("throwsim: parse script: no steps")
	}
	for i := range sc.Steps {
		if err := sc.Steps[i].resolve(); err != nil {
			return nil, fmt.Errorf("throwsim: parse script: step %d: %w", i, err)
		}
	}
	return &ScriptedEvents{steps: sc.Steps}, nil
}

func (st *scriptStep) resolve() error {
	switch st.Action {
	case "move", "wait", "screenshot", "close", "drag":
	case "press", "release", "click":
		switch st.Button {
		case "", "left":
			st.button = MouseButtonLeft
		case "right":
			st.button = MouseButtonRight
		case "middle":
			st.button = MouseButtonMiddle
		default:
			return fmt.Errorf("unknown button %q", st.Button)
		}
	case "key", "keydown", "keyup":
		k, ok := ParseKey(st.Key)
		if !ok || k == KeyNone {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		st.key = k
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// SetScreenshotter routes screenshot steps to s.
func (r *ScriptedEvents) SetScreenshotter(s Screenshotter) {
	r.shots = s
}

// Done reports whether every step has run and every queued event has been
// delivered.
func (r *ScriptedEvents) Done() bool {
	return r.done
}

// PollEvents advances the script by one frame and appends the events for
// that frame.
func (r *ScriptedEvents) PollEvents(dst []Event) []Event {
	if r.done {
		return dst
	}
	if len(r.queue) > 0 {
		dst = append(dst, r.queue[0]...)
		r.queue[0] = nil
		r.queue = r.queue[1:]
		r.checkDone()
		return dst
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return dst
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return dst
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		dst = append(dst, Event{Kind: EventMouseMove, X: st.X, Y: st.Y})
	case "press":
		dst = append(dst, Event{Kind: EventButtonDown, Button: st.button})
	case "release":
		dst = append(dst, Event{Kind: EventButtonUp, Button: st.button})
	case "click":
		dst = append(dst,
			Event{Kind: EventMouseMove, X: st.X, Y: st.Y},
			Event{Kind: EventButtonDown, Button: st.button},
		)
		r.queue = append(r.queue, []Event{{Kind: EventButtonUp, Button: st.button}})
	case "drag":
		dst = r.drag(dst, st)
	case "key":
		dst = append(dst, Event{Kind: EventKeyDown, Key: st.key})
		for i := 1; i < st.Frames; i++ {
			r.queue = append(r.queue, nil)
		}
		r.queue = append(r.queue, []Event{{Kind: EventKeyUp, Key: st.key}})
	case "keydown":
		dst = append(dst, Event{Kind: EventKeyDown, Key: st.key})
	case "keyup":
		dst = append(dst, Event{Kind: EventKeyUp, Key: st.key})
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if r.shots != nil {
			r.shots.Screenshot(st.Label)
		}
	case "close":
		dst = append(dst, Event{Kind: EventKeyDown, Key: KeyEscape})
	}

	r.checkDone()
	return dst
}

// drag presses at the start point, moves in frames-1 even steps and
// releases at the end point.
func (r *ScriptedEvents) drag(dst []Event, st scriptStep) []Event {
	frames := st.Frames
	if frames < 2 {
		frames = 2
	}
	dst = append(dst,
		Event{Kind: EventMouseMove, X: st.FromX, Y: st.FromY},
		Event{Kind: EventButtonDown, Button: MouseButtonLeft},
	)
	for i := 1; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		ev := []Event{{
			Kind: EventMouseMove,
			X:    st.FromX + (st.ToX-st.FromX)*t,
			Y:    st.FromY + (st.ToY-st.FromY)*t,
		}}
		if i == frames-1 {
			ev = append(ev, Event{Kind: EventButtonUp, Button: MouseButtonLeft})
		}
		r.queue = append(r.queue, ev)
	}
	return dst
}

func (r *ScriptedEvents) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
}
