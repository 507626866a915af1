package throwsim

// InputState is the latest known input, as seen by Simulation.Update.
type InputState struct {
	// Cursor is the last reported pointer position in scene coordinates.
	Cursor Vec2
	// CursorSeen is set by the first pointer move. Until then Cursor is
	// not a real position.
	CursorSeen bool
	// PrimaryHeld is true while the left mouse button is down.
	PrimaryHeld bool
	// ActiveKey holds the most recently pressed parameter key, or KeyNone.
	ActiveKey Key
	// Vectors flips between +1 and -1 on every F1 press. -1 shows force
	// vectors.
	Vectors int
	// Fill flips between +1 and -1 on every F2 press. -1 draws outlines.
	Fill int
	// Clear is true while C is held.
	Clear bool
}

// activeKeys is the set of keys that write InputState.ActiveKey.
var activeKeys = map[Key]bool{
	KeyQ: true, KeyA: true,
	KeyW: true, KeyS: true,
	KeyE: true, KeyD: true,
	KeyR: true, KeyF: true,
	KeyT: true, KeyG: true,
	KeyY: true, KeyH: true,
}

// Input is the input adapter: a plain record mutated by named entry points
// that the loop invokes while draining its EventSource. It is not safe for
// concurrent use; the loop writes it and the simulation reads it on the same
// goroutine.
type Input struct {
	state  InputState
	closer func()
}

// NewInput returns an adapter with both toggles at +1 and no active key.
func NewInput() *Input {
	return &Input{state: InputState{Vectors: 1, Fill: 1}}
}

// SetCloser installs the callback run when Escape is pressed. The loop
// installs Surface.Close here.
func (in *Input) SetCloser(fn func()) {
	in.closer = fn
}

// State returns a snapshot of the current input.
func (in *Input) State() InputState {
	return in.state
}

// OnMouseMove records the cursor position.
func (in *Input) OnMouseMove(x, y float64) {
	in.state.Cursor = Vec2{x, y}
	in.state.CursorSeen = true
}

// OnButtonDown handles a button press. Only the left button is tracked.
func (in *Input) OnButtonDown(b MouseButton) {
	if b == MouseButtonLeft {
		in.state.PrimaryHeld = true
	}
}

// OnButtonUp handles a button release. Only the left button is tracked.
func (in *Input) OnButtonUp(b MouseButton) {
	if b == MouseButtonLeft {
		in.state.PrimaryHeld = false
	}
}

// OnKeyDown handles a key press.
func (in *Input) OnKeyDown(k Key) {
	switch {
	case activeKeys[k]:
		in.state.ActiveKey = k
	case k == KeyF1:
		in.state.Vectors *= -1
	case k == KeyF2:
		in.state.Fill *= -1
	case k == KeyC:
		in.state.Clear = true
	case k == KeyEscape:
		if in.closer != nil {
			in.closer()
		}
	}
}

// OnKeyUp handles a key release. Releasing any parameter key resets
// ActiveKey to KeyNone, even when a different key was pressed after it.
func (in *Input) OnKeyUp(k Key) {
	switch {
	case activeKeys[k]:
		in.state.ActiveKey = KeyNone
	case k == KeyC:
		in.state.Clear = false
	}
}

// Dispatch routes ev to the matching entry point.
func (in *Input) Dispatch(ev Event) {
	switch ev.Kind {
	case EventMouseMove:
		in.OnMouseMove(ev.X, ev.Y)
	case EventButtonDown:
		in.OnButtonDown(ev.Button)
	case EventButtonUp:
		in.OnButtonUp(ev.Button)
	case EventKeyDown:
		in.OnKeyDown(ev.Key)
	case EventKeyUp:
		in.OnKeyUp(ev.Key)
	}
}
