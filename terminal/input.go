package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/throwsim"
)

var runeKeys = map[rune]throwsim.Key{
	'q': throwsim.KeyQ, 'a': throwsim.KeyA,
	'w': throwsim.KeyW, 's': throwsim.KeyS,
	'e': throwsim.KeyE, 'd': throwsim.KeyD,
	'r': throwsim.KeyR, 'f': throwsim.KeyF,
	't': throwsim.KeyT, 'g': throwsim.KeyG,
	'y': throwsim.KeyY, 'h': throwsim.KeyH,
	'c': throwsim.KeyC,
}

var buttonMasks = [...]struct {
	mask   tcell.ButtonMask
	button throwsim.MouseButton
}{
	{tcell.Button1, throwsim.MouseButtonLeft},
	{tcell.Button2, throwsim.MouseButtonRight},
	{tcell.Button3, throwsim.MouseButtonMiddle},
}

// translateKey maps a tcell key event onto an adapter key. Ctrl+C counts
// as Escape.
func translateKey(ev *tcell.EventKey) (throwsim.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return throwsim.KeyEscape, true
	case tcell.KeyF1:
		return throwsim.KeyF1, true
	case tcell.KeyF2:
		return throwsim.KeyF2, true
	case tcell.KeyRune:
		k, ok := runeKeys[unicode.ToLower(ev.Rune())]
		return k, ok
	}
	return throwsim.KeyNone, false
}

// holdable reports whether k has release semantics. Only those keys are
// held across repeats and released after the hold time; toggles and Escape
// act on every press.
func holdable(k throwsim.Key) bool {
	switch k {
	case throwsim.KeyF1, throwsim.KeyF2, throwsim.KeyEscape:
		return false
	}
	return true
}

// PollEvents drains the events pumped since the last call without blocking,
// then releases keys whose hold time has run out.
func (t *Screen) PollEvents(dst []throwsim.Event) []throwsim.Event {
	for drained := false; !drained; {
		select {
		case ev := <-t.events:
			dst = t.translate(dst, ev)
		default:
			drained = true
		}
	}
	return t.releaseKeys(dst)
}

func (t *Screen) translate(dst []throwsim.Event, ev tcell.Event) []throwsim.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := translateKey(ev)
		if !ok {
			return dst
		}
		if !holdable(k) {
			return append(dst, throwsim.Event{Kind: throwsim.EventKeyDown, Key: k})
		}
		if !t.isHeld[k] {
			dst = append(dst, throwsim.Event{Kind: throwsim.EventKeyDown, Key: k})
		}
		t.isHeld[k] = true
		t.held[k] = t.now()

	case *tcell.EventMouse:
		x, y := ev.Position()
		if !t.hasCursor || x != t.cursorX || y != t.cursorY {
			t.cursorX, t.cursorY, t.hasCursor = x, y, true
			p := t.toScene(x, y)
			dst = append(dst, throwsim.Event{Kind: throwsim.EventMouseMove, X: p.X, Y: p.Y})
		}
		buttons := ev.Buttons()
		for _, b := range buttonMasks {
			was, is := t.buttons&b.mask != 0, buttons&b.mask != 0
			switch {
			case is && !was:
				dst = append(dst, throwsim.Event{Kind: throwsim.EventButtonDown, Button: b.button})
			case was && !is:
				dst = append(dst, throwsim.Event{Kind: throwsim.EventButtonUp, Button: b.button})
			}
		}
		t.buttons = buttons

	case *tcell.EventResize:
		t.cols, t.rows = t.screen.Size()
		t.screen.Sync()
		t.log.Debug("terminal resized", "cols", t.cols, "rows", t.rows)
	}
	return dst
}

// releaseKeys emits a key-up for every held key not pressed again within
// the hold time, in key order.
func (t *Screen) releaseKeys(dst []throwsim.Event) []throwsim.Event {
	now := t.now()
	for k := range t.isHeld {
		if t.isHeld[k] && now.Sub(t.held[k]) >= t.keyHold {
			t.isHeld[k] = false
			dst = append(dst, throwsim.Event{Kind: throwsim.EventKeyUp, Key: throwsim.Key(k)})
		}
	}
	return dst
}
