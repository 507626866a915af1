package throwsim

import (
	"math"
	"strconv"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at submission time in the backends that need it.
type Color struct {
	R, G, B, A float64
}

// RGB8 builds an opaque Color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// RGBA8 builds a Color from 8-bit channels including alpha.
func RGBA8(r, g, b, a uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// Lerp returns the color t of the way from c to o.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

var (
	ColorBlack   = Color{0, 0, 0, 1}
	ColorWhite   = Color{1, 1, 1, 1}
	ColorGreen   = Color{0, 1, 0, 1}
	ColorMagenta = Color{1, 0, 1, 1}
)

// Vec2 is a 2D vector used for positions, forces, and directions throughout
// the API. Scene coordinates have the origin at the top-left with Y
// increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Key identifies a keyboard key known to the input adapter. Backends map
// their native key codes onto these values and drop everything else.
type Key uint8

const (
	KeyNone Key = iota // no key; the neutral value of InputState.ActiveKey
	KeyQ
	KeyA
	KeyW
	KeyS
	KeyE
	KeyD
	KeyR
	KeyF
	KeyT
	KeyG
	KeyY
	KeyH
	KeyC
	KeyF1
	KeyF2
	KeyEscape
)

var keyNames = [...]string{
	KeyNone:   "none",
	KeyQ:      "q",
	KeyA:      "a",
	KeyW:      "w",
	KeyS:      "s",
	KeyE:      "e",
	KeyD:      "d",
	KeyR:      "r",
	KeyF:      "f",
	KeyT:      "t",
	KeyG:      "g",
	KeyY:      "y",
	KeyH:      "h",
	KeyC:      "c",
	KeyF1:     "f1",
	KeyF2:     "f2",
	KeyEscape: "escape",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "key(" + strconv.Itoa(int(k)) + ")"
}

// ParseKey returns the Key with the given lower-case name, as produced by
// Key.String. Unknown names report false.
func ParseKey(name string) (Key, bool) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return KeyNone, false
}
