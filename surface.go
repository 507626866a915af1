package throwsim

// Primitive selects how a Batch's vertices are assembled by the surface.
type Primitive uint8

const (
	PrimitivePolygon     Primitive = iota // closed polygon, filled
	PrimitiveTriangleFan                  // filled fan around vertex 0
	PrimitiveLineStrip                    // connected line through every vertex
	PrimitiveLines                        // independent segments, two vertices each
)

func (p Primitive) String() string {
	switch p {
	case PrimitivePolygon:
		return "polygon"
	case PrimitiveTriangleFan:
		return "triangle-fan"
	case PrimitiveLineStrip:
		return "line-strip"
	case PrimitiveLines:
		return "lines"
	default:
		return "unknown"
	}
}

// Vertex is a single colored point of a Batch in scene coordinates.
type Vertex struct {
	Pos   Vec2
	Color Color
}

// Batch is a run of vertices submitted to a Surface in one call.
type Batch struct {
	Primitive Primitive
	Vertices  []Vertex
}

// Font is an opaque font handle acquired from a FontLoader during
// LoadContent. It is passed by reference into every text draw and lives for
// the whole run.
type Font interface {
	// LineHeight returns the distance between baselines at the given size.
	LineHeight(size uint) float64
}

// TextDraw is a single text primitive.
type TextDraw struct {
	Font     Font
	Value    string
	Size     uint
	Position Vec2
	Color    Color
}

// Surface is the render target the loop owns. Implementations are not
// required to be safe for concurrent use; the loop calls them from a single
// goroutine.
type Surface interface {
	// Clear starts a new frame filled with c.
	Clear(c Color)
	// DrawBatch submits vertices. The surface must not retain b.Vertices
	// past the call unless it copies them.
	DrawBatch(b Batch)
	// DrawText submits a text primitive.
	DrawText(t TextDraw)
	// Present shows the frame built since the last Clear.
	Present()
	// IsOpen reports whether the surface can still be drawn to.
	IsOpen() bool
	// Close requests the surface to close. IsOpen reports false afterwards.
	Close()
}

// FontLoader acquires fonts from raw font file bytes.
type FontLoader interface {
	LoadFont(data []byte) (Font, error)
}

// Driver is implemented by surfaces that own the frame pacing themselves,
// such as Window on top of Ebitengine. Drive calls cycle once per frame until
// the surface closes or cycle returns an error.
type Driver interface {
	Drive(cycle func() error) error
}
