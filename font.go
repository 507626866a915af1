package throwsim

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering. A TextDraw
// carries its own size, so faces are created per size on first use.
type TTFFont struct {
	source *text.GoTextFaceSource
	faces  map[uint]*text.GoTextFace
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data.
func LoadTTFFont(ttfData []byte) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("throwsim: failed to parse TTF data: %w", err)
	}
	return &TTFFont{source: source, faces: make(map[uint]*text.GoTextFace)}, nil
}

// Face returns the face for size, creating it if needed.
func (f *TTFFont) Face(size uint) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: float64(size)}
	f.faces[size] = face
	return face
}

// LineHeight returns the vertical distance between baselines at size.
func (f *TTFFont) LineHeight(size uint) float64 {
	m := f.Face(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// MeasureString returns the width and height of s rendered at size.
func (f *TTFFont) MeasureString(s string, size uint) (width, height float64) {
	return text.Measure(s, f.Face(size), f.LineHeight(size))
}
