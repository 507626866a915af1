package throwsim

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadTTFFontInvalidData(t *testing.T) {
	if _, err := LoadTTFFont([]byte("not a TTF file")); err == nil {
		t.Error("expected error for invalid TTF data, got nil")
	}
}

func TestTTFFontFacesPerSize(t *testing.T) {
	f, err := LoadTTFFont(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if f.Face(14) != f.Face(14) {
		t.Error("faces should be cached per size")
	}
	if f.Face(14) == f.Face(28) {
		t.Error("different sizes should get different faces")
	}
	small, large := f.LineHeight(14), f.LineHeight(28)
	if small <= 0 || large <= small {
		t.Errorf("line heights = %f, %f", small, large)
	}
	w, h := f.MeasureString("Gravity: 9.81", 14)
	if w <= 0 || h <= 0 {
		t.Errorf("MeasureString = %f x %f", w, h)
	}
}
