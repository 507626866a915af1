package throwsim

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"after-fire", "after-fire"},
		{"frame.01", "frame.01"},
		{"two shots", "two_shots"},
		{"path/to/thing", "path_to_thing"},
		{"über", "_ber"},
		{"", "shot"},
		{"   ", "shot"},
		{"Mixed123", "Mixed123"},
	}
	for _, tt := range tests {
		if got := fileLabel(tt.in); got != tt.want {
			t.Errorf("fileLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	w := NewWindow(WindowOptions{})
	w.Screenshot("a")
	w.Screenshot("b")
	w.Screenshot("c")
	if len(w.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(w.screenshotQueue))
	}
	if w.screenshotQueue[0] != "a" || w.screenshotQueue[1] != "b" || w.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", w.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	w := NewWindow(WindowOptions{})
	if w.opts.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", w.opts.ScreenshotDir, "screenshots")
	}
}

func TestShotName(t *testing.T) {
	if got := shotName("20240101_120000", 7, "two shots"); got != "20240101_120000_007_two_shots.png" {
		t.Errorf("shotName = %q", got)
	}
	if shotName("s", 1, "x") == shotName("s", 2, "x") {
		t.Error("same label in the same second must get distinct names")
	}
}

func TestStraightAlpha(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half transparent, premultiplied
		10, 20, 30, 255, // opaque, unchanged
		0, 0, 0, 0, // transparent, unchanged
		200, 200, 200, 100, // overflow clamps to 255
	}
	img := straightAlpha(pixels, 2, 2)

	want := []byte{
		255, 127, 0, 128,
		10, 20, 30, 255,
		0, 0, 0, 0,
		255, 255, 255, 100,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
	if pixels[0] != 128 {
		t.Error("input pixels modified")
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "out.png")

	if err := savePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, a := decoded.At(1, 1).RGBA(); r != 0xffff || a != 0xffff {
		t.Errorf("pixel = %v, want opaque red", decoded.At(1, 1))
	}
}

func TestSavePNGBadPath(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if err := savePNG(filepath.Join(t.TempDir(), "missing", "out.png"), img); err == nil {
		t.Error("expected error for missing directory")
	}
}
