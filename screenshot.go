package throwsim

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues label for the next drawn frame. Every label becomes
// its own PNG in WindowOptions.ScreenshotDir.
func (w *Window) Screenshot(label string) {
	w.screenshotQueue = append(w.screenshotQueue, label)
}

// flushScreenshots saves the frame on screen once per queued label. It runs
// from draw before the FPS overlay, so the overlay never shows in a shot.
func (w *Window) flushScreenshots(screen *ebiten.Image) {
	if len(w.screenshotQueue) == 0 {
		return
	}
	defer func() { w.screenshotQueue = w.screenshotQueue[:0] }()

	dir := w.opts.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.log.Error("screenshot dir", "dir", dir, "err", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := straightAlpha(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range w.screenshotQueue {
		w.shotSeq++
		path := filepath.Join(dir, shotName(stamp, w.shotSeq, label))
		if err := savePNG(path, img); err != nil {
			w.log.Error("screenshot", "label", label, "err", err)
			continue
		}
		w.log.Info("screenshot saved", "label", label, "path", path)
	}
}

// straightAlpha turns premultiplied RGBA bytes, as read back from the GPU,
// into an NRGBA image.
func straightAlpha(pixels []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

// shotName is "<stamp>_<seq>_<label>.png". The sequence number keeps shots
// taken within the same second apart.
func shotName(stamp string, seq int, label string) string {
	return fmt.Sprintf("%s_%03d_%s.png", stamp, seq, fileLabel(label))
}

// fileLabel keeps letters, digits, '-' and '.' of an ASCII label and maps
// everything else to '_'. Blank labels become "shot".
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "shot"
	}
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, label)
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("throwsim: screenshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("throwsim: screenshot: %w", cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("throwsim: screenshot %s: %w", path, err)
	}
	return nil
}
