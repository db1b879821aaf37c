package storytime

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultScreenshotDir is where Run writes screenshots when
// RunConfig.ScreenshotDir is empty.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the next rendered frame. Backends
// that can capture (Run) write one PNG per label; others drop the request.
// Safe to call from Update, scripts and pointer callbacks.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// TakeScreenshotRequests returns the queued labels and clears the queue.
// Custom hosts call it after Render.
func (s *Scene) TakeScreenshotRequests() []string {
	labels := s.screenshotQueue
	s.screenshotQueue = nil
	return labels
}

// flushScreenshots captures screen once and writes it under dir for every
// queued label. Failures are logged; a frame never fails because of them.
func (s *Scene) flushScreenshots(screen *ebiten.Image, dir string) {
	labels := s.TakeScreenshotRequests()
	if len(labels) == 0 {
		return
	}
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	img := readStraightAlpha(screen)
	stamp := time.Now().Format("20060102_150405")

	for _, label := range labels {
		path, err := writeScreenshot(dir, stamp, label, img)
		if err != nil {
			logs.WithTag("scene", s.name).Warn(err)
			continue
		}
		logs.WithTag("scene", s.name).
			WithTag("path", path).
			Info("screenshot saved")
	}
}

// readStraightAlpha reads the premultiplied pixels of screen into a
// straight-alpha image suitable for PNG encoding.
func readStraightAlpha(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writeScreenshot(dir, stamp, label string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.New("creating screenshot dir failed").
			WithTag("dir", dir).
			Wrap(err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.New("creating screenshot file failed").
			WithTag("path", path).
			Wrap(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", errors.New("encoding screenshot failed").
			WithTag("path", path).
			Wrap(err)
	}
	return path, f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
