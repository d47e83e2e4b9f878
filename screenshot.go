package tenkai

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// Screenshot queues a labeled capture of the next drawn frame. Files go to
// Config.ScreenshotDir, named after the title, the scheduler time and the
// label, so scripted runs produce the same names every time. EventScreenshot
// fires with the path of each file written.
func (e *Engine) Screenshot(label string) {
	e.screenshots = append(e.screenshots, label)
}

func (e *Engine) flushScreenshots(screen *ebiten.Image) {
	if len(e.screenshots) == 0 {
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	e.saveScreenshots(pixels, b.Dx(), b.Dy())
}

// saveScreenshots writes the queued captures of one frame of premultiplied
// RGBA pixels and empties the queue.
func (e *Engine) saveScreenshots(pixels []byte, w, h int) {
	labels := e.screenshots
	e.screenshots = nil

	data, err := encodeFrame(pixels, w, h)
	if err != nil {
		e.Log.WithError(err).Error("screenshot")
		return
	}
	dir := e.Config.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.Log.WithError(err).WithField("dir", dir).Error("screenshot")
		return
	}
	for _, label := range labels {
		path := filepath.Join(dir, e.screenshotName(label))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			e.Log.WithError(err).Error("screenshot")
			continue
		}
		e.Log.WithFields(logrus.Fields{
			"path":  path,
			"scale": e.Viewport.Scale,
			"x":     e.Viewport.X,
			"y":     e.Viewport.Y,
		}).Info("screenshot saved")
		_ = e.Events.Trigger(EventScreenshot, e, path)
	}
}

func (e *Engine) screenshotName(label string) string {
	return fmt.Sprintf("%s-%08d-%s.png", slug(e.Config.Title, "tenkai"), e.sched.Now().Milliseconds(), slug(label, "frame"))
}

// encodeFrame encodes w×h premultiplied RGBA pixels, the layout ReadPixels
// produces, as PNG.
func encodeFrame(pixels []byte, w, h int) ([]byte, error) {
	if len(pixels) != 4*w*h {
		return nil, fmt.Errorf("frame is %d bytes, want %d for %dx%d", len(pixels), 4*w*h, w, h)
	}
	img := &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// slug lowercases s for use in a file name, turning runs of anything but
// letters, digits, '-' and '.' into a single '_'. Blank input gives def.
func slug(s, def string) string {
	s = strings.Trim(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return '_'
	}, strings.TrimSpace(s)), "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	if s == "" {
		return def
	}
	return s
}
