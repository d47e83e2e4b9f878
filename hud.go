package tenkai

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"
)

// statsFrames is how many frames are summarised per debug log line.
const statsFrames = 300

// frameStats accumulates Draw timings between debug log lines.
type frameStats struct {
	frames int
	total  time.Duration
	worst  time.Duration
	log    func(frames int, avg, worst time.Duration)
}

func (f *frameStats) record(d time.Duration) {
	f.frames++
	f.total += d
	f.worst = max(f.worst, d)
	if f.frames < statsFrames {
		return
	}
	if f.log != nil {
		f.log(f.frames, f.total/time.Duration(f.frames), f.worst)
	}
	*f = frameStats{log: f.log}
}

// hudText is the line printed in the top-left corner when ShowHUD is set.
func (e *Engine) hudText() string {
	v := e.Viewport
	return fmt.Sprintf("Scale: %.2f Offset: (%.0f, %.0f) Mouse: (%.0f, %.0f) Screen: %dx%d FPS: %.1f",
		v.Scale, v.X, v.Y, v.MouseX, v.MouseY, v.ScreenWidth, v.ScreenHeight, ebiten.ActualFPS())
}

func (e *Engine) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, e.hudText())
}

// logFrameStats is installed as the stats sink when debug logging is on.
func (e *Engine) logFrameStats(frames int, avg, worst time.Duration) {
	e.Log.WithFields(logrus.Fields{
		"frames": frames,
		"avg":    avg,
		"worst":  worst,
	}).Debug("draw timings")
}
