package tenkai

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minZoom keeps the scale positive when no MinScale is configured.
const minZoom = 0.05

// scrollAnim holds active scroll-to tweens for X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is the engine's view of the world: the canvas is scaled by Scale
// and then translated by (X, Y) before the root scenes and entities draw.
type Viewport struct {
	// X and Y are the world offset applied after scaling.
	X, Y float64
	// Scale is the zoom factor (1.0 = no zoom).
	Scale float64
	// MinScale and MaxScale bound zooming. Zero leaves a side unbounded.
	MinScale, MaxScale float64
	// Scroll limits. Nil leaves a side unbounded.
	MinX, MinY, MaxX, MaxY *float64

	EnableScroll bool
	EnableZoom   bool

	// Width and Height are the visible world size (screen size / Scale).
	Width, Height float64
	// ScreenWidth and ScreenHeight are the screen size in pixels.
	ScreenWidth, ScreenHeight int

	// MouseX and MouseY are the last pointer position in world units.
	MouseX, MouseY float64

	scroll *scrollAnim
}

// NewViewport creates a viewport from the view fields of cfg.
func NewViewport(cfg EngineConfig) *Viewport {
	v := &Viewport{
		X:            cfg.X,
		Y:            cfg.Y,
		Scale:        cfg.Scale,
		MinScale:     cfg.MinScale,
		MaxScale:     cfg.MaxScale,
		MinX:         cfg.MinX,
		MinY:         cfg.MinY,
		MaxX:         cfg.MaxX,
		MaxY:         cfg.MaxY,
		EnableScroll: cfg.EnableScroll,
		EnableZoom:   cfg.EnableZoom,
	}
	if v.Scale <= 0 {
		v.Scale = 1
	}
	v.Resize(cfg.Width, cfg.Height)
	return v
}

// Resize records a new screen size and recomputes the visible world size.
func (v *Viewport) Resize(screenW, screenH int) {
	v.ScreenWidth, v.ScreenHeight = screenW, screenH
	v.Width = float64(screenW) / v.Scale
	v.Height = float64(screenH) / v.Scale
}

// PanZoom applies a wheel gesture. With zoom set (and zooming enabled) dy
// changes the scale by dy/100, keeping the view centred; otherwise (dx, dy)
// scrolls the view. Limits are enforced either way. It reports whether the
// view changed.
func (v *Viewport) PanZoom(dx, dy float64, zoom bool) bool {
	px, py, ps := v.X, v.Y, v.Scale
	switch {
	case zoom && v.EnableZoom:
		v.Scale = v.clampScale(v.Scale + dy/100)
		ow, oh := v.Width, v.Height
		v.Width = float64(v.ScreenWidth) / v.Scale
		v.Height = float64(v.ScreenHeight) / v.Scale
		v.X -= (ow - v.Width) / 2
		v.Y -= (oh - v.Height) / 2
	case !zoom && v.EnableScroll:
		v.X += dx
		v.Y += dy
	}
	v.EnforceLimits()
	return v.X != px || v.Y != py || v.Scale != ps
}

func (v *Viewport) clampScale(s float64) float64 {
	if v.MinScale > 0 {
		s = math.Max(s, v.MinScale)
	}
	if v.MaxScale > 0 {
		s = math.Min(s, v.MaxScale)
	}
	return math.Max(s, minZoom)
}

// EnforceLimits clamps the offset to the configured scroll limits. Minimums
// are multiplied by the scale and maximums divided by it.
func (v *Viewport) EnforceLimits() {
	if v.MinX != nil {
		v.X = math.Max(*v.MinX*v.Scale, v.X)
	}
	if v.MinY != nil {
		v.Y = math.Max(*v.MinY*v.Scale, v.Y)
	}
	if v.MaxX != nil {
		v.X = math.Min(*v.MaxX/v.Scale, v.X)
	}
	if v.MaxY != nil {
		v.Y = math.Min(*v.MaxY/v.Scale, v.Y)
	}
}

// SetMouse converts a screen position to world units and stores it.
func (v *Viewport) SetMouse(sx, sy float64) {
	v.MouseX, v.MouseY = v.ScreenToWorld(sx, sy)
}

// ScreenToWorld converts screen pixels to world units.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx/v.Scale - v.X, sy/v.Scale - v.Y
}

// WorldToScreen converts world units to screen pixels.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return (wx + v.X) * v.Scale, (wy + v.Y) * v.Scale
}

// VisibleBounds returns the world rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	x, y := -v.X, -v.Y
	return Rect{X1: x, Y1: y, X2: x + v.Width, Y2: y + v.Height}
}

// ScrollTo animates the offset to (x, y) over duration seconds.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	v.scroll = &scrollAnim{
		tweenX: gween.New(float32(v.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo is in progress.
func (v *Viewport) Scrolling() bool { return v.scroll != nil }

// Update advances a running ScrollTo by dt seconds and reports whether the
// offset changed.
func (v *Viewport) Update(dt float32) bool {
	if v.scroll == nil {
		return false
	}
	px, py := v.X, v.Y
	if !v.scroll.doneX {
		val, done := v.scroll.tweenX.Update(dt)
		v.X = float64(val)
		v.scroll.doneX = done
	}
	if !v.scroll.doneY {
		val, done := v.scroll.tweenY.Update(dt)
		v.Y = float64(val)
		v.scroll.doneY = done
	}
	if v.scroll.doneX && v.scroll.doneY {
		v.scroll = nil
	}
	v.EnforceLimits()
	return v.X != px || v.Y != py
}
