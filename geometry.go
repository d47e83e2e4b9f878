package tenkai

import (
	"math"
	"time"
)

// Rect is an axis-aligned rectangle given by its corners. The coordinate
// system has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Intersects reports whether a and b overlap.
// Rectangles sharing only an edge are considered intersecting.
func Intersects(a, b Rect) bool {
	return !(b.X1 > a.X2 || b.X2 < a.X1 || b.Y1 > a.Y2 || b.Y2 < a.Y1)
}

// Intersects reports whether r and other overlap. See [Intersects].
func (r Rect) Intersects(other Rect) bool {
	return Intersects(r, other)
}

// Bounding returns the smallest rectangle containing both a and b.
func Bounding(a, b Rect) Rect {
	return Rect{
		X1: math.Min(a.X1, b.X1),
		Y1: math.Min(a.Y1, b.Y1),
		X2: math.Max(a.X2, b.X2),
		Y2: math.Max(a.Y2, b.Y2),
	}
}

// Width returns X2 - X1.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// --- Debounce ---

// Debounced delays a function until calls to it have stopped for a while.
type Debounced struct {
	sched *Scheduler
	wait  time.Duration
	fn    func()
	timer *Timer
}

// Debounce returns a Debounced that runs fn once wait has elapsed on s
// without another Call.
func Debounce(s *Scheduler, wait time.Duration, fn func()) *Debounced {
	if s == nil {
		s = DefaultScheduler()
	}
	return &Debounced{sched: s, wait: wait, fn: fn}
}

// Call (re)starts the wait.
func (d *Debounced) Call() {
	d.Cancel()
	d.timer = d.sched.AfterFunc(d.wait, func() {
		d.timer = nil
		d.fn()
	})
}

// Cancel drops a pending call, if any.
func (d *Debounced) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is waiting to run.
func (d *Debounced) Pending() bool { return d.timer != nil }
