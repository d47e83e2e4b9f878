package tenkai

import (
	"slices"
	"time"
)

// LoopForever makes an animation repeat until stopped or replaced.
const LoopForever = -1

// Frame is one step of a sprite animation. A nil Delay or delta falls back
// to the value in the running AnimationOptions.
type Frame struct {
	// Tile is the sheet cell shown during the frame. Nil shows nothing.
	Tile  *Tile
	Delay *time.Duration
	// DX and DY move the entity when the frame is shown.
	DX, DY *float64
}

// NewFrame returns a frame showing the cell at (col, row).
func NewFrame(col, row int) Frame {
	return Frame{Tile: TileAt(col, row)}
}

// BlankFrame returns a frame that shows nothing.
func BlankFrame() Frame { return Frame{} }

// Wait returns f with its delay set to d.
func (f Frame) Wait(d time.Duration) Frame {
	f.Delay = &d
	return f
}

// Move returns f with both deltas set.
func (f Frame) Move(dx, dy float64) Frame {
	f.DX, f.DY = &dx, &dy
	return f
}

// MoveX returns f with its horizontal delta set.
func (f Frame) MoveX(dx float64) Frame {
	f.DX = &dx
	return f
}

// MoveY returns f with its vertical delta set.
func (f Frame) MoveY(dy float64) Frame {
	f.DY = &dy
	return f
}

// Limit returns a pointer to v, for the boundary fields of AnimationOptions.
func Limit(v float64) *float64 { return &v }

// AnimationOptions describes a run of a registered animation.
type AnimationOptions struct {
	Name string
	// Delay is the time each frame stays up unless the frame sets its own.
	Delay time.Duration
	// Loop is the number of extra passes: 0 plays once, n > 0 repeats n
	// more times, LoopForever never ends on its own.
	Loop int
	// DX and DY move the entity each frame unless the frame sets its own.
	DX, DY float64
	// MinX, MinY, MaxX and MaxY end the animation (as completed) once the
	// entity moves to or past them. Nil means unbounded.
	MinX, MinY, MaxX, MaxY *float64
	// StopTile is shown when the animation ends for any reason.
	StopTile *Tile
	// OnStop is called once, on a later scheduler update, when the
	// animation ends.
	OnStop func(e *Entity, status StopStatus)
}

// AnimationState is a snapshot of a running animation.
type AnimationState struct {
	Name  string
	Frame int // index of the next frame to show
	Loop  int // passes left (LoopForever when endless)
}

type runningAnimation struct {
	opts   AnimationOptions
	frames []Frame
	frame  int
	loop   int
	timer  *Timer
}

// breached reports whether (x, y) lies on or past any configured boundary.
func (o *AnimationOptions) breached(x, y float64) bool {
	return (o.MinX != nil && x <= *o.MinX) ||
		(o.MinY != nil && y <= *o.MinY) ||
		(o.MaxX != nil && x >= *o.MaxX) ||
		(o.MaxY != nil && y >= *o.MaxY)
}

// AddAnimation registers frames under name, replacing any previous set.
func (e *Entity) AddAnimation(name string, frames []Frame) {
	if e.animations == nil {
		e.animations = make(map[string][]Frame)
	}
	e.animations[name] = slices.Clone(frames)
}

// HasAnimation reports whether an animation is registered under name.
func (e *Entity) HasAnimation(name string) bool {
	_, ok := e.animations[name]
	return ok
}

// AnimateStart starts the named animation. An unknown name returns a
// *NotFoundError and leaves any running animation alone; otherwise the
// running animation is stopped with StopReplaced and the first frame is
// shown immediately.
func (e *Entity) AnimateStart(opts AnimationOptions) error {
	frames, ok := e.animations[opts.Name]
	if !ok {
		return &NotFoundError{Kind: "animation", Name: opts.Name}
	}
	e.stopAnimation(StopReplaced)

	a := &runningAnimation{opts: opts, frames: frames, loop: opts.Loop}
	e.anim = a
	e.advance(a)
	return nil
}

// AnimateResume shows the running animation's next frame now instead of
// waiting for its timer.
func (e *Entity) AnimateResume() {
	a := e.anim
	if a == nil {
		return
	}
	a.timer.Stop()
	e.advance(a)
}

// AnimateStop ends the running animation with StopStopped.
func (e *Entity) AnimateStop() {
	e.stopAnimation(StopStopped)
}

// Animating reports whether an animation is running.
func (e *Entity) Animating() bool { return e.anim != nil }

// Animation returns a snapshot of the running animation.
func (e *Entity) Animation() (AnimationState, bool) {
	a := e.anim
	if a == nil {
		return AnimationState{}, false
	}
	return AnimationState{Name: a.opts.Name, Frame: a.frame, Loop: a.loop}, true
}

// advance shows the current frame, applies its move, and arms the timer for
// the next one.
func (e *Entity) advance(a *runningAnimation) {
	if e.anim != a {
		return
	}
	a.timer = nil
	if a.frame >= len(a.frames) {
		e.stopAnimation(StopCompleted)
		return
	}

	f := a.frames[a.frame]
	e.Tile = f.Tile.clone()

	delay := a.opts.Delay
	if f.Delay != nil {
		delay = *f.Delay
	}
	dx, dy := a.opts.DX, a.opts.DY
	if f.DX != nil {
		dx = *f.DX
	}
	if f.DY != nil {
		dy = *f.DY
	}
	e.X += dx
	e.Y += dy

	if a.opts.breached(e.X, e.Y) {
		e.stopAnimation(StopCompleted)
		return
	}

	a.frame++
	if a.frame >= len(a.frames) {
		if a.loop == 0 {
			e.stopAnimation(StopCompleted)
			return
		}
		a.frame = 0
		if a.loop > 0 {
			a.loop--
		}
	}

	e.Redraw()
	a.timer = e.scheduler().AfterFunc(delay, func() { e.advance(a) })
}

func (e *Entity) stopAnimation(status StopStatus) {
	a := e.anim
	if a == nil {
		return
	}
	a.timer.Stop()
	a.timer = nil
	e.anim = nil

	if a.opts.StopTile != nil {
		e.Tile = a.opts.StopTile.clone()
	}
	if fn := a.opts.OnStop; fn != nil {
		e.scheduler().Defer(func() { fn(e, status) })
	}
	e.Redraw()
}

func (e *Entity) scheduler() *Scheduler {
	if e.sched == nil {
		e.sched = DefaultScheduler()
	}
	return e.sched
}
