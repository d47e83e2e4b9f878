package tenkai

import (
	"container/heap"
	"time"
)

// Scheduler is a virtual clock that runs timers and deferred callbacks from
// the host's update loop. Nothing runs concurrently: callbacks execute inside
// Update, on the caller's goroutine. Tenkai is single-threaded.
type Scheduler struct {
	now      time.Duration
	seq      uint64
	timers   timerHeap
	deferred []func()
}

// Timer is a pending AfterFunc callback.
type Timer struct {
	sched *Scheduler
	due   time.Duration
	seq   uint64
	fn    func()
	index int // position in the heap, -1 once fired or stopped
}

// NewScheduler creates a Scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

var defaultScheduler = NewScheduler()

// DefaultScheduler returns the package scheduler used by nodes created without
// one. An [Engine] built with [NewEngine] ticks it.
func DefaultScheduler() *Scheduler { return defaultScheduler }

// Now returns the virtual time elapsed over all Update calls.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of armed timers plus queued deferred callbacks.
func (s *Scheduler) Pending() int { return len(s.timers) + len(s.deferred) }

// AfterFunc arranges for fn to run during the first Update at which d has
// elapsed. A non-positive d fires on the next Update.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{sched: s, due: s.now + d, seq: s.seq, fn: fn}
	heap.Push(&s.timers, t)
	return t
}

// Stop prevents the timer from firing. It returns false if the timer already
// fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.sched.timers, t.index)
	return true
}

// Defer queues fn to run at the start of the next Update. It never runs fn
// inside the caller.
func (s *Scheduler) Defer(fn func()) {
	s.deferred = append(s.deferred, fn)
}

// Update advances the clock by dt, runs the callbacks deferred before this
// call, then fires every due timer in due order (ties in scheduling order).
// Timers armed by those callbacks wait for a later Update even when their
// delay is zero.
func (s *Scheduler) Update(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}

	queued := s.deferred
	s.deferred = nil
	for _, fn := range queued {
		fn()
	}

	limit := s.seq
	for len(s.timers) > 0 {
		t := s.timers[0]
		if t.due > s.now || t.seq > limit {
			break
		}
		heap.Pop(&s.timers)
		t.fn()
	}
}

// --- timer heap ---

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
