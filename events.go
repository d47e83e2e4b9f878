package tenkai

import "slices"

// Events is a registry of named events. Only defined names can be listened
// to or triggered. Handlers run on a later scheduler update, never inside
// Trigger.
type Events struct {
	sched    *Scheduler
	handlers map[string][]listener
	nextID   uint64
}

type listener struct {
	id uint64
	fn func(args ...any)
}

// Handle identifies a registered handler. Its Remove method unregisters it.
type Handle struct {
	events *Events
	name   string
	id     uint64
}

// Remove unregisters the handler. Removing twice does nothing.
func (h Handle) Remove() {
	if h.events != nil {
		_ = h.events.Off(h)
	}
}

// NewEvents creates a registry dispatching through s (DefaultScheduler when
// nil) with names already defined.
func NewEvents(s *Scheduler, names ...string) *Events {
	if s == nil {
		s = DefaultScheduler()
	}
	ev := &Events{sched: s, handlers: make(map[string][]listener)}
	ev.Define(names...)
	return ev
}

// Define declares event names, dropping any handlers already registered for
// them.
func (ev *Events) Define(names ...string) {
	for _, name := range names {
		ev.handlers[name] = nil
	}
}

// Undefine forgets event names and their handlers.
func (ev *Events) Undefine(names ...string) {
	for _, name := range names {
		delete(ev.handlers, name)
	}
}

// Defined reports whether name has been declared.
func (ev *Events) Defined(name string) bool {
	_, ok := ev.handlers[name]
	return ok
}

// On registers fn for name.
func (ev *Events) On(name string, fn func(args ...any)) (Handle, error) {
	hs, ok := ev.handlers[name]
	if !ok {
		return Handle{}, &NoSuchEventError{Name: name}
	}
	ev.nextID++
	ev.handlers[name] = append(hs, listener{id: ev.nextID, fn: fn})
	return Handle{events: ev, name: name, id: ev.nextID}, nil
}

// Off unregisters the handler identified by h.
func (ev *Events) Off(h Handle) error {
	hs, ok := ev.handlers[h.name]
	if !ok {
		return &NoSuchEventError{Name: h.name}
	}
	ev.handlers[h.name] = slices.DeleteFunc(hs, func(l listener) bool { return l.id == h.id })
	return nil
}

// Trigger queues every handler registered for name at this moment, each
// called with args on the next scheduler update.
func (ev *Events) Trigger(name string, args ...any) error {
	hs, ok := ev.handlers[name]
	if !ok {
		return &NoSuchEventError{Name: name}
	}
	for _, l := range hs {
		fn := l.fn
		ev.sched.Defer(func() { fn(args...) })
	}
	return nil
}

// Listeners returns the number of handlers registered for name.
func (ev *Events) Listeners(name string) (int, error) {
	hs, ok := ev.handlers[name]
	if !ok {
		return 0, &NoSuchEventError{Name: name}
	}
	return len(hs), nil
}
