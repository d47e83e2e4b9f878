package tenkai

import "github.com/hajimehoshi/ebiten/v2"

// Injected input replaces live input: each queued frame is consumed by one
// Update, and while the queue is non-empty the real mouse and keyboard are
// not read. Screen coordinates are used, converted to world units through the
// viewport exactly like real input.

// InjectMove queues a pointer move to (x, y).
func (e *Engine) InjectMove(x, y int) {
	e.injectQueue = append(e.injectQueue, inputFrame{cursorX: x, cursorY: y})
}

// InjectPress queues a button press at (x, y).
func (e *Engine) InjectPress(x, y int, b ebiten.MouseButton) {
	e.injectQueue = append(e.injectQueue, inputFrame{
		cursorX: x, cursorY: y,
		pressed: []ebiten.MouseButton{b},
	})
}

// InjectRelease queues a button release at (x, y).
func (e *Engine) InjectRelease(x, y int, b ebiten.MouseButton) {
	e.injectQueue = append(e.injectQueue, inputFrame{
		cursorX: x, cursorY: y,
		released: []ebiten.MouseButton{b},
	})
}

// InjectClick queues a press followed by a release. Consumes two updates.
func (e *Engine) InjectClick(x, y int, b ebiten.MouseButton) {
	e.InjectPress(x, y, b)
	e.InjectRelease(x, y, b)
}

// InjectWheel queues a wheel turn at the last pointer position, holding
// shift when zoom is set.
func (e *Engine) InjectWheel(dx, dy float64, zoom bool) {
	x, y := e.lastInjectedCursor()
	e.injectQueue = append(e.injectQueue, inputFrame{
		cursorX: x, cursorY: y,
		wheelX: dx, wheelY: dy,
		shift: zoom,
	})
}

// InjectKeyUp queues the release of k.
func (e *Engine) InjectKeyUp(k ebiten.Key) {
	x, y := e.lastInjectedCursor()
	e.injectQueue = append(e.injectQueue, inputFrame{
		cursorX: x, cursorY: y,
		keysUp: []ebiten.Key{k},
	})
}

func (e *Engine) lastInjectedCursor() (int, int) {
	if n := len(e.injectQueue); n > 0 {
		last := e.injectQueue[n-1]
		return last.cursorX, last.cursorY
	}
	return e.cursorX, e.cursorY
}

// nextInput returns the frame to process this update: the oldest injected
// frame if any, otherwise live input.
func (e *Engine) nextInput() *inputFrame {
	if len(e.injectQueue) > 0 {
		e.injected = e.injectQueue[0]
		copy(e.injectQueue, e.injectQueue[1:])
		e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]
		return &e.injected
	}
	readInput(&e.live)
	return &e.live
}
