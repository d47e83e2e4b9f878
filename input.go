package tenkai

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseEvent is the argument of the mousedown, mouseup and mousemove events.
type MouseEvent struct {
	// ScreenX and ScreenY are in screen pixels.
	ScreenX, ScreenY int
	// X and Y are in world units under the current viewport.
	X, Y   float64
	Button ebiten.MouseButton
}

// inputFrame is one update's worth of pointer and keyboard input.
type inputFrame struct {
	cursorX, cursorY int
	wheelX, wheelY   float64
	shift            bool
	pressed          []ebiten.MouseButton
	released         []ebiten.MouseButton
	keysUp           []ebiten.Key
}

var mouseButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// readInput fills in from the live ebiten input state, reusing its slices.
func readInput(in *inputFrame) {
	in.cursorX, in.cursorY = ebiten.CursorPosition()
	in.wheelX, in.wheelY = ebiten.Wheel()
	in.shift = ebiten.IsKeyPressed(ebiten.KeyShift)
	in.pressed = in.pressed[:0]
	in.released = in.released[:0]
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			in.pressed = append(in.pressed, b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			in.released = append(in.released, b)
		}
	}
	in.keysUp = inpututil.AppendJustReleasedKeys(in.keysUp[:0])
}

// --- Input processing ---

// processInput turns one frame of input into viewport changes and events.
func (e *Engine) processInput(in *inputFrame) {
	if in.wheelX != 0 || in.wheelY != 0 {
		// Wheel offsets are positive scrolling up; scroll deltas follow the
		// DOM convention of positive scrolling down.
		step := e.Config.WheelStep
		if e.Viewport.PanZoom(-in.wheelX*step, -in.wheelY*step, in.shift) {
			e.Redraw()
		}
		e.Viewport.SetMouse(float64(in.cursorX), float64(in.cursorY))
	}

	if !e.cursorSeen || in.cursorX != e.cursorX || in.cursorY != e.cursorY {
		e.cursorSeen = true
		e.cursorX, e.cursorY = in.cursorX, in.cursorY
		e.Viewport.SetMouse(float64(in.cursorX), float64(in.cursorY))
		e.triggerMouse(EventMouseMove, in, ebiten.MouseButtonLeft)
	}
	for _, b := range in.pressed {
		e.triggerMouse(EventMouseDown, in, b)
	}
	for _, b := range in.released {
		e.triggerMouse(EventMouseUp, in, b)
	}

	for _, k := range in.keysUp {
		if e.KeyUp != nil {
			e.KeyUp(k)
		}
		_ = e.Events.Trigger(EventKeyUp, e, k)
	}
}

func (e *Engine) triggerMouse(name string, in *inputFrame, b ebiten.MouseButton) {
	wx, wy := e.Viewport.ScreenToWorld(float64(in.cursorX), float64(in.cursorY))
	_ = e.Events.Trigger(name, e, MouseEvent{
		ScreenX: in.cursorX,
		ScreenY: in.cursorY,
		X:       wx,
		Y:       wy,
		Button:  b,
	})
}
