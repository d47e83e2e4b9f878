package tenkai

import (
	"errors"
	"fmt"
	"image"
)

// Image is a raster resource a Surface can copy regions from.
// *ebiten.Image and *Asset both satisfy it.
type Image interface {
	Bounds() image.Rectangle
}

// Surface is a 2D drawing target with a scoped transform stack, modelled on
// a canvas context. Transforms compose onto the current matrix; Save pushes
// it and Restore pops it.
type Surface interface {
	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(theta float64)
	// DrawImage copies the source rectangle (sx, sy, sw, sh) of img into the
	// destination rectangle (dx, dy, dw, dh) under the current transform.
	DrawImage(img Image, sx, sy, sw, sh, dx, dy, dw, dh float64)
}

// Redrawer is anything that can be marked for repaint. Entities, scenes and
// the Engine all are; containers report to their owner through it.
type Redrawer interface {
	Redraw()
}

// Tile addresses a cell of a sprite sheet by column and row. A nil *Tile
// means "draw nothing".
type Tile struct {
	Col, Row int
}

// TileAt returns a pointer to the tile at (col, row).
func TileAt(col, row int) *Tile {
	return &Tile{Col: col, Row: row}
}

func (t *Tile) clone() *Tile {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Perspective selects how a Scene interleaves entities with its tile grid.
type Perspective uint8

const (
	// PerspectiveOverhead draws the whole grid of a layer, then the layer's
	// entities on top.
	PerspectiveOverhead Perspective = iota
	// PerspectiveAngle draws each grid row followed by the entities whose
	// feet stand on that row, giving a 3/4 view.
	PerspectiveAngle
)

func (p Perspective) String() string {
	switch p {
	case PerspectiveOverhead:
		return "overhead"
	case PerspectiveAngle:
		return "angle"
	default:
		return fmt.Sprintf("Perspective(%d)", uint8(p))
	}
}

// StopStatus tells an OnStop callback why an animation ended.
type StopStatus uint8

const (
	StopCompleted StopStatus = iota + 1 // ran out of frames/loops or hit a boundary
	StopStopped                         // stopped by the caller
	StopReplaced                        // another animation was started
)

func (s StopStatus) String() string {
	switch s {
	case StopCompleted:
		return "completed"
	case StopStopped:
		return "stopped"
	case StopReplaced:
		return "replaced"
	default:
		return fmt.Sprintf("StopStatus(%d)", uint8(s))
	}
}

// --- Errors ---

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("tenkai: not found")
	// ErrNoSuchEvent is matched by every *NoSuchEventError.
	ErrNoSuchEvent = errors.New("tenkai: no such event")
	// ErrInvalidConfig is returned by constructors and loaders given an
	// unusable configuration.
	ErrInvalidConfig = errors.New("tenkai: invalid config")
)

// NotFoundError reports a lookup by name that matched nothing.
type NotFoundError struct {
	Kind string // "entity", "scene", "animation", "asset", "audio"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tenkai: %s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NoSuchEventError reports use of an event name that was never defined.
type NoSuchEventError struct {
	Name string
}

func (e *NoSuchEventError) Error() string {
	return fmt.Sprintf("tenkai: no such event %q", e.Name)
}

func (e *NoSuchEventError) Is(target error) bool { return target == ErrNoSuchEvent }
