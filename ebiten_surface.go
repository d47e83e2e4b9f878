package tenkai

import (
	"fmt"
	"image"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenSurface implements Surface on an *ebiten.Image. Sheet regions are
// cut with SubImage once and kept in a bounded cache.
type EbitenSurface struct {
	// Target is the image drawn into. Swap it with Reset each frame.
	Target *ebiten.Image
	// Alpha multiplies the alpha of every draw.
	Alpha float32

	cur     ebiten.GeoM
	stack   []ebiten.GeoM
	regions *ristretto.Cache[uint64, *ebiten.Image]
	sheets  map[*ebiten.Image]uint64
}

// NewEbitenSurface creates a surface drawing into target.
func NewEbitenSurface(target *ebiten.Image) (*EbitenSurface, error) {
	regions, err := ristretto.NewCache(&ristretto.Config[uint64, *ebiten.Image]{
		NumCounters: 1 << 14,
		MaxCost:     1 << 12,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("region cache: %w", err)
	}
	return &EbitenSurface{
		Target:  target,
		Alpha:   1,
		regions: regions,
		sheets:  make(map[*ebiten.Image]uint64),
	}, nil
}

// Reset retargets the surface and clears the transform stack.
func (s *EbitenSurface) Reset(target *ebiten.Image) {
	s.Target = target
	s.cur.Reset()
	s.stack = s.stack[:0]
}

// Close releases the region cache.
func (s *EbitenSurface) Close() {
	s.regions.Close()
}

// Transform returns the current matrix.
func (s *EbitenSurface) Transform() ebiten.GeoM { return s.cur }

// Depth returns the number of saved transforms.
func (s *EbitenSurface) Depth() int { return len(s.stack) }

func (s *EbitenSurface) Save() {
	s.stack = append(s.stack, s.cur)
}

// Restore pops the last saved transform. An unmatched Restore is ignored.
func (s *EbitenSurface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	s.cur = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

func (s *EbitenSurface) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	s.apply(m)
}

func (s *EbitenSurface) Scale(sx, sy float64) {
	var m ebiten.GeoM
	m.Scale(sx, sy)
	s.apply(m)
}

func (s *EbitenSurface) Rotate(theta float64) {
	if theta == 0 {
		return
	}
	var m ebiten.GeoM
	m.Rotate(theta)
	s.apply(m)
}

// apply post-multiplies m onto the current matrix, so m acts in local space.
func (s *EbitenSurface) apply(m ebiten.GeoM) {
	m.Concat(s.cur)
	s.cur = m
}

func (s *EbitenSurface) DrawImage(img Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	if s.Target == nil || sw <= 0 || sh <= 0 {
		return
	}
	src := resolveImage(img)
	if src == nil {
		return
	}
	sub := s.region(src, image.Rect(int(sx), int(sy), int(sx+sw), int(sy+sh)))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dw/sw, dh/sh)
	op.GeoM.Translate(dx, dy)
	op.GeoM.Concat(s.cur)
	if s.Alpha != 1 {
		op.ColorScale.ScaleAlpha(s.Alpha)
	}
	s.Target.DrawImage(sub, op)
}

func (s *EbitenSurface) region(src *ebiten.Image, r image.Rectangle) *ebiten.Image {
	b := src.Bounds()
	r = r.Add(b.Min)
	if r == b {
		return src
	}
	id, ok := s.sheets[src]
	if !ok {
		id = uint64(len(s.sheets)) + 1
		s.sheets[src] = id
	}
	key, ok := regionKey(id, r)
	if !ok {
		return src.SubImage(r).(*ebiten.Image)
	}
	if sub, ok := s.regions.Get(key); ok {
		return sub
	}
	sub := src.SubImage(r).(*ebiten.Image)
	s.regions.Set(key, sub, 1)
	return sub
}

// regionKey packs a sheet id and a region into a cache key: 16 bits of id
// and 12 bits each of x, y, width and height. Regions that do not fit are
// not cached.
func regionKey(sheet uint64, r image.Rectangle) (uint64, bool) {
	const limit = 1 << 12
	w, h := r.Dx(), r.Dy()
	switch {
	case sheet == 0 || sheet >= 1<<16:
		return 0, false
	case r.Min.X < 0 || r.Min.Y < 0 || r.Min.X >= limit || r.Min.Y >= limit:
		return 0, false
	case w <= 0 || h <= 0 || w >= limit || h >= limit:
		return 0, false
	}
	return sheet<<48 | uint64(r.Min.X)<<36 | uint64(r.Min.Y)<<24 | uint64(w)<<12 | uint64(h), true
}

func resolveImage(img Image) *ebiten.Image {
	switch v := img.(type) {
	case *ebiten.Image:
		return v
	case *Asset:
		if v == nil {
			return nil
		}
		return v.Image
	default:
		return nil
	}
}
