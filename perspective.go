package tenkai

import "math"

// drawLayer composites everything at z: the grid and entities according to
// the scene's perspective, then the child scenes at z.
func (s *Scene) drawLayer(surf Surface, z int) {
	switch s.Perspective {
	case PerspectiveAngle:
		s.drawAngle(surf, z)
	default:
		s.drawOverhead(surf, z)
	}
	s.scenes.DrawLayer(surf, z)
}

// drawOverhead draws the full grid, then the entities on top.
func (s *Scene) drawOverhead(surf Surface, z int) {
	for r, row := range s.layers[z] {
		s.drawRow(surf, r, row)
	}
	s.entities.DrawLayer(surf, z)
}

// drawAngle draws each grid row followed by the entities whose feet
// (Y + HotspotY) fall on that row. Entities above the grid draw before it and
// entities below it draw after; bucket members keep container order.
func (s *Scene) drawAngle(surf Surface, z int) {
	layer := s.layers[z]
	ents := s.entities.At(z)
	if len(layer) == 0 || s.TileHeight <= 0 {
		for r, row := range layer {
			s.drawRow(surf, r, row)
		}
		for _, e := range ents {
			e.Draw(surf)
		}
		return
	}

	th := float64(s.TileHeight)
	var above, below []*Entity
	buckets := make(map[int][]*Entity, len(ents))
	for _, e := range ents {
		row := int(math.Floor((e.Y + e.HotspotY) / th))
		switch {
		case row < 0:
			above = append(above, e)
		case row >= len(layer):
			below = append(below, e)
		default:
			buckets[row] = append(buckets[row], e)
		}
	}

	for _, e := range above {
		e.Draw(surf)
	}
	for r, row := range layer {
		s.drawRow(surf, r, row)
		for _, e := range buckets[r] {
			e.Draw(surf)
		}
	}
	for _, e := range below {
		e.Draw(surf)
	}
}

// drawRow blits the non-nil cells of grid row r, left to right.
func (s *Scene) drawRow(surf Surface, r int, row []*Tile) {
	if s.Asset == nil {
		return
	}
	tw, th := float64(s.TileWidth), float64(s.TileHeight)
	y := float64(r) * th
	for c, t := range row {
		if t == nil {
			continue
		}
		surf.DrawImage(s.Asset, float64(t.Col)*tw, float64(t.Row)*th, tw, th, float64(c)*tw, y, tw, th)
	}
}
