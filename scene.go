package tenkai

import (
	"fmt"
	"slices"
)

// SceneNode is anything a scenes container holds: *Scene, *TiledScene and
// *BackgroundScene.
type SceneNode interface {
	Child
	Entities() *Container[*Entity]
	Scenes() *Container[SceneNode]
}

// Layer is a row-major grid of sheet cells. Nil cells are empty.
type Layer [][]*Tile

// NewLayer returns an empty cols x rows grid.
func NewLayer(cols, rows int) Layer {
	l := make(Layer, rows)
	for r := range l {
		l[r] = make([]*Tile, cols)
	}
	return l
}

// Rows returns the number of rows.
func (l Layer) Rows() int { return len(l) }

// Scene composites tile layers, child scenes and entities. Every z value in
// use (by a layer, an entity or a child scene) is drawn in ascending order;
// within a z the Perspective decides how entities meet the grid.
type Scene struct {
	Node

	Perspective Perspective

	layers   map[int]Layer
	scenes   Container[SceneNode]
	entities Container[*Entity]
}

// SceneConfig configures NewScene. Zero values give the defaults noted.
type SceneConfig struct {
	// Asset is the tile sheet grid cells are cut from.
	Asset      Image
	TileWidth  int
	TileHeight int

	X, Y     float64
	Z        int
	Scale    float64 // 0 means 1
	Rotation float64
	Hidden   bool

	Perspective Perspective
	// Layers seeds the tile grids by z.
	Layers map[int]Layer
}

// NewScene creates a visible, dirty scene.
func NewScene(cfg SceneConfig) *Scene {
	s := &Scene{}
	s.init(cfg, s)
	return s
}

// init sets up s; owner is the value the child containers report to, which
// is the outer type when Scene is embedded.
func (s *Scene) init(cfg SceneConfig, owner Redrawer) {
	s.Node.init(placement{
		x: cfg.X, y: cfg.Y, z: cfg.Z,
		scale: cfg.Scale, rotation: cfg.Rotation, hidden: cfg.Hidden,
		asset: cfg.Asset, tileWidth: cfg.TileWidth, tileHeight: cfg.TileHeight,
	})
	s.Perspective = cfg.Perspective
	s.layers = make(map[int]Layer, len(cfg.Layers))
	for z, l := range cfg.Layers {
		s.layers[z] = l
	}
	s.scenes = newContainer[SceneNode]("scene", owner)
	s.entities = newContainer[*Entity]("entity", owner)
}

// Redraw marks the scene, its child scenes and its entities dirty.
func (s *Scene) Redraw() {
	s.dirty = true
	s.scenes.RedrawAll()
	s.entities.RedrawAll()
}

// Draw composites the scene if it is dirty and visible, then clears the
// dirty flag.
func (s *Scene) Draw(surf Surface) {
	if !s.dirty || !s.Visible {
		return
	}
	s.pushTransform(surf)
	for _, z := range s.zValues() {
		s.drawLayer(surf, z)
	}
	surf.Restore()
	s.dirty = false
}

// zValues returns the union of layer, scene and entity z values, ascending.
func (s *Scene) zValues() []int {
	zs := make([]int, 0, len(s.layers))
	for z := range s.layers {
		zs = append(zs, z)
	}
	zs = append(zs, s.scenes.Layers()...)
	zs = append(zs, s.entities.Layers()...)
	slices.Sort(zs)
	return slices.Compact(zs)
}

// --- Layers ---

// SetLayer replaces the grid at z.
func (s *Scene) SetLayer(z int, l Layer) {
	s.layers[z] = l
	s.Redraw()
}

// Layer returns the grid at z, or nil.
func (s *Scene) Layer(z int) Layer { return s.layers[z] }

// RemoveLayer drops the grid at z.
func (s *Scene) RemoveLayer(z int) {
	if _, ok := s.layers[z]; !ok {
		return
	}
	delete(s.layers, z)
	s.Redraw()
}

// LayerZs returns the z values that have a grid, ascending.
func (s *Scene) LayerZs() []int {
	zs := make([]int, 0, len(s.layers))
	for z := range s.layers {
		zs = append(zs, z)
	}
	slices.Sort(zs)
	return zs
}

// SetTile puts tile in the cell (col, row) of the grid at z, growing the
// grid as needed. A nil tile clears the cell.
func (s *Scene) SetTile(z, col, row int, tile *Tile) {
	if col < 0 || row < 0 {
		panic(fmt.Sprintf("tenkai: tile cell (%d, %d) out of range", col, row))
	}
	l := s.layers[z]
	for len(l) <= row {
		l = append(l, nil)
	}
	if len(l[row]) <= col {
		l[row] = append(l[row], make([]*Tile, col+1-len(l[row]))...)
	}
	l[row][col] = tile.clone()
	s.layers[z] = l
	s.Redraw()
}

// --- Children ---

// Scenes returns the scene's child-scene container.
func (s *Scene) Scenes() *Container[SceneNode] { return &s.scenes }

// Entities returns the scene's entity container.
func (s *Scene) Entities() *Container[*Entity] { return &s.entities }

// AddScene registers child under name and returns it.
func (s *Scene) AddScene(name string, child SceneNode) SceneNode {
	if !isNil(child) && child.node() == &s.Node {
		panic("tenkai: cannot add scene to itself")
	}
	return s.scenes.Add(name, child)
}

// RemoveScene removes the child scene registered under name.
func (s *Scene) RemoveScene(name string) { s.scenes.Remove(name) }

// SceneByName returns the child scene registered under name.
func (s *Scene) SceneByName(name string) (SceneNode, error) { return s.scenes.Get(name) }

// AddEntity registers e under name and returns it.
func (s *Scene) AddEntity(name string, e *Entity) *Entity { return s.entities.Add(name, e) }

// RemoveEntity removes the entity registered under name.
func (s *Scene) RemoveEntity(name string) { s.entities.Remove(name) }

// EntityByName returns the entity registered under name.
func (s *Scene) EntityByName(name string) (*Entity, error) { return s.entities.Get(name) }

// --- TiledScene ---

// TiledScene is a Scene whose grid cells default to 32x32.
type TiledScene struct {
	Scene
}

// Default grid cell size of a TiledScene.
const (
	DefaultTileWidth  = 32
	DefaultTileHeight = 32
)

// NewTiledScene creates a TiledScene, filling in the default cell size.
func NewTiledScene(cfg SceneConfig) *TiledScene {
	if cfg.TileWidth == 0 {
		cfg.TileWidth = DefaultTileWidth
	}
	if cfg.TileHeight == 0 {
		cfg.TileHeight = DefaultTileHeight
	}
	ts := &TiledScene{}
	ts.init(cfg, ts)
	return ts
}

// --- BackgroundScene ---

// BackgroundScene draws a single region of its asset (no grid) followed by
// its entities and child scenes.
type BackgroundScene struct {
	Scene

	// OffsetX and OffsetY locate the region within the asset.
	OffsetX, OffsetY float64
	// Width and Height are the region size, drawn at 1:1.
	Width, Height float64
}

// BackgroundConfig configures NewBackgroundScene.
type BackgroundConfig struct {
	Asset            Image
	OffsetX, OffsetY float64
	// Width and Height default to the asset size.
	Width, Height float64

	X, Y     float64
	Z        int
	Scale    float64 // 0 means 1
	Rotation float64
	Hidden   bool
}

// NewBackgroundScene creates a BackgroundScene. With neither an asset nor an
// explicit size it returns ErrInvalidConfig.
func NewBackgroundScene(cfg BackgroundConfig) (*BackgroundScene, error) {
	w, h := cfg.Width, cfg.Height
	if cfg.Asset != nil {
		b := cfg.Asset.Bounds()
		if w == 0 {
			w = float64(b.Dx())
		}
		if h == 0 {
			h = float64(b.Dy())
		}
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: background needs an asset or a size", ErrInvalidConfig)
	}

	bg := &BackgroundScene{
		OffsetX: cfg.OffsetX,
		OffsetY: cfg.OffsetY,
		Width:   w,
		Height:  h,
	}
	bg.init(SceneConfig{
		Asset: cfg.Asset,
		X:     cfg.X, Y: cfg.Y, Z: cfg.Z,
		Scale: cfg.Scale, Rotation: cfg.Rotation, Hidden: cfg.Hidden,
	}, bg)
	return bg, nil
}

// Draw blits the background region, then the entities and child scenes in z
// order, all inside the scene's transform.
func (b *BackgroundScene) Draw(surf Surface) {
	if !b.dirty || !b.Visible {
		return
	}
	b.pushTransform(surf)
	if b.Asset != nil {
		surf.DrawImage(b.Asset, b.OffsetX, b.OffsetY, b.Width, b.Height, 0, 0, b.Width, b.Height)
	}
	b.entities.DrawAll(surf)
	b.scenes.DrawAll(surf)
	surf.Restore()
	b.dirty = false
}
