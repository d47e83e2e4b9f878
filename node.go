package tenkai

// Node holds the state shared by every drawable in the tree: placement,
// sprite-sheet addressing, the dirty flag and the link to the container
// holding it. Entity and Scene embed it.
type Node struct {
	// X and Y are the position relative to the parent.
	X, Y float64
	// Scale is applied uniformly on both axes (1.0 = original size).
	Scale float64
	// Rotation in radians, clockwise.
	Rotation float64
	// Visible controls whether Draw does anything.
	Visible bool
	// HotspotX and HotspotY locate the node's feet relative to its origin.
	// The angle perspective uses HotspotY to pick the grid row the node
	// stands on.
	HotspotX, HotspotY float64

	// Asset is the sprite sheet tiles are cut from. It is shared, not owned.
	Asset Image
	// TileWidth and TileHeight are the size of one sheet cell in pixels.
	TileWidth, TileHeight int
	// Tile is the sheet cell drawn at the node's origin. Nil draws nothing.
	Tile *Tile

	z     int
	dirty bool

	name     string
	registry registry
	parent   Redrawer
}

func (n *Node) node() *Node { return n }

// Name returns the name the node is registered under, or "" when detached.
func (n *Node) Name() string { return n.name }

// Parent returns the entity, scene or engine whose container holds the node.
func (n *Node) Parent() Redrawer { return n.parent }

// Z returns the node's layer within its parent.
func (n *Node) Z() int { return n.z }

// SetZ moves the node to layer z. The owning container re-sorts lazily.
func (n *Node) SetZ(z int) {
	if n.z == z {
		return
	}
	n.z = z
	if n.registry != nil {
		n.registry.invalidate()
	}
}

// Dirty reports whether the next Draw will repaint the node.
func (n *Node) Dirty() bool { return n.dirty }

// Bounds returns the node's rectangle in parent space.
func (n *Node) Bounds() Rect {
	return Rect{
		X1: n.X,
		Y1: n.Y,
		X2: n.X + float64(n.TileWidth)*n.Scale,
		Y2: n.Y + float64(n.TileHeight)*n.Scale,
	}
}

func (n *Node) detach() {
	n.registry = nil
	n.parent = nil
}

// pushTransform saves the surface and applies the node's local transform.
// The caller must Restore.
func (n *Node) pushTransform(s Surface) {
	s.Save()
	s.Translate(n.X, n.Y)
	s.Scale(n.Scale, n.Scale)
	s.Rotate(n.Rotation)
}

// drawTile copies the current sheet cell to the origin.
func (n *Node) drawTile(s Surface) {
	if n.Tile == nil || n.Asset == nil {
		return
	}
	tw, th := float64(n.TileWidth), float64(n.TileHeight)
	s.DrawImage(n.Asset, float64(n.Tile.Col)*tw, float64(n.Tile.Row)*th, tw, th, 0, 0, tw, th)
}

// placement is the common subset of the node configs.
type placement struct {
	x, y       float64
	z          int
	scale      float64
	rotation   float64
	hidden     bool
	hotspotX   float64
	hotspotY   float64
	asset      Image
	tileWidth  int
	tileHeight int
	tile       *Tile
}

func (n *Node) init(p placement) {
	n.X, n.Y = p.x, p.y
	n.z = p.z
	n.Scale = p.scale
	if n.Scale == 0 {
		n.Scale = 1
	}
	n.Rotation = p.rotation
	n.Visible = !p.hidden
	n.HotspotX, n.HotspotY = p.hotspotX, p.hotspotY
	n.Asset = p.asset
	n.TileWidth, n.TileHeight = p.tileWidth, p.tileHeight
	n.Tile = p.tile.clone()
	n.dirty = true
}
