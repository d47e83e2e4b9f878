package tenkai

// Entity is a sprite: a node that draws one sheet cell, can run frame
// animations and can carry child entities (an overlay, a held item).
type Entity struct {
	Node

	entities   Container[*Entity]
	animations map[string][]Frame
	anim       *runningAnimation
	sched      *Scheduler
}

// Mob is the name the engine uses for a movable entity. The two are
// interchangeable.
type Mob = Entity

// EntityConfig configures NewEntity. Zero values give the defaults noted.
type EntityConfig struct {
	Asset      Image
	TileWidth  int
	TileHeight int
	// Tile is the initial sheet cell. Nil draws nothing until an animation
	// sets one.
	Tile *Tile

	X, Y     float64
	Z        int
	Scale    float64 // 0 means 1
	Rotation float64
	Hidden   bool

	HotspotX, HotspotY float64

	// Scheduler runs the entity's animation timers. Nil uses DefaultScheduler.
	Scheduler *Scheduler
}

// NewEntity creates a visible, dirty entity.
func NewEntity(cfg EntityConfig) *Entity {
	e := &Entity{
		animations: make(map[string][]Frame),
		sched:      cfg.Scheduler,
	}
	if e.sched == nil {
		e.sched = DefaultScheduler()
	}
	e.init(placement{
		x: cfg.X, y: cfg.Y, z: cfg.Z,
		scale: cfg.Scale, rotation: cfg.Rotation, hidden: cfg.Hidden,
		hotspotX: cfg.HotspotX, hotspotY: cfg.HotspotY,
		asset: cfg.Asset, tileWidth: cfg.TileWidth, tileHeight: cfg.TileHeight,
		tile: cfg.Tile,
	})
	e.entities = newContainer[*Entity]("entity", e)
	return e
}

// NewMob is NewEntity under its other name.
func NewMob(cfg EntityConfig) *Mob { return NewEntity(cfg) }

// Scheduler returns the scheduler driving the entity's animations.
func (e *Entity) Scheduler() *Scheduler { return e.sched }

// Redraw marks the entity and all of its descendants dirty.
func (e *Entity) Redraw() {
	e.dirty = true
	e.entities.RedrawAll()
}

// Draw paints the entity and its children if it is dirty and visible, then
// clears the dirty flag.
func (e *Entity) Draw(s Surface) {
	if !e.dirty || !e.Visible {
		return
	}
	e.pushTransform(s)
	e.drawTile(s)
	e.entities.DrawAll(s)
	s.Restore()
	e.dirty = false
}

// --- Children ---

// Entities returns the entity's child container.
func (e *Entity) Entities() *Container[*Entity] { return &e.entities }

// AddEntity registers child under name and returns it.
func (e *Entity) AddEntity(name string, child *Entity) *Entity {
	if child == e {
		panic("tenkai: cannot add entity to itself")
	}
	return e.entities.Add(name, child)
}

// RemoveEntity removes the child registered under name.
func (e *Entity) RemoveEntity(name string) { e.entities.Remove(name) }

// EntityByName returns the child registered under name.
func (e *Entity) EntityByName(name string) (*Entity, error) { return e.entities.Get(name) }
