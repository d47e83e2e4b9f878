package tenkai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridScene returns a scene with a two-row grid at z drawing from "tiles".
func gridScene(p Perspective, z int) *Scene {
	s := NewScene(SceneConfig{
		Asset:       sheet("tiles"),
		TileWidth:   32,
		TileHeight:  32,
		Perspective: p,
	})
	s.SetLayer(z, Layer{
		{TileAt(0, 0), TileAt(1, 0)},
		{TileAt(0, 1), nil},
	})
	return s
}

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene(SceneConfig{})
	assert.Equal(t, PerspectiveOverhead, s.Perspective)
	assert.Equal(t, 1.0, s.Scale)
	assert.True(t, s.Visible)
	assert.True(t, s.Dirty())
	assert.Empty(t, s.LayerZs())
}

func TestSceneOverheadDrawsGridThenEntitiesThenScenes(t *testing.T) {
	sched := NewScheduler()
	s := gridScene(PerspectiveOverhead, 0)
	s.AddEntity("hero", testEntity("hero", 0, sched))
	child := NewScene(SceneConfig{Asset: sheet("child"), TileWidth: 8, TileHeight: 8})
	child.SetTile(0, 0, 0, TileAt(0, 0))
	s.AddScene("child", child)

	surf := &recordingSurface{}
	s.Draw(surf)
	assert.Equal(t, []string{"tiles", "tiles", "tiles", "hero", "child"}, surf.drawn())
	assert.Equal(t, 0, surf.depth)

	// Grid cells land at column/row offsets.
	assert.Equal(t, drawCall{"tiles", 32, 0, 32, 32, 32, 0, 32, 32}, surf.draws[1])
	assert.Equal(t, drawCall{"tiles", 0, 32, 32, 32, 0, 32, 32, 32}, surf.draws[2])
}

func TestSceneZLayersAscending(t *testing.T) {
	sched := NewScheduler()
	s := gridScene(PerspectiveOverhead, 1)
	s.AddEntity("top", testEntity("top", 5, sched))
	s.AddEntity("under", testEntity("under", -1, sched))
	s.AddEntity("mid", testEntity("mid", 1, sched))

	surf := &recordingSurface{}
	s.Draw(surf)
	assert.Equal(t, []string{"under", "tiles", "tiles", "tiles", "mid", "top"}, surf.drawn())
}

func TestSceneAngleInterleavesByFeetRow(t *testing.T) {
	sched := NewScheduler()
	s := gridScene(PerspectiveAngle, 0)
	e := testEntity("hero", 0, sched)
	e.Y = 2
	e.HotspotY = 5
	s.AddEntity("hero", e)

	surf := &recordingSurface{}
	s.Draw(surf)
	// floor((2+5)/32) = 0: after row 0's two tiles, before row 1.
	assert.Equal(t, []string{"tiles", "tiles", "hero", "tiles"}, surf.drawn())
}

func TestSceneAngleRowOneAndTies(t *testing.T) {
	sched := NewScheduler()
	s := gridScene(PerspectiveAngle, 0)
	a := testEntity("a", 0, sched)
	a.Y = 40
	b := testEntity("b", 0, sched)
	b.Y = 33
	s.AddEntity("a", a)
	s.AddEntity("b", b)

	surf := &recordingSurface{}
	s.Draw(surf)
	assert.Equal(t, []string{"tiles", "tiles", "tiles", "a", "b"}, surf.drawn())
}

func TestSceneAngleOutsideGrid(t *testing.T) {
	sched := NewScheduler()
	s := gridScene(PerspectiveAngle, 0)
	above := testEntity("above", 0, sched)
	above.Y = -40
	below := testEntity("below", 0, sched)
	below.Y = 500
	s.AddEntity("below", below)
	s.AddEntity("above", above)

	surf := &recordingSurface{}
	s.Draw(surf)
	assert.Equal(t, []string{"above", "tiles", "tiles", "tiles", "below"}, surf.drawn())
}

func TestSceneAngleWithoutGridStillDrawsEntities(t *testing.T) {
	sched := NewScheduler()
	s := NewScene(SceneConfig{TileWidth: 32, TileHeight: 32, Perspective: PerspectiveAngle})
	s.AddEntity("a", testEntity("a", 3, sched))
	s.AddEntity("b", testEntity("b", 3, sched))

	surf := &recordingSurface{}
	s.Draw(surf)
	assert.Equal(t, []string{"a", "b"}, surf.drawn())
}

func TestSceneDrawGate(t *testing.T) {
	s := gridScene(PerspectiveOverhead, 0)
	surf := &recordingSurface{}
	s.Draw(surf)
	require.NotEmpty(t, surf.ops)

	surf.reset()
	s.Draw(surf)
	assert.Empty(t, surf.ops)

	s.Redraw()
	s.Visible = false
	s.Draw(surf)
	assert.Empty(t, surf.ops)
}

func TestSceneRedrawMarksChildren(t *testing.T) {
	sched := NewScheduler()
	s := gridScene(PerspectiveOverhead, 0)
	e := s.AddEntity("hero", testEntity("hero", 0, sched))
	child := NewScene(SceneConfig{})
	s.AddScene("child", child)
	s.Draw(&recordingSurface{})
	require.False(t, e.Dirty())
	require.False(t, child.Dirty())

	s.Redraw()
	assert.True(t, e.Dirty())
	assert.True(t, child.Dirty())
}

func TestSceneLayerEditing(t *testing.T) {
	s := NewScene(SceneConfig{Asset: sheet("tiles"), TileWidth: 16, TileHeight: 16})
	s.Draw(&recordingSurface{})

	s.SetTile(2, 3, 1, TileAt(4, 4))
	assert.True(t, s.Dirty())
	l := s.Layer(2)
	require.Equal(t, 2, l.Rows())
	require.Len(t, l[1], 4)
	assert.Equal(t, Tile{4, 4}, *l[1][3])
	assert.Nil(t, l[0])
	assert.Equal(t, []int{2}, s.LayerZs())

	s.SetTile(2, 3, 1, nil)
	assert.Nil(t, s.Layer(2)[1][3])

	s.Draw(&recordingSurface{})
	s.RemoveLayer(2)
	assert.True(t, s.Dirty())
	assert.Nil(t, s.Layer(2))
	assert.Panics(t, func() { s.SetTile(0, -1, 0, nil) })
}

func TestNewLayer(t *testing.T) {
	l := NewLayer(3, 2)
	require.Equal(t, 2, l.Rows())
	assert.Len(t, l[0], 3)
}

func TestSceneTransform(t *testing.T) {
	s := NewScene(SceneConfig{X: 4, Y: 8, Scale: 3})
	surf := &recordingSurface{}
	s.Draw(surf)
	assert.Equal(t, []string{"save", "translate(4,8)", "scale(3,3)", "rotate(0)", "restore"}, surf.ops)
}

// --- TiledScene ---

func TestTiledSceneDefaults(t *testing.T) {
	ts := NewTiledScene(SceneConfig{})
	assert.Equal(t, 32, ts.TileWidth)
	assert.Equal(t, 32, ts.TileHeight)

	e := testEntity("e", 0, NewScheduler())
	ts.AddEntity("e", e)
	assert.Equal(t, Redrawer(ts), e.Parent())

	custom := NewTiledScene(SceneConfig{TileWidth: 16})
	assert.Equal(t, 16, custom.TileWidth)
	assert.Equal(t, 32, custom.TileHeight)
}

func TestSceneHoldsSceneVariants(t *testing.T) {
	root := NewScene(SceneConfig{})
	bg, err := NewBackgroundScene(BackgroundConfig{Width: 10, Height: 10})
	require.NoError(t, err)

	root.AddScene("tiled", NewTiledScene(SceneConfig{}))
	root.AddScene("bg", bg)
	got, err := root.SceneByName("bg")
	require.NoError(t, err)
	assert.Same(t, bg, got.(*BackgroundScene))

	_, err = root.SceneByName("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Panics(t, func() { root.AddScene("self", root) })
}

// --- BackgroundScene ---

func TestBackgroundSceneNeedsAssetOrSize(t *testing.T) {
	_, err := NewBackgroundScene(BackgroundConfig{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBackgroundSceneDefaultsToAssetSize(t *testing.T) {
	bg, err := NewBackgroundScene(BackgroundConfig{Asset: &fakeImage{name: "sky", w: 800, h: 600}})
	require.NoError(t, err)
	assert.Equal(t, 800.0, bg.Width)
	assert.Equal(t, 600.0, bg.Height)
}

func TestBackgroundSceneDraw(t *testing.T) {
	bg, err := NewBackgroundScene(BackgroundConfig{
		Asset:   &fakeImage{name: "sky", w: 800, h: 600},
		OffsetX: 100,
		OffsetY: 50,
		Width:   320,
		Height:  240,
		X:       7,
	})
	require.NoError(t, err)
	bg.AddEntity("cloud", testEntity("cloud", 0, NewScheduler()))

	surf := &recordingSurface{}
	bg.Draw(surf)
	assert.Equal(t, []string{"sky", "cloud"}, surf.drawn())
	assert.Equal(t, drawCall{"sky", 100, 50, 320, 240, 0, 0, 320, 240}, surf.draws[0])
	assert.Equal(t, "translate(7,0)", surf.ops[1])
	assert.Equal(t, "restore", surf.ops[len(surf.ops)-1])

	surf.reset()
	bg.Draw(surf)
	assert.Empty(t, surf.ops)
}
