package tenkai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Lookup ---

func TestContainerGetMissing(t *testing.T) {
	var c Container[*Entity]
	_, err := c.Get("ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "ghost")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.Name)
}

func TestContainerAddGetRemove(t *testing.T) {
	s := NewScheduler()
	parent := testEntity("parent", 0, s)
	child := testEntity("child", 0, s)

	got := parent.AddEntity("c", child)
	assert.Same(t, child, got)

	found, err := parent.EntityByName("c")
	require.NoError(t, err)
	assert.Same(t, child, found)
	assert.Equal(t, "c", child.Name())
	assert.Equal(t, Redrawer(parent), child.Parent())

	parent.RemoveEntity("c")
	_, err = parent.EntityByName("c")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, child.Parent())
	assert.Equal(t, 0, parent.Entities().Len())
}

func TestContainerAddOverwritesSameName(t *testing.T) {
	s := NewScheduler()
	parent := testEntity("parent", 0, s)
	a := testEntity("a", 0, s)
	b := testEntity("b", 0, s)

	parent.AddEntity("slot", a)
	parent.AddEntity("slot", b)

	got, err := parent.EntityByName("slot")
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.Equal(t, 1, parent.Entities().Len())
	assert.Nil(t, a.Parent())
}

func TestContainerRemoveAbsentIsNoop(t *testing.T) {
	parent := testEntity("parent", 0, NewScheduler())
	parent.Draw(&recordingSurface{})
	require.False(t, parent.Dirty())

	parent.RemoveEntity("nothing")
	assert.False(t, parent.Dirty())
}

func TestContainerRemoveRedrawsOwner(t *testing.T) {
	s := NewScheduler()
	parent := testEntity("parent", 0, s)
	parent.AddEntity("c", testEntity("child", 0, s))
	parent.Draw(&recordingSurface{})
	require.False(t, parent.Dirty())

	parent.RemoveEntity("c")
	assert.True(t, parent.Dirty())
}

func TestContainerMustGetPanics(t *testing.T) {
	var c Container[*Entity]
	assert.Panics(t, func() { c.MustGet("missing") })
}

// --- Re-parenting ---

func TestContainerAddReparents(t *testing.T) {
	s := NewScheduler()
	a := NewScene(SceneConfig{})
	b := NewScene(SceneConfig{})
	e := testEntity("e", 0, s)

	a.AddEntity("hero", e)
	b.AddEntity("player", e)

	assert.False(t, a.Entities().Has("hero"))
	assert.True(t, b.Entities().Has("player"))
	assert.Equal(t, Redrawer(b), e.Parent())
	assert.Equal(t, "player", e.Name())
}

func TestContainerAddRenamesWithinSameContainer(t *testing.T) {
	s := NewScheduler()
	parent := testEntity("parent", 0, s)
	e := testEntity("e", 0, s)

	parent.AddEntity("old", e)
	parent.AddEntity("new", e)

	assert.Equal(t, []string{"new"}, parent.Entities().Names())
	assert.Equal(t, Redrawer(parent), e.Parent())
}

func TestAddEntityToItselfPanics(t *testing.T) {
	e := testEntity("e", 0, NewScheduler())
	assert.PanicsWithValue(t, "tenkai: cannot add entity to itself", func() {
		e.AddEntity("me", e)
	})
}

func TestContainerAddNilPanics(t *testing.T) {
	s := NewScheduler()
	e := testEntity("e", 0, s)
	assert.PanicsWithValue(t, `tenkai: add nil entity "ghost"`, func() {
		e.AddEntity("ghost", nil)
	})
	assert.False(t, e.Entities().Has("ghost"))

	scene := NewScene(SceneConfig{})
	assert.PanicsWithValue(t, `tenkai: add nil scene "void"`, func() {
		scene.AddScene("void", nil)
	})
	var typed *Scene
	assert.PanicsWithValue(t, `tenkai: add nil scene "typed"`, func() {
		scene.AddScene("typed", typed)
	})
}

// --- Z order ---

func TestContainerOrderedByZStable(t *testing.T) {
	s := NewScheduler()
	var c Container[*Entity]
	c.Add("b1", testEntity("b1", 1, s))
	c.Add("a0", testEntity("a0", 0, s))
	c.Add("b2", testEntity("b2", 1, s))
	c.Add("neg", testEntity("neg", -3, s))

	var names []string
	for _, e := range c.Ordered() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"neg", "a0", "b1", "b2"}, names)
	assert.Equal(t, []int{-3, 0, 1}, c.Layers())
	assert.Len(t, c.At(1), 2)
	assert.Empty(t, c.At(7))
	assert.Equal(t, []string{"b1", "a0", "b2", "neg"}, c.Names())
}

func TestContainerZCacheInvalidation(t *testing.T) {
	s := NewScheduler()
	var c Container[*Entity]
	a := c.Add("a", testEntity("a", 0, s))
	c.Add("b", testEntity("b", 1, s))
	require.Equal(t, []int{0, 1}, c.Layers())

	a.SetZ(2)
	assert.Equal(t, []int{1, 2}, c.Layers())
	assert.Equal(t, "a", c.Ordered()[1].Name())

	c.Add("c", testEntity("c", 5, s))
	assert.Equal(t, []int{1, 2, 5}, c.Layers())

	c.Remove("b")
	assert.Equal(t, []int{2, 5}, c.Layers())
}

func TestContainerDrawLayer(t *testing.T) {
	s := NewScheduler()
	var c Container[*Entity]
	c.Add("a", testEntity("a", 0, s))
	c.Add("b", testEntity("b", 1, s))
	c.Add("c", testEntity("c", 1, s))

	surf := &recordingSurface{}
	c.DrawLayer(surf, 1)
	assert.Equal(t, []string{"b", "c"}, surf.drawn())
}

func TestContainerRedrawAll(t *testing.T) {
	s := NewScheduler()
	var c Container[*Entity]
	a := c.Add("a", testEntity("a", 0, s))
	b := c.Add("b", testEntity("b", 0, s))
	c.DrawAll(&recordingSurface{})
	require.False(t, a.Dirty())
	require.False(t, b.Dirty())

	c.RedrawAll()
	assert.True(t, a.Dirty())
	assert.True(t, b.Dirty())
}
