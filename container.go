package tenkai

import (
	"fmt"
	"reflect"
	"slices"
)

// Child is anything a Container can hold: entities and scenes.
type Child interface {
	Redrawer
	Z() int
	Draw(s Surface)
	node() *Node
}

// registry is the non-generic view of a Container that a child keeps of the
// container holding it.
type registry interface {
	Remove(name string)
	invalidate()
}

// Container is a named, z-ordered collection of children. Names keep their
// insertion order. The zero value is an empty container with no owner.
type Container[T Child] struct {
	kind  string
	owner Redrawer
	names []string
	items map[string]T
	z     zIndex[T]
}

func newContainer[T Child](kind string, owner Redrawer) Container[T] {
	return Container[T]{kind: kind, owner: owner}
}

// Add registers child under name, overwriting any entry with that name, and
// returns child. A child registered elsewhere (or here under another name) is
// removed from there first.
func (c *Container[T]) Add(name string, child T) T {
	if isNil(child) {
		panic(fmt.Sprintf("tenkai: add nil %s %q", c.kindName(), name))
	}
	n := child.node()
	if n.registry != nil && (n.registry != registry(c) || n.name != name) {
		n.registry.Remove(n.name)
	}

	if c.items == nil {
		c.items = make(map[string]T)
	}
	if prev, ok := c.items[name]; ok {
		if p := prev.node(); p != n {
			p.detach()
		}
	} else {
		c.names = append(c.names, name)
	}
	c.items[name] = child

	n.name = name
	n.registry = c
	n.parent = c.owner
	c.z.invalidate()
	return child
}

// Remove deletes the entry for name and asks the owner to redraw.
// Removing an absent name does nothing.
func (c *Container[T]) Remove(name string) {
	child, ok := c.items[name]
	if !ok {
		return
	}
	delete(c.items, name)
	if i := slices.Index(c.names, name); i >= 0 {
		c.names = slices.Delete(c.names, i, i+1)
	}
	if n := child.node(); n.registry == registry(c) {
		n.detach()
	}
	c.z.invalidate()
	if c.owner != nil {
		c.owner.Redraw()
	}
}

// Get returns the child registered under name. A missing name yields a
// *NotFoundError.
func (c *Container[T]) Get(name string) (T, error) {
	child, ok := c.items[name]
	if !ok {
		var zero T
		return zero, &NotFoundError{Kind: c.kindName(), Name: name}
	}
	return child, nil
}

// MustGet is like Get but panics when name is missing.
func (c *Container[T]) MustGet(name string) T {
	child, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return child
}

// Has reports whether name is registered.
func (c *Container[T]) Has(name string) bool {
	_, ok := c.items[name]
	return ok
}

// Len returns the number of children.
func (c *Container[T]) Len() int { return len(c.items) }

// Names returns the registered names in insertion order.
func (c *Container[T]) Names() []string { return slices.Clone(c.names) }

// Ordered returns the children sorted by ascending z, ties in insertion
// order. The returned slice is shared with the cache; do not modify it.
func (c *Container[T]) Ordered() []T {
	c.ensure()
	return c.z.order
}

// At returns the children whose z equals z, in draw order.
func (c *Container[T]) At(z int) []T {
	c.ensure()
	return c.z.at(z)
}

// Layers returns the distinct z values of the children in ascending order.
func (c *Container[T]) Layers() []int {
	c.ensure()
	return slices.Clone(c.z.zs)
}

// DrawAll draws every child in z order.
func (c *Container[T]) DrawAll(s Surface) {
	for _, child := range c.Ordered() {
		child.Draw(s)
	}
}

// DrawLayer draws the children at z.
func (c *Container[T]) DrawLayer(s Surface, z int) {
	for _, child := range c.At(z) {
		child.Draw(s)
	}
}

// RedrawAll marks every child dirty.
func (c *Container[T]) RedrawAll() {
	for _, name := range c.names {
		c.items[name].Redraw()
	}
}

func (c *Container[T]) invalidate() { c.z.invalidate() }

func (c *Container[T]) ensure() {
	if c.z.valid {
		return
	}
	children := make([]T, 0, len(c.names))
	for _, name := range c.names {
		children = append(children, c.items[name])
	}
	c.z.ensure(children)
}

func (c *Container[T]) kindName() string {
	if c.kind == "" {
		return "child"
	}
	return c.kind
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
