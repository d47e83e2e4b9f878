package tenkai

import (
	"cmp"
	"slices"
)

// zIndex caches a container's children sorted by z and grouped per z value.
// It is rebuilt lazily after any mutation that calls invalidate.
type zIndex[T Child] struct {
	valid bool
	order []T
	byZ   map[int][]T
	zs    []int
}

func (x *zIndex[T]) invalidate() {
	x.valid = false
	x.order = nil
	x.byZ = nil
	x.zs = nil
}

// ensure rebuilds the cache from children (given in insertion order) when it
// is stale. The sort is stable so equal z keeps insertion order.
func (x *zIndex[T]) ensure(children []T) {
	if x.valid {
		return
	}
	x.order = slices.Clone(children)
	slices.SortStableFunc(x.order, func(a, b T) int {
		return cmp.Compare(a.Z(), b.Z())
	})

	x.byZ = make(map[int][]T)
	x.zs = x.zs[:0]
	for _, c := range x.order {
		z := c.Z()
		if _, ok := x.byZ[z]; !ok {
			x.zs = append(x.zs, z)
		}
		x.byZ[z] = append(x.byZ[z], c)
	}
	x.valid = true
}

// at returns the children with the given z, or nil.
func (x *zIndex[T]) at(z int) []T {
	return x.byZ[z]
}
