package grid

import (
	"fmt"

	"github.com/banshee-data/voxelgrid/internal/coord"
)

// Grid is a dense 3D container. Slot order is row-major with x varying
// fastest, then y, then z. len(cubes) == dims.Len() for the life of the grid.
type Grid[T any] struct {
	dims  coord.Dims
	cubes []T

	// set while a CubesMut range loop is running
	mutBorrowed bool
}

// New allocates an x*y*z grid and calls filler once per slot, in flat index
// order, to produce each initial value. filler gets no coordinate context.
// It panics if the dimensions fail coord.Dims.Validate.
func New[T any](x, y, z int, filler func() T) *Grid[T] {
	dims := coord.Dims{X: x, Y: y, Z: z}
	if err := dims.Validate(); err != nil {
		panic(fmt.Sprintf("grid: %v", err))
	}
	if filler == nil {
		panic("grid: nil filler")
	}
	cubes := make([]T, dims.Len())
	for i := range cubes {
		cubes[i] = filler()
	}
	diagf("allocated %s grid (%d slots)", dims, len(cubes))
	return &Grid[T]{dims: dims, cubes: cubes}
}

// NewFilled allocates an x*y*z grid with every slot set to v.
func NewFilled[T any](x, y, z int, v T) *Grid[T] {
	return New(x, y, z, func() T { return v })
}

// Size returns the grid dimensions.
func (g *Grid[T]) Size() coord.Dims { return g.dims }

// Len returns the number of slots.
func (g *Grid[T]) Len() int { return len(g.cubes) }

// Get returns the value at flat index idx, or ok=false if idx is out of range.
func (g *Grid[T]) Get(idx int) (T, bool) {
	if idx < 0 || idx >= len(g.cubes) {
		var zero T
		return zero, false
	}
	return g.cubes[idx], true
}

// GetMut returns a pointer to the slot at flat index idx, or ok=false if idx
// is out of range.
func (g *Grid[T]) GetMut(idx int) (*T, bool) {
	if idx < 0 || idx >= len(g.cubes) {
		return nil, false
	}
	return &g.cubes[idx], true
}

// IndexOf converts c into a flat index for this grid.
func (g *Grid[T]) IndexOf(c coord.Coord) (int, bool) {
	return coord.PosToIndex(g.dims, c)
}

// PosOf converts a flat index back into a coordinate.
func (g *Grid[T]) PosOf(idx int) (coord.Coord, bool) {
	if idx < 0 || idx >= len(g.cubes) {
		return coord.Coord{}, false
	}
	return coord.IndexToPos(g.dims, idx), true
}

// mustIndex resolves c for the trusted accessors. An unresolvable
// coordinate is a caller bug, not a runtime condition.
func (g *Grid[T]) mustIndex(c coord.Coord) int {
	idx, ok := coord.PosToIndex(g.dims, c)
	if !ok {
		panic(fmt.Sprintf("grid: index out of bounds: %v not in %v", c, g.dims))
	}
	return idx
}

// At returns the value at c. It panics if c is outside the grid.
func (g *Grid[T]) At(c coord.Coord) T { return g.cubes[g.mustIndex(c)] }

// Ptr returns a pointer to the slot at c. It panics if c is outside the grid.
func (g *Grid[T]) Ptr(c coord.Coord) *T { return &g.cubes[g.mustIndex(c)] }

// Set stores v at c. It panics if c is outside the grid.
func (g *Grid[T]) Set(c coord.Coord, v T) { g.cubes[g.mustIndex(c)] = v }

// AtIndex returns the value at flat index i. It panics if i is out of range.
func (g *Grid[T]) AtIndex(i int) T { return g.cubes[i] }

// SetIndex stores v at flat index i. It panics if i is out of range.
func (g *Grid[T]) SetIndex(i int, v T) { g.cubes[i] = v }

// Collect returns copies of every value inside the inclusive box [min, max],
// in traversal order. Parts of the box outside the grid are ignored.
func (g *Grid[T]) Collect(min, max coord.Coord) []T {
	it := g.IterCubes(min, max)
	n, _ := it.SizeHint()
	out := make([]T, 0, n)
	for {
		_, v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Equal reports whether a and b have the same dimensions and element-wise
// equal contents.
func Equal[T comparable](a, b *Grid[T]) bool {
	if a.dims != b.dims {
		return false
	}
	for i := range a.cubes {
		if a.cubes[i] != b.cubes[i] {
			return false
		}
	}
	return true
}
