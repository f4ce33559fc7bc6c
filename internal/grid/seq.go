package grid

import (
	"iter"

	"github.com/banshee-data/voxelgrid/internal/coord"
)

// Indices is the range-over-func form of IterCubeIndices.
func (g *Grid[T]) Indices(min, max coord.Coord) iter.Seq2[coord.Coord, int] {
	return func(yield func(coord.Coord, int) bool) {
		it := g.IterCubeIndices(min, max)
		for {
			p, idx, ok := it.Next()
			if !ok || !yield(p, idx) {
				return
			}
		}
	}
}

// Cubes is the range-over-func form of IterCubes. Values are copies.
func (g *Grid[T]) Cubes(min, max coord.Coord) iter.Seq2[coord.Coord, T] {
	return func(yield func(coord.Coord, T) bool) {
		it := g.IterCubes(min, max)
		for {
			p, v, ok := it.Next()
			if !ok || !yield(p, v) {
				return
			}
		}
	}
}

// CubesMut is the range-over-func form of IterCubesMut. The grid is
// exclusively borrowed while the loop runs: starting another CubesMut over
// the same grid from inside the loop body panics. The borrow ends when the
// loop does, including on break.
func (g *Grid[T]) CubesMut(min, max coord.Coord) iter.Seq2[coord.Coord, *T] {
	return func(yield func(coord.Coord, *T) bool) {
		if g.mutBorrowed {
			panic("grid: mutable traversal already in progress")
		}
		g.mutBorrowed = true
		defer func() { g.mutBorrowed = false }()

		it := g.IterCubesMut(min, max)
		for {
			p, _, v, ok := it.Next()
			if !ok || !yield(p, v) {
				return
			}
		}
	}
}
