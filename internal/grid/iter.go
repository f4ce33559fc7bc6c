package grid

import (
	"fmt"

	"github.com/banshee-data/voxelgrid/internal/coord"
)

// boxCursor walks the cross product min.X..=max.X × min.Y..=max.Y ×
// min.Z..=max.Z with x outermost and z innermost. It is finite and cannot
// be rewound.
type boxCursor struct {
	box       coord.Box
	pos       coord.Coord
	done      bool
	remaining int
}

func newBoxCursor(box coord.Box) boxCursor {
	return boxCursor{
		box:       box,
		pos:       box.Min,
		done:      box.Empty(),
		remaining: box.Candidates(),
	}
}

// step returns the next candidate coordinate. Increments never overflow:
// an axis only advances while it is strictly below its max.
func (c *boxCursor) step() (coord.Coord, bool) {
	if c.done {
		return coord.Coord{}, false
	}
	cur := c.pos
	switch {
	case c.pos.Z < c.box.Max.Z:
		c.pos.Z++
	case c.pos.Y < c.box.Max.Y:
		c.pos.Z = c.box.Min.Z
		c.pos.Y++
	case c.pos.X < c.box.Max.X:
		c.pos.Z = c.box.Min.Z
		c.pos.Y = c.box.Min.Y
		c.pos.X++
	default:
		c.done = true
	}
	if c.remaining > 0 {
		c.remaining--
	}
	return cur, true
}

// BoxIdxIterator yields the coordinate and flat index of every in-bounds
// cell of a bounding box. The part of the box outside the grid is dropped
// before traversal starts.
type BoxIdxIterator struct {
	dims coord.Dims
	cur  boxCursor
}

// newBoxIdxIterator clips [min, max] to dims up front, so the cursor never
// visits a coordinate outside the grid.
func newBoxIdxIterator(dims coord.Dims, min, max coord.Coord) BoxIdxIterator {
	box, ok := coord.Box{Min: min, Max: max}.Clip(dims)
	if !ok {
		tracef("box iterator %v..=%v over %v: nothing inside grid", min, max, dims)
		return BoxIdxIterator{dims: dims, cur: boxCursor{done: true}}
	}
	tracef("box iterator %v..=%v over %v (%d cells)", box.Min, box.Max, dims, box.Candidates())
	return BoxIdxIterator{dims: dims, cur: newBoxCursor(box)}
}

// Next returns the next in-bounds coordinate and its flat index. ok is false
// once the box is exhausted, and stays false.
func (it *BoxIdxIterator) Next() (coord.Coord, int, bool) {
	for {
		p, ok := it.cur.step()
		if !ok {
			return coord.Coord{}, 0, false
		}
		idx, ok := coord.PosToIndex(it.dims, p)
		if !ok {
			continue
		}
		return p, idx, true
	}
}

// SizeHint returns lower and upper bounds on the number of items left.
// The box is clipped to the grid, so both bounds are exact.
func (it *BoxIdxIterator) SizeHint() (int, int) {
	return it.cur.remaining, it.cur.remaining
}

// BoxIterator yields the cells in a bounding box by value. Each Next copies
// one T out of the grid, so writes to the result never reach the grid. For
// large T, walk IterCubeIndices and read through GetMut instead to avoid the
// copy.
type BoxIterator[T any] struct {
	data []T
	iter BoxIdxIterator
}

// Next returns the next coordinate and its value.
func (it *BoxIterator[T]) Next() (coord.Coord, T, bool) {
	p, idx, ok := it.iter.Next()
	if !ok {
		var zero T
		return p, zero, false
	}
	return p, it.data[idx], true
}

// SizeHint returns lower and upper bounds on the number of items left.
func (it *BoxIterator[T]) SizeHint() (int, int) { return it.iter.SizeHint() }

// WithIndex turns it into an iterator that also yields flat indices. The
// traversal continues from where it left off; do not use it afterwards.
func (it *BoxIterator[T]) WithIndex() *BoxIteratorWithIndex[T] {
	return &BoxIteratorWithIndex[T]{data: it.data, iter: it.iter}
}

// BoxIteratorWithIndex is a BoxIterator that also yields flat indices. Values
// are copies, as with BoxIterator.
type BoxIteratorWithIndex[T any] struct {
	data []T
	iter BoxIdxIterator
}

// Next returns the next coordinate, its flat index and its value.
func (it *BoxIteratorWithIndex[T]) Next() (coord.Coord, int, T, bool) {
	p, idx, ok := it.iter.Next()
	if !ok {
		var zero T
		return p, 0, zero, false
	}
	return p, idx, it.data[idx], true
}

// SizeHint returns lower and upper bounds on the number of items left.
func (it *BoxIteratorWithIndex[T]) SizeHint() (int, int) { return it.iter.SizeHint() }

// BoxIteratorMut yields a pointer to each cell of a bounding box.
//
// Every yielded pointer addresses a distinct slot, since PosToIndex is a
// bijection and the cursor never repeats a coordinate. Callers must not
// keep a pointer past the following call to Next, and must not run two
// mutable traversals over the same grid at once.
type BoxIteratorMut[T any] struct {
	data []T
	iter BoxIdxIterator
}

// Next returns the next coordinate, its flat index and a pointer to its slot.
func (it *BoxIteratorMut[T]) Next() (coord.Coord, int, *T, bool) {
	p, idx, ok := it.iter.Next()
	if !ok {
		return p, 0, nil, false
	}
	return p, idx, &it.data[idx], true
}

// SizeHint returns lower and upper bounds on the number of items left.
func (it *BoxIteratorMut[T]) SizeHint() (int, int) { return it.iter.SizeHint() }

// IterCubeIndices iterates the coordinates and flat indices of the inclusive
// box [min, max]. Parts of the box outside the grid are skipped; an inverted
// box yields nothing.
func (g *Grid[T]) IterCubeIndices(min, max coord.Coord) *BoxIdxIterator {
	it := newBoxIdxIterator(g.dims, min, max)
	return &it
}

// IterCubes iterates the cells of the inclusive box [min, max] read-only.
func (g *Grid[T]) IterCubes(min, max coord.Coord) *BoxIterator[T] {
	return &BoxIterator[T]{data: g.cubes, iter: newBoxIdxIterator(g.dims, min, max)}
}

// IterCubesMut iterates the cells of the inclusive box [min, max] for
// writing. See BoxIteratorMut for the aliasing rules.
func (g *Grid[T]) IterCubesMut(min, max coord.Coord) *BoxIteratorMut[T] {
	return &BoxIteratorMut[T]{data: g.cubes, iter: newBoxIdxIterator(g.dims, min, max)}
}

// IterCubesStrict is IterCubes for callers that want an inverted or
// out-of-bounds box rejected instead of truncated.
func (g *Grid[T]) IterCubesStrict(min, max coord.Coord) (*BoxIterator[T], error) {
	if err := g.checkBox(min, max); err != nil {
		return nil, err
	}
	return g.IterCubes(min, max), nil
}

// IterCubesMutStrict is the rejecting form of IterCubesMut.
func (g *Grid[T]) IterCubesMutStrict(min, max coord.Coord) (*BoxIteratorMut[T], error) {
	if err := g.checkBox(min, max); err != nil {
		return nil, err
	}
	return g.IterCubesMut(min, max), nil
}

func (g *Grid[T]) checkBox(min, max coord.Coord) error {
	if err := coord.CheckBox(g.dims, coord.Box{Min: min, Max: max}); err != nil {
		opsf("rejected box %v..=%v over %v: %v", min, max, g.dims, err)
		return fmt.Errorf("box %v..=%v: %w", min, max, err)
	}
	return nil
}
