// Package grid owns the dense voxel container built on the coord
// addressing layer.
//
// Responsibilities: construction with a per-slot filler, defensive and
// trusted element access, bounding-box iteration (index, read, read with
// index, mutable), debug rendering and snapshot blob encoding.
// Key types: Grid, BoxIdxIterator, BoxIterator, BoxIteratorWithIndex,
// BoxIteratorMut.
//
// A Grid is single-owner and not safe for concurrent use. Any number of read
// traversals may be live at once; a mutable traversal needs the whole grid
// to itself until it is exhausted or abandoned.
package grid
