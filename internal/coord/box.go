package coord

import "errors"

var (
	// ErrInvertedBox is returned by CheckBox when a Min component exceeds
	// the matching Max component.
	ErrInvertedBox = errors.New("bounding box min exceeds max")
	// ErrBoxOutOfBounds is returned by CheckBox when Max falls outside the grid.
	ErrBoxOutOfBounds = errors.New("bounding box exceeds grid dimensions")
)

// Box is an inclusive axis-aligned range [Min, Max].
type Box struct {
	Min, Max Coord
}

// Empty reports whether the box contains no coordinates at all.
func (b Box) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Candidates returns the number of coordinates in the cross product of the
// three inclusive ranges, saturating at the largest int.
func (b Box) Candidates() int {
	if b.Empty() {
		return 0
	}
	nx := uint64(b.Max.X-b.Min.X) + 1
	ny := uint64(b.Max.Y-b.Min.Y) + 1
	nz := uint64(b.Max.Z-b.Min.Z) + 1
	const maxInt = uint64(^uint(0) >> 1)
	// Each span is <= 2^32, so the first product fits in a uint64.
	n := nx * ny
	if n > maxInt/nz {
		return int(maxInt)
	}
	return int(n * nz)
}

// Clip returns the part of b that lies inside dims. ok is false when
// nothing remains.
func (b Box) Clip(dims Dims) (Box, bool) {
	hi, ok := dims.Max()
	if !ok || b.Empty() {
		return Box{}, false
	}
	out := b
	out.Max.X = min(out.Max.X, hi.X)
	out.Max.Y = min(out.Max.Y, hi.Y)
	out.Max.Z = min(out.Max.Z, hi.Z)
	if out.Empty() {
		return Box{}, false
	}
	return out, true
}

// CheckBox validates b against dims for callers that want rejection rather
// than silent truncation.
func CheckBox(dims Dims, b Box) error {
	if b.Empty() {
		return ErrInvertedBox
	}
	if !dims.Contains(b.Max) {
		return ErrBoxOutOfBounds
	}
	return nil
}
