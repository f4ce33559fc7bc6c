package coord

import (
	"errors"
	"fmt"
	"math/bits"
)

// Coord identifies a logical cell. A Coord is valid for a grid iff each
// component is strictly less than the matching dimension.
type Coord struct {
	X, Y, Z uint32
}

// New is shorthand for Coord{X: x, Y: y, Z: z}.
func New(x, y, z uint32) Coord { return Coord{X: x, Y: y, Z: z} }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z) }

// Dims is the fixed size of a grid along each axis.
type Dims struct {
	X, Y, Z int
}

// MaxAxis is the largest axis size a uint32 Coord can fully address.
const MaxAxis = uint64(1) << 32

// ErrInvalidDims is returned by Dims.Validate.
var ErrInvalidDims = errors.New("invalid grid dimensions")

// Validate rejects negative axes, axes longer than MaxAxis, and dimensions
// whose slot count does not fit in an int. Len and PosToIndex are only
// meaningful for dimensions that pass.
func (d Dims) Validate() error {
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return fmt.Errorf("%v: negative axis: %w", d, ErrInvalidDims)
	}
	if uint64(d.X) > MaxAxis || uint64(d.Y) > MaxAxis || uint64(d.Z) > MaxAxis {
		return fmt.Errorf("%v: axis longer than %d: %w", d, MaxAxis, ErrInvalidDims)
	}
	if _, ok := d.checkedLen(); !ok {
		return fmt.Errorf("%v: slot count overflows int: %w", d, ErrInvalidDims)
	}
	return nil
}

func (d Dims) checkedLen() (int, bool) {
	const maxInt = uint64(^uint(0) >> 1)
	hi, xy := bits.Mul64(uint64(d.X), uint64(d.Y))
	if hi != 0 {
		return 0, false
	}
	hi, n := bits.Mul64(xy, uint64(d.Z))
	if hi != 0 || n > maxInt {
		return 0, false
	}
	return int(n), true
}

// Len returns the number of slots a grid of these dimensions holds. It
// panics if d fails Validate.
func (d Dims) Len() int {
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		panic(fmt.Sprintf("coord: negative dimensions %v", d))
	}
	n, ok := d.checkedLen()
	if !ok {
		panic(fmt.Sprintf("coord: slot count of %v overflows int", d))
	}
	return n
}

// Contains reports whether c addresses a slot inside d.
func (d Dims) Contains(c Coord) bool {
	_, ok := PosToIndex(d, c)
	return ok
}

// Max returns the largest valid coordinate, or ok=false for an empty grid.
func (d Dims) Max() (Coord, bool) {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return Coord{}, false
	}
	return Coord{X: uint32(d.X - 1), Y: uint32(d.Y - 1), Z: uint32(d.Z - 1)}, true
}

func (d Dims) String() string { return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z) }

// PosToIndex converts c into a flat index for a grid of dimensions dims:
//
//	idx = x + y*dims.X + z*dims.X*dims.Y
//
// It returns ok=false if any component of c is >= the matching dimension.
// dims must pass Validate.
func PosToIndex(dims Dims, c Coord) (int, bool) {
	x, y, z := uint64(c.X), uint64(c.Y), uint64(c.Z)
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return 0, false
	}
	if x >= uint64(dims.X) || y >= uint64(dims.Y) || z >= uint64(dims.Z) {
		return 0, false
	}
	return int(x) + int(y)*dims.X + int(z)*(dims.X*dims.Y), true
}

// IndexToPos is the inverse of PosToIndex. idx must lie in [0, dims.Len());
// the result is meaningless otherwise.
func IndexToPos(dims Dims, idx int) Coord {
	plane := dims.X * dims.Y
	rem := idx % plane
	return Coord{
		X: uint32(rem % dims.X),
		Y: uint32(rem / dims.X),
		Z: uint32(idx / plane),
	}
}
