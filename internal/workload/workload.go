// Package workload holds the synthetic grid workloads shared by the
// benchmarks and cmd/gridbench: filling a cube, read lookups and in-place
// edits over random bounding boxes.
package workload

import (
	"fmt"
	"math/rand/v2"

	"github.com/banshee-data/voxelgrid/internal/coord"
	"github.com/banshee-data/voxelgrid/internal/grid"
)

// Data is the cell payload used by every workload.
type Data struct {
	SomeData uint32
}

func (d Data) String() string { return fmt.Sprint(d.SomeData) }

// CreateAndFill builds an x*y*z grid and writes a running counter into every
// cell through the trusted coordinate accessor, x outermost.
func CreateAndFill(x, y, z uint32) *grid.Grid[Data] {
	g := grid.New(int(x), int(y), int(z), func() Data { return Data{} })
	var count uint32
	for i := uint32(0); i < x; i++ {
		for j := uint32(0); j < y; j++ {
			for k := uint32(0); k < z; k++ {
				g.Set(coord.New(i, j, k), Data{SomeData: count})
				count++
			}
		}
	}
	return g
}

// NewRNG returns the deterministic generator used for box selection.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomBox picks a bounding box inside dims: each min component lies in
// [0, size-2) and each max component in [min, size). Every axis must be at
// least 3 long.
func RandomBox(rng *rand.Rand, dims coord.Dims) (coord.Coord, coord.Coord) {
	if dims.X < 3 || dims.Y < 3 || dims.Z < 3 {
		panic(fmt.Sprintf("workload: grid %v too small for random boxes", dims))
	}
	min := coord.New(
		uint32(rng.IntN(dims.X-2)),
		uint32(rng.IntN(dims.Y-2)),
		uint32(rng.IntN(dims.Z-2)),
	)
	max := coord.New(
		min.X+uint32(rng.IntN(dims.X-int(min.X))),
		min.Y+uint32(rng.IntN(dims.Y-int(min.Y))),
		min.Z+uint32(rng.IntN(dims.Z-int(min.Z))),
	)
	if (coord.Box{Min: min, Max: max}).Empty() {
		panic("workload: generated volume is inverted")
	}
	return min, max
}

// Lookup reads every cell in [min, max] and returns the sum of their
// payloads so the traversal cannot be optimised away.
func Lookup(g *grid.Grid[Data], min, max coord.Coord) uint64 {
	var sum uint64
	it := g.IterCubes(min, max)
	for {
		_, d, ok := it.Next()
		if !ok {
			return sum
		}
		sum += uint64(d.SomeData)
	}
}

// Edit increments every cell in [min, max] and returns how many it touched.
func Edit(g *grid.Grid[Data], min, max coord.Coord) int {
	n := 0
	it := g.IterCubesMut(min, max)
	for {
		_, _, d, ok := it.Next()
		if !ok {
			return n
		}
		d.SomeData++
		n++
	}
}
