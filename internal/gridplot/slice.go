// Package gridplot renders one z slice of a grid as a heatmap, either as a
// PNG via gonum/plot or as an HTML chart via go-echarts.
package gridplot

import (
	"fmt"

	"github.com/banshee-data/voxelgrid/internal/coord"
	"github.com/banshee-data/voxelgrid/internal/grid"
	"github.com/banshee-data/voxelgrid/internal/monitoring"
)

var logf = monitoring.Component("gridplot")

// ValueFunc projects a cell onto the heatmap scale.
type ValueFunc[T any] func(T) float64

// slice adapts one z slice of a grid to plotter.GridXYZ: columns are x,
// rows are y.
type slice[T any] struct {
	g     *grid.Grid[T]
	z     uint32
	value ValueFunc[T]
}

func newSlice[T any](g *grid.Grid[T], z int, value ValueFunc[T]) (*slice[T], error) {
	if g == nil || value == nil {
		return nil, fmt.Errorf("nil grid or value func")
	}
	dims := g.Size()
	if dims.Len() == 0 {
		return nil, fmt.Errorf("grid %v is empty", dims)
	}
	if z < 0 || z >= dims.Z {
		return nil, fmt.Errorf("slice z=%d outside grid %v", z, dims)
	}
	return &slice[T]{g: g, z: uint32(z), value: value}, nil
}

func (s *slice[T]) Dims() (c, r int) {
	d := s.g.Size()
	return d.X, d.Y
}

func (s *slice[T]) Z(c, r int) float64 {
	return s.value(s.g.At(coord.New(uint32(c), uint32(r), s.z)))
}

func (s *slice[T]) X(c int) float64 { return float64(c) }
func (s *slice[T]) Y(r int) float64 { return float64(r) }

// bounds returns the smallest and largest values in the slice.
func (s *slice[T]) bounds() (lo, hi float64) {
	c, r := s.Dims()
	lo, hi = s.Z(0, 0), s.Z(0, 0)
	for x := 0; x < c; x++ {
		for y := 0; y < r; y++ {
			v := s.Z(x, y)
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}
