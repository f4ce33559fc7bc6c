package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/voxelgrid/internal/coord"
)

// Dump writes a human-readable rendering of the grid to w, one z slice at a
// time. Each line of a slice is one x row listing its y values. The format
// is for eyes only.
func (g *Grid[T]) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<Grid %dx%dx%d:\n", g.dims.X, g.dims.Y, g.dims.Z)
	for z := 0; z < g.dims.Z; z++ {
		fmt.Fprintf(bw, "#Slice z=%d:\n", z)
		for x := 0; x < g.dims.X; x++ {
			for y := 0; y < g.dims.Y; y++ {
				v := g.At(coord.New(uint32(x), uint32(y), uint32(z)))
				fmt.Fprintf(bw, "%v, ", v)
			}
			bw.WriteByte('\n')
		}
	}
	bw.WriteByte('>')
	return bw.Flush()
}

func (g *Grid[T]) String() string {
	var sb strings.Builder
	_ = g.Dump(&sb)
	return sb.String()
}
