package gridplot

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/voxelgrid/internal/grid"
)

// SavePNG renders slice z of g as a heatmap PNG at path, creating parent
// directories as needed.
func SavePNG[T any](g *grid.Grid[T], z int, value ValueFunc[T], title, path string) error {
	s, err := newSlice(g, z, value)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (z=%d)", title, z)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(s, palette.Heat(12, 1))
	// A flat slice would give the palette a zero-width range.
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	c, r := s.Dims()
	p.X.Min, p.X.Max = -0.5, float64(c)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(r)-0.5

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	logf("saved slice plot %s (%dx%d cells)", path, c, r)
	return nil
}
