package gridplot

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/voxelgrid/internal/grid"
)

// echartsAssetsHost serves the echarts JS bundle.
const echartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// RenderHTML writes slice z of g as an interactive echarts heatmap.
func RenderHTML[T any](w io.Writer, g *grid.Grid[T], z int, value ValueFunc[T], title string) error {
	s, err := newSlice(g, z, value)
	if err != nil {
		return err
	}
	c, r := s.Dims()
	lo, hi := s.bounds()
	if lo == hi {
		hi = lo + 1
	}

	xs := make([]int, c)
	for i := range xs {
		xs[i] = i
	}
	ys := make([]int, r)
	for i := range ys {
		ys[i] = i
	}
	data := make([]opts.HeatMapData, 0, c*r)
	for x := 0; x < c; x++ {
		for y := 0; y < r; y++ {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{x, y, s.Z(x, y)}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("z=%d dims=%v", z, g.Size())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "y", Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#fde725"}},
		}),
	)
	hm.SetXAxis(xs).AddSeries("cells", data)
	return hm.Render(w)
}

// SliceHandler serves RenderHTML for g; the slice is picked with ?z=N
// (default 0). g must not be mutated while the handler is mounted.
func SliceHandler[T any](g *grid.Grid[T], value ValueFunc[T], title string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		z := 0
		if v := r.URL.Query().Get("z"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, fmt.Sprintf("invalid z %q", v), http.StatusBadRequest)
				return
			}
			z = parsed
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := RenderHTML(w, g, z, value, title); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	})
}
