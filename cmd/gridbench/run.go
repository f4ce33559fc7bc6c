package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/voxelgrid/internal/benchstats"
	"github.com/banshee-data/voxelgrid/internal/config"
	"github.com/banshee-data/voxelgrid/internal/grid"
	"github.com/banshee-data/voxelgrid/internal/gridplot"
	"github.com/banshee-data/voxelgrid/internal/gridstore"
	"github.com/banshee-data/voxelgrid/internal/monitoring"
	"github.com/banshee-data/voxelgrid/internal/security"
	"github.com/banshee-data/voxelgrid/internal/timeutil"
	"github.com/banshee-data/voxelgrid/internal/workload"
)

var logf = monitoring.Component("gridbench")

// result is everything one run produced.
type result struct {
	Summaries []benchstats.Summary
	// grid the last configured group ran on, per size
	Grids       map[int]*grid.Grid[workload.Data]
	SnapshotIDs map[int]string
}

func dataValue(d workload.Data) float64 { return float64(d.SomeData) }

// run executes the configured workloads, timing each operation on clock.
// Every group gets its own freshly filled grid. store may be nil.
func run(cfg *config.BenchConfig, store gridstore.SnapshotInserter, clock timeutil.Clock, out io.Writer) (*result, error) {
	res := &result{
		Grids:       make(map[int]*grid.Grid[workload.Data]),
		SnapshotIDs: make(map[int]string),
	}
	iterations := cfg.GetIterations()

	for _, size := range cfg.GetSizes() {
		edge := uint32(size)
		var g *grid.Grid[workload.Data]

		for _, group := range cfg.GetGroups() {
			// Each group starts from a freshly seeded rng so its boxes do not
			// depend on which other groups ran.
			rng := workload.NewRNG(cfg.GetSeed())
			samples := make([]time.Duration, 0, iterations)
			switch group {
			case "writes":
				for i := 0; i < iterations; i++ {
					start := clock.Now()
					g = workload.CreateAndFill(edge, edge, edge)
					samples = append(samples, clock.Since(start))
				}
			case "lookups", "edits":
				g = workload.CreateAndFill(edge, edge, edge)
				dims := g.Size()
				for i := 0; i < iterations; i++ {
					min, max := workload.RandomBox(rng, dims)
					start := clock.Now()
					if group == "lookups" {
						workload.Lookup(g, min, max)
					} else {
						workload.Edit(g, min, max)
					}
					samples = append(samples, clock.Since(start))
				}
			default:
				return nil, fmt.Errorf("unknown group %q", group)
			}
			s := benchstats.Summarize(group, size, samples)
			logf("group=%s size=%d n=%d mean=%v p95=%v", group, size, s.N, s.Mean, s.P95)
			res.Summaries = append(res.Summaries, s)
		}
		if g == nil {
			continue
		}
		res.Grids[size] = g

		if store != nil {
			id, err := gridstore.PersistAt(store, fmt.Sprintf("bench-%d", size), g, "benchmark", clock.Now())
			if err != nil {
				return nil, err
			}
			res.SnapshotIDs[size] = id
		}
		if dir := cfg.GetPlotDir(); dir != "" {
			z := cfg.GetPlotSlice()
			if z >= size {
				logf("skipping plot for size %d: slice z=%d out of range", size, z)
				continue
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create plot dir: %w", err)
			}
			path := filepath.Join(dir, security.SanitizeFilename(fmt.Sprintf("bench_%02d_z%02d.png", size, z)))
			if err := security.CheckWithinDir(path, dir); err != nil {
				return nil, err
			}
			if err := gridplot.SavePNG(g, z, dataValue, fmt.Sprintf("bench %d", size), path); err != nil {
				return nil, err
			}
		}
	}

	if err := benchstats.WriteTable(out, res.Summaries); err != nil {
		return nil, err
	}
	return res, nil
}
