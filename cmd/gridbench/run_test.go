package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/voxelgrid/internal/config"
	"github.com/banshee-data/voxelgrid/internal/grid"
	"github.com/banshee-data/voxelgrid/internal/gridstore"
	"github.com/banshee-data/voxelgrid/internal/testutil"
	"github.com/banshee-data/voxelgrid/internal/timeutil"
	"github.com/banshee-data/voxelgrid/internal/workload"
)

func smallConfig(t *testing.T) *config.BenchConfig {
	t.Helper()
	iters := 5
	cfg := config.EmptyBenchConfig()
	cfg.Sizes = []int{3, 4}
	cfg.Iterations = &iters
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRun_AllGroups(t *testing.T) {
	testutil.QuietLogs(t)
	var out bytes.Buffer
	res, err := run(smallConfig(t), nil, timeutil.RealClock{}, &out)
	require.NoError(t, err)

	// 3 groups x 2 sizes
	require.Len(t, res.Summaries, 6)
	for _, s := range res.Summaries {
		assert.Equal(t, 5, s.N, "%s/%d", s.Group, s.Size)
	}
	assert.Equal(t, "writes", res.Summaries[0].Group)
	assert.Equal(t, "edits", res.Summaries[2].Group)
	assert.Equal(t, 4, res.Summaries[3].Size)

	require.Contains(t, res.Grids, 3)
	assert.Equal(t, 27, res.Grids[3].Len())
	assert.Equal(t, 64, res.Grids[4].Len())
	assert.Empty(t, res.SnapshotIDs)
	assert.Contains(t, out.String(), "lookups")
}

func TestRun_StepClockTiming(t *testing.T) {
	testutil.QuietLogs(t)
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := timeutil.NewStepClock(epoch, 2*time.Microsecond)
	store := &memStore{}

	res, err := run(smallConfig(t), store, clock, &bytes.Buffer{})
	require.NoError(t, err)
	for _, s := range res.Summaries {
		assert.Equal(t, 2*time.Microsecond, s.Mean, "%s/%d", s.Group, s.Size)
		assert.Equal(t, time.Duration(0), s.StdDev)
		assert.Equal(t, s.Min, s.Max)
	}
	require.Len(t, store.snaps, 2)
	assert.Equal(t, "bench-3", store.snaps[0].GridName)
	assert.True(t, store.snaps[0].TakenUnixNanos > epoch.UnixNano())
	assert.Less(t, store.snaps[0].TakenUnixNanos, store.snaps[1].TakenUnixNanos)
}

type memStore struct{ snaps []*gridstore.Snapshot }

func (m *memStore) InsertSnapshot(s *gridstore.Snapshot) (string, error) {
	m.snaps = append(m.snaps, s)
	return fmt.Sprintf("snap-%d", len(m.snaps)), nil
}

func TestRun_EditsChangeGrid(t *testing.T) {
	testutil.QuietLogs(t)
	cfg := smallConfig(t)
	cfg.Sizes = []int{3}
	cfg.Groups = []string{"edits"}
	res, err := run(cfg, nil, timeutil.RealClock{}, &bytes.Buffer{})
	require.NoError(t, err)

	fresh := workload.CreateAndFill(3, 3, 3)
	var before, after uint64
	for i := 0; i < fresh.Len(); i++ {
		v, _ := fresh.Get(i)
		before += uint64(v.SomeData)
		w, _ := res.Grids[3].Get(i)
		after += uint64(w.SomeData)
	}
	// every random box covers at least one cell
	assert.Greater(t, after, before)
}

func TestRun_SnapshotsAndPlots(t *testing.T) {
	testutil.QuietLogs(t)
	store, err := gridstore.Open(testutil.TempDBPath(t))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	dir := t.TempDir()
	cfg := smallConfig(t)
	cfg.PlotDir = &dir

	res, err := run(cfg, store, timeutil.RealClock{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, res.SnapshotIDs, 2)

	restored, err := gridstore.Restore[workload.Data](store, res.SnapshotIDs[4])
	require.NoError(t, err)
	assert.Equal(t, res.Grids[4].Size(), restored.Size())
	for i := 0; i < restored.Len(); i++ {
		want, _ := res.Grids[4].Get(i)
		got, _ := restored.Get(i)
		assert.Equal(t, want, got, "cell %d", i)
	}

	for _, name := range []string{"bench_03_z00.png", "bench_04_z00.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRun_PlotSliceOutOfRangeSkipped(t *testing.T) {
	testutil.QuietLogs(t)
	dir := t.TempDir()
	z := 3
	cfg := smallConfig(t)
	cfg.PlotDir = &dir
	cfg.PlotSlice = &z

	_, err := run(cfg, nil, timeutil.RealClock{}, &bytes.Buffer{})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bench_04_z03.png", entries[0].Name())
}

func TestDebugMux(t *testing.T) {
	testutil.QuietLogs(t)
	cfg := smallConfig(t)
	cfg.Groups = []string{"writes"}
	res, err := run(cfg, nil, timeutil.RealClock{}, &bytes.Buffer{})
	require.NoError(t, err)

	mux, err := debugMux(nil, res)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/grid/4?z=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/grid/4?z=9", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/grid/7", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseSizes(t *testing.T) {
	got, err := parseSizes("5, 10,20")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 10, 20}, got)

	_, err = parseSizes("5,x")
	assert.Error(t, err)
}

func TestConfigureGridLogs(t *testing.T) {
	testutil.QuietLogs(t)
	for _, lvl := range []string{"none", "ops", "diag", "trace"} {
		assert.NoError(t, configureGridLogs(lvl), lvl)
	}
	assert.Error(t, configureGridLogs("loud"))
}

func TestRun_GroupsStartFresh(t *testing.T) {
	testutil.QuietLogs(t)
	only := smallConfig(t)
	only.Sizes = []int{4}
	only.Groups = []string{"edits"}
	alone, err := run(only, nil, timeutil.RealClock{}, &bytes.Buffer{})
	require.NoError(t, err)

	all := smallConfig(t)
	all.Sizes = []int{4}
	withOthers, err := run(all, nil, timeutil.RealClock{}, &bytes.Buffer{})
	require.NoError(t, err)

	// Same seed, fresh grid and rng per group: earlier lookups and writes
	// must not change what the edits group does.
	assert.True(t, grid.Equal(alone.Grids[4], withOthers.Grids[4]))
}

func TestRunMain_ReturnsErrorAfterClosingStore(t *testing.T) {
	testutil.QuietLogs(t)
	dbPath := testutil.TempDBPath(t)
	notADir := filepath.Join(t.TempDir(), "plots")
	require.NoError(t, os.WriteFile(notADir, []byte("file"), 0644))

	cfg := smallConfig(t)
	cfg.SnapshotDB = &dbPath
	cfg.PlotDir = &notADir

	err := runMain(cfg, &bytes.Buffer{})
	require.ErrorContains(t, err, "benchmark failed")

	// The snapshot written before the plot failure is readable from a new
	// connection once runMain has returned.
	store, err := gridstore.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	snap, err := store.LatestSnapshot("bench-3")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.SizeX)
}
