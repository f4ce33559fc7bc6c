// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/banshee-data/voxelgrid/internal/grid"
	"github.com/banshee-data/voxelgrid/internal/monitoring"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// TempDBPath returns a sqlite path inside a per-test temporary directory.
func TempDBPath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "grid.db")
}

// CountingGrid returns an x*y*z grid whose slots hold their own flat index.
func CountingGrid(x, y, z int) *grid.Grid[int] {
	n := 0
	return grid.New(x, y, z, func() int {
		n++
		return n - 1
	})
}

// QuietLogs mutes monitoring.Logf and the grid log streams for the rest of
// the test.
func QuietLogs(t testing.TB) {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	grid.SetLogWriters(nil, nil, io.Discard)
	t.Cleanup(func() {
		monitoring.Logf = original
		grid.SetLogWriters(nil, nil, nil)
	})
}
