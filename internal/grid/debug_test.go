package grid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/voxelgrid/internal/coord"
)

// Not parallel: the log writers are package state.
func TestSetLogWriters(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(&ops, &diag, &trace)
	defer SetLogWriters(nil, nil, nil)

	g := NewFilled(2, 2, 2, 0)
	assert.Contains(t, diag.String(), "[grid] ")
	assert.Contains(t, diag.String(), "allocated 2x2x2 grid (8 slots)")

	g.IterCubes(coord.New(0, 0, 0), coord.New(1, 1, 1))
	assert.Contains(t, trace.String(), "box iterator (0,0,0)..=(1,1,1) over 2x2x2 (8 cells)")

	g.IterCubes(coord.New(0, 0, 0), coord.New(9, 9, 9))
	assert.Equal(t, 2, strings.Count(trace.String(), "box iterator (0,0,0)..=(1,1,1) over 2x2x2 (8 cells)"), "logged extent is clipped")

	g.IterCubes(coord.New(5, 0, 0), coord.New(9, 9, 9))
	assert.Contains(t, trace.String(), "nothing inside grid")

	_, err := g.IterCubesStrict(coord.New(0, 0, 0), coord.New(2, 2, 2))
	assert.Error(t, err)
	assert.Contains(t, ops.String(), "rejected box")
}

func TestSetLogWriters_NilDisables(t *testing.T) {
	SetLogWriters(nil, nil, nil)
	assert.Nil(t, opsLog)
	assert.Nil(t, diagLog)
	assert.Nil(t, traceLog)
	assert.NotPanics(t, func() { NewFilled(1, 1, 1, 0) })
}
