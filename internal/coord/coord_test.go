package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDims = []Dims{
	{1, 1, 1},
	{5, 5, 5},
	{3, 4, 5},
	{10, 8, 6},
	{7, 1, 3},
}

func TestPosToIndex_Bijective(t *testing.T) {
	t.Parallel()
	for _, d := range testDims {
		seen := make(map[int]bool, d.Len())
		for z := 0; z < d.Z; z++ {
			for y := 0; y < d.Y; y++ {
				for x := 0; x < d.X; x++ {
					c := New(uint32(x), uint32(y), uint32(z))
					idx, ok := PosToIndex(d, c)
					require.True(t, ok, "dims=%v c=%v", d, c)
					require.False(t, seen[idx], "dims=%v index %d repeated", d, idx)
					seen[idx] = true
					assert.Equal(t, c, IndexToPos(d, idx), "dims=%v", d)
				}
			}
		}
		assert.Len(t, seen, d.Len())
	}
}

func TestPosToIndex_RowMajorXFastest(t *testing.T) {
	t.Parallel()
	d := Dims{3, 4, 5}
	cases := []struct {
		c    Coord
		want int
	}{
		{New(0, 0, 0), 0},
		{New(1, 0, 0), 1},
		{New(0, 1, 0), 3},
		{New(0, 0, 1), 12},
		{New(2, 3, 4), 59},
	}
	for _, tc := range cases {
		idx, ok := PosToIndex(d, tc.c)
		require.True(t, ok)
		assert.Equal(t, tc.want, idx, "c=%v", tc.c)
	}
}

func TestPosToIndex_RejectsOutOfBounds(t *testing.T) {
	t.Parallel()
	d := Dims{3, 4, 5}
	cases := []Coord{
		New(3, 0, 0),
		New(0, 4, 0),
		New(0, 0, 5),
		New(3, 4, 5),
		New(math.MaxUint32, 0, 0),
		New(0, math.MaxUint32, math.MaxUint32),
	}
	for _, c := range cases {
		_, ok := PosToIndex(d, c)
		assert.False(t, ok, "c=%v should be rejected", c)
		assert.False(t, d.Contains(c))
	}
}

func TestPosToIndex_EmptyDims(t *testing.T) {
	t.Parallel()
	for _, d := range []Dims{{0, 5, 5}, {5, 0, 5}, {5, 5, 0}, {}} {
		_, ok := PosToIndex(d, New(0, 0, 0))
		assert.False(t, ok, "dims=%v", d)
	}
}

func TestIndexToPos_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, d := range testDims {
		for i := 0; i < d.Len(); i++ {
			idx, ok := PosToIndex(d, IndexToPos(d, i))
			require.True(t, ok)
			assert.Equal(t, i, idx, "dims=%v", d)
		}
	}
}

func TestDims_Max(t *testing.T) {
	t.Parallel()
	hi, ok := Dims{3, 4, 5}.Max()
	require.True(t, ok)
	assert.Equal(t, New(2, 3, 4), hi)

	_, ok = Dims{0, 4, 5}.Max()
	assert.False(t, ok)
	assert.Equal(t, "3x4x5", Dims{3, 4, 5}.String())
	assert.Equal(t, "(1,2,3)", New(1, 2, 3).String())
}

func TestDims_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		dims Dims
		ok   bool
	}{
		{"small", Dims{3, 4, 5}, true},
		{"empty axis", Dims{0, 7, 7}, true},
		{"full uint32 axis", Dims{1 << 32, 1, 1}, true},
		{"negative", Dims{-1, 1, 1}, false},
		{"axis too long", Dims{1<<32 + 1, 1, 1}, false},
		{"product overflows uint64", Dims{1 << 32, 1 << 32, 1}, false},
		{"product overflows int", Dims{1 << 32, 1 << 31, 1}, false},
		{"three-way overflow", Dims{1 << 22, 1 << 22, 1 << 22}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dims.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidDims)
			assert.Panics(t, func() { tt.dims.Len() })
		})
	}
}
