package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox_Empty(t *testing.T) {
	t.Parallel()
	assert.False(t, Box{New(0, 0, 0), New(0, 0, 0)}.Empty())
	assert.False(t, Box{New(1, 2, 3), New(4, 5, 6)}.Empty())
	assert.True(t, Box{New(2, 0, 0), New(1, 5, 5)}.Empty())
	assert.True(t, Box{New(0, 6, 0), New(5, 5, 5)}.Empty())
	assert.True(t, Box{New(0, 0, 6), New(5, 5, 5)}.Empty())
}

func TestBox_Candidates(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, Box{New(0, 0, 0), New(0, 0, 0)}.Candidates())
	assert.Equal(t, 18, Box{New(0, 0, 0), New(2, 1, 2)}.Candidates())
	assert.Equal(t, 0, Box{New(3, 0, 0), New(2, 1, 2)}.Candidates())

	huge := Box{New(0, 0, 0), New(math.MaxUint32, math.MaxUint32, math.MaxUint32)}
	assert.Equal(t, int(^uint(0)>>1), huge.Candidates())
}

func TestBox_Clip(t *testing.T) {
	t.Parallel()
	d := Dims{5, 5, 5}

	got, ok := Box{New(1, 1, 1), New(9, 3, 20)}.Clip(d)
	assert.True(t, ok)
	assert.Equal(t, Box{New(1, 1, 1), New(4, 3, 4)}, got)

	_, ok = Box{New(6, 0, 0), New(9, 3, 3)}.Clip(d)
	assert.False(t, ok, "box entirely outside grid")

	_, ok = Box{New(3, 0, 0), New(2, 3, 3)}.Clip(d)
	assert.False(t, ok, "inverted box")

	_, ok = Box{New(0, 0, 0), New(1, 1, 1)}.Clip(Dims{})
	assert.False(t, ok, "empty grid")
}

func TestCheckBox(t *testing.T) {
	t.Parallel()
	d := Dims{5, 5, 5}
	assert.NoError(t, CheckBox(d, Box{New(0, 0, 0), New(4, 4, 4)}))
	assert.ErrorIs(t, CheckBox(d, Box{New(0, 0, 0), New(5, 4, 4)}), ErrBoxOutOfBounds)
	assert.ErrorIs(t, CheckBox(d, Box{New(3, 0, 0), New(2, 4, 4)}), ErrInvertedBox)
}
