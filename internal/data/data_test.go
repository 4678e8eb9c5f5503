package data_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/data"
)

func TestMoons(t *testing.T) {
	d := data.Moons(101, 0, 1)
	require.NoError(t, d.Validate())
	assert.Equal(t, 101, d.Len())

	neg, pos := 0, 0
	for i, x := range d.X {
		require.Len(t, x, 2)
		switch d.Y[i] {
		case -1:
			neg++
			assert.InDelta(t, 1, math.Hypot(x[0], x[1]), 1e-12) // unit circle
		case 1:
			pos++
			assert.InDelta(t, 1, math.Hypot(x[0]-1, x[1]-0.5), 1e-12)
		default:
			t.Fatalf("label %v", d.Y[i])
		}
	}
	assert.Equal(t, 50, neg)
	assert.Equal(t, 51, pos)

	assert.Equal(t, []float64{1, 0}, d.X[0])
	assert.InDelta(t, -1, d.X[49][0], 1e-12)
}

func TestMoons_Deterministic(t *testing.T) {
	a := data.Moons(50, 0.1, 7)
	b := data.Moons(50, 0.1, 7)
	c := data.Moons(50, 0.1, 8)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.X, c.X)
	assert.Equal(t, a.Y, c.Y)
}

func TestMoons_Small(t *testing.T) {
	assert.Equal(t, 0, data.Moons(0, 0.1, 1).Len())

	one := data.Moons(1, 0, 1)
	require.Equal(t, 1, one.Len())
	assert.Equal(t, 1.0, one.Y[0])

	assert.Panics(t, func() { data.Moons(-1, 0, 1) })
}

func TestBatch(t *testing.T) {
	d := data.Moons(20, 0, 1)
	rng := rand.New(rand.NewSource(3))

	b := d.Batch(5, rng)
	require.Equal(t, 5, b.Len())
	require.NoError(t, b.Validate())

	seen := map[*float64]bool{}
	for i, x := range b.X {
		assert.False(t, seen[&x[0]], "sample drawn twice")
		seen[&x[0]] = true

		// Labels travel with their inputs.
		for j := range d.X {
			if &d.X[j][0] == &x[0] {
				assert.Equal(t, d.Y[j], b.Y[i])
			}
		}
	}

	assert.Same(t, d, d.Batch(0, rng))
	assert.Same(t, d, d.Batch(20, rng))
}

func TestShuffleSplit(t *testing.T) {
	d := data.Moons(10, 0, 1).Shuffle(rand.New(rand.NewSource(5)))
	require.Equal(t, 10, d.Len())

	train, test := d.Split(0.8)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, test.Len())
	assert.Equal(t, d.X[8], test.X[0])

	all, none := d.Split(1.5)
	assert.Equal(t, 10, all.Len())
	assert.Equal(t, 0, none.Len())

	none, all = d.Split(-1)
	assert.Equal(t, 0, none.Len())
	assert.Equal(t, 10, all.Len())
}

func TestValidate(t *testing.T) {
	bad := &data.Dataset{X: [][]float64{{1, 2}}, Y: []float64{1, -1}}
	assert.ErrorIs(t, bad.Validate(), data.ErrLengthMismatch)

	ragged := &data.Dataset{X: [][]float64{{1, 2}, {3}}, Y: []float64{1, -1}}
	assert.Error(t, ragged.Validate())
}
