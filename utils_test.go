package massbal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	assert.Equal(t, 3.0, Sum([]float64{1, math.NaN(), 2}))
	assert.Equal(t, 0.0, Sum([]float64{}))
	assert.Equal(t, float32(1.5), Sum([]float32{1, 0.5}))
}

func TestClamp01(t *testing.T) {
	cases := map[float64]float64{
		-1:   0,
		0.3:  0.3,
		2:    1,
		1:    1,
		0:    0,
	}
	for in, want := range cases {
		assert.Equal(t, want, Clamp01(in), "Clamp01(%g)", in)
	}
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 0.0, Clamp01(math.Inf(1)))
	assert.Equal(t, 0.0, Clamp01(math.Inf(-1)))
}

func TestNormalize(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.5}, Normalize([]float64{1, 1, 2}), 1e-15)
	assert.Equal(t, []float64{0, 0, 0}, Normalize([]float64{0, 0, 0}))
	assert.Equal(t, []float64{0, 0}, Normalize([]float64{-1, 0.5}))
}

func TestNormalize_Idempotent(t *testing.T) {
	vectors := [][]float64{
		{1, 2, 3},
		{0.2, 0.8},
		{5, 0, 0, 1e-3},
		{1e9, 1},
	}
	for _, v := range vectors {
		once := Normalize(v)
		twice := Normalize(once)
		assert.InDeltaSlice(t, once, twice, 1e-15)
		assert.True(t, SumsToOne(once))
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(1+1e-7, 1, FRACTION_TOLERANCE))
	assert.False(t, WithinTolerance(1+1e-5, 1, FRACTION_TOLERANCE))
	assert.True(t, SumsToOne([]float64{0.3, 0.7}))
	assert.False(t, SumsToOne([]float64{0.3, 0.6}))
}
