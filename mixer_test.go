package massbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMix_TwoFeeds(t *testing.T) {
	res, err := Mix(MixerInput{
		Components: []string{"A", "B"},
		Feeds: []Feed{
			{Flow: 10, Fractions: []float64{0.5, 0.5}},
			{Flow: 30, Fractions: []float64{0.1, 0.9}},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.InDelta(t, 40.0, res.Product.Flow, 1e-12)
	assert.InDeltaSlice(t, []float64{0.2, 0.8}, res.Product.Fractions, 1e-12)
	assert.Equal(t, []string{"A", "B"}, res.Product.Components)
}

func TestMix_Conservation(t *testing.T) {
	feeds := []Feed{
		{Flow: 3.5, Fractions: []float64{0.2, 0.3, 0.5}},
		{Flow: 12, Fractions: []float64{1, 0, 0}},
		{Flow: 0.25, Fractions: []float64{0, 0.6, 0.4}},
		{Flow: 7, Fractions: []float64{0.1, 0.1, 0.8}},
	}
	res, err := Mix(MixerInput{Feeds: feeds})
	require.NoError(t, err)

	total := 0.0
	for _, f := range feeds {
		total += f.Flow
	}
	assert.InDelta(t, total, res.Product.Flow, 1e-12)

	for j := 0; j < 3; j++ {
		want := 0.0
		for _, f := range feeds {
			want += f.Flow * f.Fractions[j]
		}
		assert.InDelta(t, want, res.Product.Flow*res.Product.Fractions[j], 1e-9, "component %d", j)
	}
	assert.True(t, res.Product.Valid())
}

func TestMix_WarnsPerOffendingFeed(t *testing.T) {
	res, err := Mix(MixerInput{
		Feeds: []Feed{
			{Flow: 1, Fractions: []float64{0.5, 0.5}},
			{Flow: 1, Fractions: []float64{1, 1}},
			{Flow: 1, Fractions: []float64{0.2, 0.2}},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], "feed 2")
	assert.Contains(t, res.Warnings[1], "feed 3")
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, res.Product.Fractions, 1e-12)
}

func TestMix_ZeroFlow(t *testing.T) {
	res, err := Mix(MixerInput{
		Feeds: []Feed{
			{Flow: 0, Fractions: []float64{0.5, 0.5}},
			{Flow: 0, Fractions: []float64{1, 0}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Product.Flow)
	assert.Equal(t, []float64{0, 0}, res.Product.Fractions)
}

func TestMix_Errors(t *testing.T) {
	_, err := Mix(MixerInput{})
	assert.ErrorIs(t, err, ErrInsufficientSpecification)

	_, err = Mix(MixerInput{
		Components: []string{"A", "B"},
		Feeds:      []Feed{{Flow: 1, Fractions: []float64{1, 0, 0}}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Mix(MixerInput{Feeds: []Feed{{Flow: -1, Fractions: []float64{1}}}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMix_WarnsOnEmptyComposition(t *testing.T) {
	res, err := Mix(MixerInput{
		Feeds: []Feed{
			{Flow: 1, Fractions: []float64{1, 0}},
			{Flow: 0, Fractions: []float64{0, 0}},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "feed 2: fractions normalized (sum=0.000000)")
	assert.Equal(t, []float64{1, 0}, res.Product.Fractions)
}
