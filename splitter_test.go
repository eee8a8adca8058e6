package massbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Partition(t *testing.T) {
	res, err := Split(SplitterInput{
		Feed:  Feed{Flow: 10, Fractions: []float64{1, 0}},
		Split: []float64{0.3, 0.7},
	})
	require.NoError(t, err)
	require.Len(t, res.Outlets, 2)
	assert.Empty(t, res.Warnings)

	assert.InDelta(t, 3.0, res.Outlets[0].Flow, 1e-12)
	assert.InDelta(t, 7.0, res.Outlets[1].Flow, 1e-12)
	for _, o := range res.Outlets {
		assert.Equal(t, []float64{1, 0}, o.Fractions)
	}
}

func TestSplit_ConservesAndKeepsComposition(t *testing.T) {
	feed := Feed{Flow: 42, Fractions: []float64{2, 1, 1}}
	res, err := Split(SplitterInput{Feed: feed, Split: []float64{1, 2, 3, 4}})
	require.NoError(t, err)

	// both the feed and φ were off
	assert.Len(t, res.Warnings, 2)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3, 0.4}, res.Split, 1e-12)

	total := 0.0
	x := Normalize(feed.Fractions)
	for _, o := range res.Outlets {
		total += o.Flow
		assert.Equal(t, x, o.Fractions)
	}
	assert.InDelta(t, feed.Flow, total, 1e-9)
}

func TestSplit_OutletsDoNotShareStorage(t *testing.T) {
	res, err := Split(SplitterInput{Feed: Feed{Flow: 1, Fractions: []float64{0.5, 0.5}}, Split: []float64{0.5, 0.5}})
	require.NoError(t, err)

	res.Outlets[0].Fractions[0] = 9
	assert.Equal(t, 0.5, res.Outlets[1].Fractions[0])
}

func TestSplit_Errors(t *testing.T) {
	feed := Feed{Flow: 1, Fractions: []float64{1}}

	_, err := Split(SplitterInput{Feed: feed})
	assert.ErrorIs(t, err, ErrInsufficientSpecification)

	_, err = Split(SplitterInput{Feed: feed, Split: []float64{0, 0}})
	assert.ErrorIs(t, err, ErrInsufficientSpecification)

	_, err = Split(SplitterInput{Feed: feed, Split: []float64{0.5, -0.1}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSplit_WarnsOnEmptyFeed(t *testing.T) {
	res, err := Split(SplitterInput{Feed: Feed{Flow: 0, Fractions: []float64{0, 0}}, Split: []float64{0.5, 0.5}})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "feed: fractions normalized")
	assert.Equal(t, 0.0, res.Outlets[1].Flow)
}
