package massbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReact_ConversionMatchesDirectExtent(t *testing.T) {
	base := ReactionInput{Inlet: []float64{2, 0}, Nu: []float64{-1, 1}}

	byConversion := base
	byConversion.Conversion = &Conversion{Key: 0, Value: 0.5}
	res, err := React(byConversion)
	require.NoError(t, err)
	assert.Equal(t, EXTENT_CONVERSION, res.Mode)
	assert.InDelta(t, 1.0, res.Extent, 1e-12)
	assert.InDeltaSlice(t, []float64{1, 1}, res.Outlet, 1e-12)

	direct := base
	direct.Extent = Given(1.0)
	res2, err := React(direct)
	require.NoError(t, err)
	assert.Equal(t, EXTENT_DIRECT, res2.Mode)
	assert.Equal(t, res.Outlet, res2.Outlet)
}

func TestReact_OutletTarget(t *testing.T) {
	res, err := React(ReactionInput{
		Inlet:  []float64{2, 0},
		Nu:     []float64{-1, 1},
		Outlet: &OutletTarget{Component: 1, Flow: 1.5},
	})
	require.NoError(t, err)
	assert.Equal(t, EXTENT_OUTLET, res.Mode)
	assert.InDelta(t, 1.5, res.Extent, 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 1.5}, res.Outlet, 1e-12)
}

func TestReact_Priority(t *testing.T) {
	res, err := React(ReactionInput{
		Inlet:      []float64{2, 0},
		Nu:         []float64{-1, 1},
		Extent:     Given(0.25),
		Conversion: &Conversion{Key: 0, Value: 0.9},
		Outlet:     &OutletTarget{Component: 1, Flow: 1.5},
	})
	require.NoError(t, err)
	assert.Equal(t, EXTENT_DIRECT, res.Mode)
	assert.Equal(t, 0.25, res.Extent)

	res, err = React(ReactionInput{
		Inlet:      []float64{2, 0},
		Nu:         []float64{-1, 1},
		Conversion: &Conversion{Key: 0, Value: 0.9},
		Outlet:     &OutletTarget{Component: 1, Flow: 1.5},
	})
	require.NoError(t, err)
	assert.Equal(t, EXTENT_CONVERSION, res.Mode)
}

func TestReact_Errors(t *testing.T) {
	_, err := React(ReactionInput{Inlet: []float64{2, 0}, Nu: []float64{-1, 1}})
	assert.ErrorIs(t, err, ErrInsufficientSpecification)

	_, err = React(ReactionInput{
		Inlet:      []float64{2, 0},
		Nu:         []float64{-1, 1},
		Conversion: &Conversion{Key: 1, Value: 0.5},
	})
	assert.ErrorIs(t, err, ErrDegenerateInput, "conversion of a product")

	_, err = React(ReactionInput{
		Inlet:  []float64{2, 0, 1},
		Nu:     []float64{-1, 1, 0},
		Outlet: &OutletTarget{Component: 2, Flow: 3},
	})
	assert.ErrorIs(t, err, ErrDegenerateInput, "outlet of an inert")

	_, err = React(ReactionInput{
		Inlet:  []float64{2, 0},
		Nu:     []float64{-1, 1},
		Extent: Given(3),
	})
	assert.ErrorIs(t, err, ErrInconsistent)
	assert.Contains(t, err.Error(), "negative outlet flow")

	_, err = React(ReactionInput{Inlet: []float64{2, 0}, Nu: []float64{-1}, Extent: Given(1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReact_AtomBalance(t *testing.T) {
	atoms := &AtomMatrix{
		Elements: []string{"C", "H", "O"},
		Alpha: [][]float64{
			{1, 4, 0}, // CH4
			{0, 0, 2}, // O2
			{1, 0, 2}, // CO2
			{0, 2, 1}, // H2O
		},
	}

	res, err := React(ReactionInput{
		Components: []string{"CH4", "O2", "CO2", "H2O"},
		Inlet:      []float64{1, 3, 0, 0},
		Nu:         []float64{-1, -2, 1, 2},
		Extent:     Given(1),
		Atoms:      atoms,
	})
	require.NoError(t, err)
	require.NotNil(t, res.AtomBalance)
	assert.True(t, res.AtomBalance.Conserved)
	assert.InDeltaSlice(t, []float64{1, 4, 6}, res.AtomBalance.In, 1e-12)
	assert.InDeltaSlice(t, res.AtomBalance.In, res.AtomBalance.Out, 1e-12)

	unbalanced, err := React(ReactionInput{
		Inlet:  []float64{1, 3, 0, 0},
		Nu:     []float64{-1, -1, 1, 2},
		Extent: Given(1),
		Atoms:  atoms,
	})
	require.NoError(t, err)
	assert.False(t, unbalanced.AtomBalance.Conserved)
	assert.InDeltaSlice(t, []float64{0, 2, 1, 2}, unbalanced.Outlet, 1e-12, "the extent is never altered")
}

func TestReact_Stream(t *testing.T) {
	res, err := React(ReactionInput{Inlet: []float64{2, 0}, Nu: []float64{-1, 1}, Extent: Given(0.5)})
	require.NoError(t, err)

	s := res.Stream([]string{"A", "B"})
	assert.InDelta(t, 2.0, s.Flow, 1e-12)
	assert.InDeltaSlice(t, []float64{0.75, 0.25}, s.Fractions, 1e-12)
}

func TestReact_RoundoffOutletIsZero(t *testing.T) {
	a, b := 0.1, 0.2
	res, err := React(ReactionInput{Inlet: []float64{0.3, 0}, Nu: []float64{-1, 1}, Extent: Given(a + b)})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, a + b}, res.Outlet)
}
