package massbal

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveLinear_Square(t *testing.T) {
	x, err := SolveLinear([][]float64{{2, 1}, {1, 3}}, []float64{3, 5}, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.8, 1.4}, x, 1e-12)
}

func TestSolveLinear_NeedsPivoting(t *testing.T) {
	x, err := SolveLinear([][]float64{{0, 1}, {1, 0}}, []float64{2, 3}, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 2}, x, 1e-12)
}

func TestSolveLinear_ThreeByThree(t *testing.T) {
	a := [][]float64{
		{4, -2, 1},
		{-2, 4, -2},
		{1, -2, 4},
	}
	want := []float64{1, 2, 3}

	m, err := FromRows(a, nil)
	require.NoError(t, err)
	b, err := m.MultiplyVector(want)
	require.NoError(t, err)

	x, err := m.Solve(b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, x, 1e-12)
	assert.True(t, m.Factored)
}

func TestSolve_Singular(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2}, {2, 4}}, nil)
	require.NoError(t, err)

	_, err = m.Solve([]float64{1, 2})
	require.ErrorIs(t, err, ErrSingularSystem)
	assert.Equal(t, 1, m.SingularCol)
	assert.False(t, m.Factored)
}

func TestSolve_LeastSquaresConsistent(t *testing.T) {
	x, err := SolveLinear([][]float64{{1, 0}, {0, 1}, {1, 1}}, []float64{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2}, x, 1e-12)
}

func TestSolve_LeastSquaresFit(t *testing.T) {
	x, err := SolveLinear([][]float64{{1}, {1}}, []float64{1, 3}, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2}, x, 1e-12)
}

func TestSolve_Underdetermined(t *testing.T) {
	_, err := SolveLinear([][]float64{{1, 1}}, []float64{2}, nil)
	assert.ErrorIs(t, err, ErrSingularSystem)
}

func TestSolve_RhsMismatch(t *testing.T) {
	_, err := SolveLinear([][]float64{{1, 0}, {0, 1}}, []float64{1}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_Invalid(t *testing.T) {
	_, err := Create(0, 3, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FromRows([][]float64{{1, 2}, {3}}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_Defaults(t *testing.T) {
	m, err := Create(2, 3, &Configuration{})
	require.NoError(t, err)
	assert.Equal(t, PIVOT_THRESHOLD, m.Config.PivotThreshold)
	assert.Equal(t, DEFAULT_PRINTER_WIDTH, m.Config.PrinterWidth)
	assert.Equal(t, -1, m.SingularRow)

	m.Set(1, 2, 5)
	assert.Equal(t, 5.0, m.GetElement(1, 2))
	assert.Equal(t, 5.0, m.LargestElement())

	m.Clear()
	assert.Equal(t, 0.0, m.GetElement(1, 2))
}

func TestMatrix_TransposeMultiply(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}}, nil)
	require.NoError(t, err)

	tr := m.Transpose()
	assert.Equal(t, 3, tr.Rows)
	assert.Equal(t, 2, tr.Cols)
	assert.Equal(t, 6.0, tr.GetElement(2, 1))

	p, err := m.Multiply(tr)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{14, 32}, {32, 77}}, p.Data)

	_, err = m.Multiply(m)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatrix_Print(t *testing.T) {
	m, err := FromRows([][]float64{{1, 0}, {0, 2.5}}, nil)
	require.NoError(t, err)

	out := m.String()
	assert.Contains(t, out, "MATRIX SUMMARY")
	assert.Contains(t, out, "Size of matrix = 2 x 2.")
	assert.Contains(t, out, "2.5")
	assert.Contains(t, out, "...")
}

func TestSolve_AnnotateLogsPivots(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	m, err := FromRows([][]float64{{0, 1}, {1, 0}}, &Configuration{Annotate: ANNOTATE_FULL, Logger: logger})
	require.NoError(t, err)

	_, err = m.Solve([]float64{1, 1})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "pivot selected")
	assert.Equal(t, 1, m.Exchanges)
}
