package massbal

import (
	"fmt"
	"math"
)

// RowColElimination scales the pivot row so the pivot becomes 1 and clears
// the pivot column from every other row.
func (m *Matrix) RowColElimination(row, col int) error {
	pivot := m.Data[row][col]
	if math.Abs(pivot) < m.Config.PivotThreshold {
		m.SingularRow = row
		m.SingularCol = col
		return fmt.Errorf("%w: pivot %g at row %d is below threshold", ErrSingularSystem, pivot, row)
	}

	pivotRow := m.Data[row]
	for j := col; j < m.Cols; j++ {
		pivotRow[j] /= pivot
	}

	for i := 0; i < m.Rows; i++ {
		if i == row {
			continue
		}
		factor := m.Data[i][col]
		if math.Abs(factor) < m.Config.PivotThreshold {
			continue
		}
		current := m.Data[i]
		for j := col; j < m.Cols; j++ {
			current[j] -= factor * pivotRow[j]
		}
	}

	return nil
}
