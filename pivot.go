package massbal

import (
	"math"
)

// SearchForPivot picks the row at or below step holding the largest
// magnitude in col. ok is false when that magnitude is below the pivot
// threshold.
func (m *Matrix) SearchForPivot(step, col int) (row int, ok bool) {
	row, largest := m.FindBiggestInCol(col, step)
	if row < 0 || largest < m.Config.PivotThreshold {
		return -1, false
	}
	return row, true
}

// FindBiggestInCol returns the first row holding the largest magnitude in
// col among rows step..Rows-1. Ties keep the upper row.
func (m *Matrix) FindBiggestInCol(col, step int) (int, float64) {
	if step >= m.Rows {
		return -1, 0.0
	}

	best := step
	largest := math.Abs(m.Data[step][col])
	for i := step + 1; i < m.Rows; i++ {
		magnitude := math.Abs(m.Data[i][col])
		if magnitude > largest {
			largest = magnitude
			best = i
		}
	}

	return best, largest
}

// LargestElement returns the largest magnitude in the matrix.
func (m *Matrix) LargestElement() float64 {
	var largest float64
	for i := range m.Data {
		for _, v := range m.Data[i] {
			if mag := math.Abs(v); mag > largest {
				largest = mag
			}
		}
	}
	return largest
}
