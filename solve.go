package massbal

import (
	"fmt"
)

// Solve returns x with A x = rhs. Square systems use Gauss-Jordan
// elimination with partial pivoting; any other shape is solved in the least
// squares sense through the normal equations.
func (m *Matrix) Solve(rhs []float64) (solution []float64, err error) {
	if m.Data == nil {
		return nil, fmt.Errorf("%w: matrix destroyed", ErrInvalidInput)
	}
	if m.Rows != m.Cols {
		return m.SolveLeastSquares(rhs)
	}

	a, err := m.augment(rhs)
	if err != nil {
		return nil, err
	}

	size := m.Rows
	for step := 0; step < size; step++ {
		row, ok := a.SearchForPivot(step, step)
		if !ok {
			m.SingularRow = step
			m.SingularCol = step
			if m.Config.Annotate >= ANNOTATE_STRANGE {
				m.logger().WithField("col", step).Debug("no admissible pivot")
			}
			return nil, fmt.Errorf("%w: no pivot in column %d", ErrSingularSystem, step)
		}

		a.ExchangeRows(step, row, step)
		if err := a.RowColElimination(step, step); err != nil {
			m.SingularRow, m.SingularCol = a.SingularRow, a.SingularCol
			return nil, err
		}

		if m.Config.Annotate >= ANNOTATE_FULL {
			a.WriteStatus(step)
		}
	}

	m.Factored = true
	m.Exchanges = a.Exchanges

	solution = make([]float64, size)
	for i := 0; i < size; i++ {
		solution[i] = a.Data[i][size]
	}

	return solution, nil
}

// SolveLeastSquares solves AᵗA x = Aᵗ rhs.
func (m *Matrix) SolveLeastSquares(rhs []float64) ([]float64, error) {
	if len(rhs) != m.Rows {
		return nil, fmt.Errorf("%w: rhs length %d does not match %d rows", ErrInvalidInput, len(rhs), m.Rows)
	}

	at := m.Transpose()
	ata, err := at.Multiply(m)
	if err != nil {
		return nil, err
	}
	atb, err := at.MultiplyVector(rhs)
	if err != nil {
		return nil, err
	}

	solution, err := ata.Solve(atb)
	if err != nil {
		m.SingularRow, m.SingularCol = ata.SingularRow, ata.SingularCol
		return nil, fmt.Errorf("normal equations: %w", err)
	}

	m.Factored = true
	return solution, nil
}

// SolveLinear solves a x = b for a given as rows. A nil config uses the
// defaults of Create.
func SolveLinear(a [][]float64, b []float64, config *Configuration) ([]float64, error) {
	m, err := FromRows(a, config)
	if err != nil {
		return nil, err
	}
	return m.Solve(b)
}
