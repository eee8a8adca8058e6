package massbal

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

func Create(rows, cols int, config *Configuration) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: invalid matrix size %dx%d", ErrInvalidInput, rows, cols)
	}

	defaultConfig := Configuration{
		PivotThreshold: PIVOT_THRESHOLD,
		PrinterWidth:   DEFAULT_PRINTER_WIDTH,
		Annotate:       ANNOTATE_NONE,
	}

	if config == nil {
		config = &defaultConfig
	}

	m := &Matrix{
		Config:      *config,
		Rows:        rows,
		Cols:        cols,
		Data:        make([][]float64, rows),
		SingularRow: -1,
		SingularCol: -1,
	}
	if m.Config.PivotThreshold <= 0.0 {
		m.Config.PivotThreshold = PIVOT_THRESHOLD
	}
	if m.Config.PrinterWidth <= 0 {
		m.Config.PrinterWidth = DEFAULT_PRINTER_WIDTH
	}

	for i := range m.Data {
		m.Data[i] = make([]float64, cols)
	}

	return m, nil
}

// FromRows copies a rectangular slice of rows into a new matrix.
func FromRows(rows [][]float64, config *Configuration) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidInput)
	}

	m, err := Create(len(rows), len(rows[0]), config)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if len(row) != m.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidInput, i, len(row), m.Cols)
		}
		copy(m.Data[i], row)
	}

	return m, nil
}

func (m *Matrix) logger() *logrus.Logger {
	if m.Config.Logger != nil {
		return m.Config.Logger
	}
	return logrus.StandardLogger()
}

func (m *Matrix) GetElement(row, col int) float64 {
	return m.Data[row][col]
}

func (m *Matrix) Set(row, col int, value float64) {
	m.Data[row][col] = value
}

func (m *Matrix) Clear() {
	for i := range m.Data {
		for j := range m.Data[i] {
			m.Data[i][j] = 0.0
		}
	}

	m.Factored = false
	m.Reduced = false
	m.SingularRow = -1
	m.SingularCol = -1
	m.Exchanges = 0
}

func (m *Matrix) Copy() *Matrix {
	c := &Matrix{
		Config:      m.Config,
		Rows:        m.Rows,
		Cols:        m.Cols,
		Data:        make([][]float64, m.Rows),
		SingularRow: -1,
		SingularCol: -1,
	}
	for i := range m.Data {
		c.Data[i] = append([]float64(nil), m.Data[i]...)
	}
	return c
}

func (m *Matrix) Transpose() *Matrix {
	t, _ := Create(m.Cols, m.Rows, &m.Config)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			t.Data[j][i] = m.Data[i][j]
		}
	}
	return t
}

func (m *Matrix) Multiply(other *Matrix) (*Matrix, error) {
	if m.Cols != other.Rows {
		return nil, fmt.Errorf("%w: cannot multiply %dx%d by %dx%d", ErrInvalidInput, m.Rows, m.Cols, other.Rows, other.Cols)
	}

	result, err := Create(m.Rows, other.Cols, &m.Config)
	if err != nil {
		return nil, err
	}

	for i := 0; i < m.Rows; i++ {
		for k := 0; k < m.Cols; k++ {
			a := m.Data[i][k]
			if a == 0.0 {
				continue
			}
			for j := 0; j < other.Cols; j++ {
				result.Data[i][j] += a * other.Data[k][j]
			}
		}
	}

	return result, nil
}

func (m *Matrix) MultiplyVector(v []float64) ([]float64, error) {
	if len(v) != m.Cols {
		return nil, fmt.Errorf("%w: vector length %d does not match %d columns", ErrInvalidInput, len(v), m.Cols)
	}

	result := make([]float64, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			result[i] += m.Data[i][j] * v[j]
		}
	}
	return result, nil
}

// augment returns [m | rhs] as a new matrix with one extra column.
func (m *Matrix) augment(rhs []float64) (*Matrix, error) {
	if len(rhs) != m.Rows {
		return nil, fmt.Errorf("%w: rhs length %d does not match %d rows", ErrInvalidInput, len(rhs), m.Rows)
	}

	a, err := Create(m.Rows, m.Cols+1, &m.Config)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.Rows; i++ {
		copy(a.Data[i], m.Data[i])
		a.Data[i][m.Cols] = rhs[i]
	}
	return a, nil
}

func (m *Matrix) Destroy() {
	m.Data = nil
	m.Rows = 0
	m.Cols = 0
}
