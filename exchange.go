package massbal

// ExchangeRows swaps the pivot row into place and records where the pivot
// came from.
func (m *Matrix) ExchangeRows(step, row, col int) {
	m.PivotsOriginalRow = row
	m.PivotsOriginalCol = col

	if row == step {
		return
	}

	m.Data[step], m.Data[row] = m.Data[row], m.Data[step]
	m.Exchanges++
}
