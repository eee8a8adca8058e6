package massbal

// Rank reduces a copy of m to reduced row echelon form and returns its rank
// together with the pivot positions in selection order. Columns without an
// admissible pivot are skipped.
func (m *Matrix) Rank() (int, []Pivot) {
	a := m.Copy()
	pivots := make([]Pivot, 0, min(m.Rows, m.Cols))

	row, col := 0, 0
	for row < a.Rows && col < a.Cols {
		sel, ok := a.SearchForPivot(row, col)
		if !ok {
			col++
			continue
		}

		a.ExchangeRows(row, sel, col)
		if err := a.RowColElimination(row, col); err != nil {
			col++
			continue
		}

		if m.Config.Annotate >= ANNOTATE_FULL {
			a.WriteStatus(row)
		}

		pivots = append(pivots, Pivot{Row: row, Col: col})
		row++
		col++
	}

	m.Reduced = true
	return len(pivots), pivots
}

// MatrixRank answers whether the rows of a are linearly independent.
func MatrixRank(a [][]float64, config *Configuration) RankInfo {
	info := RankInfo{Rows: len(a)}
	if len(a) == 0 || len(a[0]) == 0 {
		info.Independent = len(a) == 0
		return info
	}

	m, err := FromRows(a, config)
	if err != nil {
		return info
	}

	info.Rank, info.Pivots = m.Rank()
	info.Independent = info.Rank == info.Rows
	return info
}
