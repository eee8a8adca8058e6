package massbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixRank_Dependent(t *testing.T) {
	info := MatrixRank([][]float64{{-1, 1}, {-2, 2}}, nil)
	assert.Equal(t, 1, info.Rank)
	assert.Equal(t, 2, info.Rows)
	assert.False(t, info.Independent)
	assert.Equal(t, []Pivot{{Row: 0, Col: 0}}, info.Pivots)
}

func TestMatrixRank_Independent(t *testing.T) {
	info := MatrixRank([][]float64{{-1, 1, 0}, {0, -1, 1}}, nil)
	assert.Equal(t, 2, info.Rank)
	assert.True(t, info.Independent)
	assert.Equal(t, []int{0, 1}, info.PivotRows())
}

func TestMatrixRank_SkipsEmptyColumn(t *testing.T) {
	info := MatrixRank([][]float64{{0, 1, 0}, {0, 2, 1}}, nil)
	assert.Equal(t, 2, info.Rank)
	assert.Equal(t, []Pivot{{Row: 0, Col: 1}, {Row: 1, Col: 2}}, info.Pivots)
}

func TestMatrixRank_MoreReactionsThanComponents(t *testing.T) {
	info := MatrixRank([][]float64{{-1, 1}, {1, -2}, {0, 3}}, nil)
	assert.Equal(t, 2, info.Rank)
	assert.False(t, info.Independent)
}

func TestMatrixRank_Empty(t *testing.T) {
	info := MatrixRank(nil, nil)
	assert.Equal(t, 0, info.Rank)
	assert.True(t, info.Independent)
}

func TestRank_LeavesMatrixUntouched(t *testing.T) {
	m, _ := FromRows([][]float64{{2, 4}, {1, 3}}, nil)
	rank, _ := m.Rank()
	assert.Equal(t, 2, rank)
	assert.Equal(t, [][]float64{{2, 4}, {1, 3}}, m.Data)
	assert.True(t, m.Reduced)
}
