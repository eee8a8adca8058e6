package massbal

import "github.com/sirupsen/logrus"

const (
	PIVOT_THRESHOLD     float64 = 1e-12 // Smallest admissible pivot magnitude
	FRACTION_TOLERANCE  float64 = 1e-6  // Composition vectors must sum to 1 within this
	NEGATIVE_FLOW_LIMIT float64 = -1e-9 // Outlet flows below this are rejected
	BALANCE_TOLERANCE   float64 = 1e-8  // Separator overall balance closure
	FRACTION_SLACK      float64 = 1e-12 // Allowed overshoot of a fraction outside [0,1]
	ATOM_TOLERANCE      float64 = 1e-6  // Element balance closure

	DEFAULT_PRINTER_WIDTH int = 80

	ANNOTATE_NONE    int = 0
	ANNOTATE_STRANGE int = 1 // Log singular and fallback events
	ANNOTATE_FULL    int = 2 // Log every pivot step
)

type Configuration struct {
	PivotThreshold float64 // Absolute pivot threshold. default 1e-12
	PrinterWidth   int     // Default: 80
	Annotate       int     // 0: None, 1: OnStrangeBehavior, 2: Full

	Logger *logrus.Logger // nil means logrus standard logger
}

// Dense row-major matrix. Scratch storage for one solve, not shared.
type Matrix struct {
	Config Configuration

	Rows int
	Cols int

	Data [][]float64

	// Factoring status
	Factored bool // Gauss-Jordan reduction done
	Reduced  bool // Row echelon reduction done

	SingularRow int // Row where no pivot was found, -1 if none
	SingularCol int // Column where no pivot was found, -1 if none

	// Pivot of the last elimination step
	PivotsOriginalRow int
	PivotsOriginalCol int
	Exchanges         int
}

// Pivot is a (row, column) position selected during reduction.
type Pivot struct {
	Row int
	Col int
}

// RankInfo describes the row rank of a stoichiometric matrix.
type RankInfo struct {
	Rank        int
	Rows        int
	Pivots      []Pivot
	Independent bool
}

// PivotRows returns the row positions of the pivots.
func (r RankInfo) PivotRows() []int {
	rows := make([]int, len(r.Pivots))
	for i, p := range r.Pivots {
		rows[i] = p.Row
	}
	return rows
}

// Stream is a total flow plus a composition over the component set.
type Stream struct {
	Flow       float64
	Fractions  []float64
	Components []string
}

// Feed is a raw (flow, fractions) pair as entered, before normalization.
type Feed struct {
	Flow      float64
	Fractions []float64
}
