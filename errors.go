package massbal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInsufficientSpecification = errors.New("insufficient specification")
	ErrInconsistent              = errors.New("specifications incompatible")
	ErrDegenerateInput           = errors.New("indeterminate")
	ErrRankDeficiency            = errors.New("reactions are not linearly independent")
	ErrGraphCycle                = errors.New("cycle detected, the flowsheet must be acyclic")
	ErrSingularSystem            = errors.New("no unique solution")
	ErrInvalidInput              = errors.New("invalid input")
)

// RankError is returned when a stoichiometric matrix has dependent rows.
type RankError struct {
	Rank   int
	Rows   int
	Pivots []Pivot
}

func (e *RankError) Error() string {
	rows := make([]string, len(e.Pivots))
	for i, p := range e.Pivots {
		rows[i] = fmt.Sprint(p.Row + 1)
	}
	return fmt.Sprintf("%v: rank %d of %d reactions, choose %d independent reactions (pivot rows %s)",
		ErrRankDeficiency, e.Rank, e.Rows, e.Rank, strings.Join(rows, ", "))
}

func (e *RankError) Unwrap() error {
	return ErrRankDeficiency
}

// UnitError identifies the flowsheet unit whose evaluation failed.
type UnitError struct {
	ID   string
	Kind UnitKind
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %s (%s): %v", e.ID, e.Kind, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// Kind returns the taxonomy label of err, or "" for nil.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrGraphCycle):
		return "GraphCycle"
	case errors.Is(err, ErrRankDeficiency):
		return "RankDeficiency"
	case errors.Is(err, ErrSingularSystem):
		return "SingularSystem"
	case errors.Is(err, ErrInsufficientSpecification):
		return "InsufficientSpecification"
	case errors.Is(err, ErrInconsistent):
		return "OverconstrainedOrInconsistent"
	case errors.Is(err, ErrDegenerateInput):
		return "DegenerateInput"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	}
	return "Unknown"
}
