package massbal

import (
	"errors"
	"fmt"
	"math"
)

type SpecKind int

const (
	SPEC_OUTLET     SpecKind = iota // Σ_k ν_kj ξ_k = target - N_in[j]
	SPEC_CONVERSION                 // ξ_k = X N_in[j] / |ν_kj| for key reactant j of reaction k
)

func (k SpecKind) String() string {
	switch k {
	case SPEC_OUTLET:
		return "nout"
	case SPEC_CONVERSION:
		return "conv"
	}
	return "unknown"
}

// ExtentSpec is one equation of an auto-solved extent system.
type ExtentSpec struct {
	Kind      SpecKind
	Component int     // j
	Reaction  int     // k, conversion specs only
	Value     float64 // outlet flow or conversion
}

// MultiReactionInput describes R reactions over S components. Explicit
// Extents win; otherwise the extents are solved from Specs.
type MultiReactionInput struct {
	Components []string
	Inlet      []float64   // N_in, length S
	Nu         [][]float64 // R x S

	Extents []float64
	Specs   []ExtentSpec

	Config *Configuration // rank gate and extent solve, nil for defaults
}

type MultiReactionResult struct {
	Rank RankInfo

	Extents    []float64
	AutoSolved bool
	Fallback   bool // auto-solve was singular and extents were set to 0

	Outlet      []float64
	TotalOutlet float64
	Composition []float64

	Warnings []string
}

func ReactMulti(in MultiReactionInput) (*MultiReactionResult, error) {
	R := len(in.Nu)
	if R == 0 {
		return nil, fmt.Errorf("%w: no reactions", ErrInsufficientSpecification)
	}
	width := streamWidth(in.Components, len(in.Inlet))
	for k, row := range in.Nu {
		if err := checkReactionVectors(width, in.Inlet, row); err != nil {
			return nil, fmt.Errorf("reaction %d: %w", k+1, err)
		}
	}

	rank := MatrixRank(in.Nu, in.Config)
	if !rank.Independent {
		return nil, &RankError{Rank: rank.Rank, Rows: R, Pivots: rank.Pivots}
	}

	result := &MultiReactionResult{Rank: rank}

	switch {
	case len(in.Extents) == R:
		for k, xi := range in.Extents {
			if !isFinite(xi) {
				return nil, fmt.Errorf("%w: extent %d is %g", ErrInvalidInput, k+1, xi)
			}
		}
		result.Extents = append([]float64(nil), in.Extents...)

	case len(in.Specs) > 0:
		if len(in.Specs) < R {
			return nil, fmt.Errorf("%w: %d specifications for %d reactions", ErrInsufficientSpecification, len(in.Specs), R)
		}
		a, b, err := AssembleExtentSystem(in.Specs, in.Nu, in.Inlet)
		if err != nil {
			return nil, err
		}
		for i, s := range in.Specs {
			if s.Kind == SPEC_CONVERSION {
				clampWarn(fmt.Sprintf("spec %d conversion", i+1), s.Value, &result.Warnings)
			}
		}
		xi, err := SolveLinear(a, b, in.Config)
		switch {
		case errors.Is(err, ErrSingularSystem):
			xi = zeros(R)
			result.Fallback = true
			result.Warnings = append(result.Warnings, fmt.Sprintf("extent system has no unique solution (%v), extents set to 0", err))
		case err != nil:
			return nil, err
		}
		result.Extents = xi
		result.AutoSolved = true

	default:
		return nil, fmt.Errorf("%w: give %d extents or %d specifications", ErrInsufficientSpecification, R, R)
	}

	result.Outlet = make([]float64, width)
	for j := range result.Outlet {
		add := 0.0
		for k := 0; k < R; k++ {
			add += in.Nu[k][j] * result.Extents[k]
		}
		result.Outlet[j] = in.Inlet[j] + add
	}
	if err := checkOutletFlows(result.Outlet, in.Components); err != nil {
		return nil, fmt.Errorf("%w, extents too large for the reactants", err)
	}
	clearRoundoff(result.Outlet)

	result.TotalOutlet = Sum(result.Outlet)
	result.Composition = mixStreams(result.TotalOutlet, result.Outlet, nil).Fractions
	return result, nil
}

// Stream returns the outlet as a normalized stream.
func (r *MultiReactionResult) Stream(components []string) Stream {
	return Stream{Flow: r.TotalOutlet, Fractions: r.Composition, Components: components}
}

// AssembleExtentSystem maps each specification to one row of a x = b over
// the R extents, in the order given.
func AssembleExtentSystem(specs []ExtentSpec, nu [][]float64, inlet []float64) ([][]float64, []float64, error) {
	R := len(nu)
	a := make([][]float64, len(specs))
	b := make([]float64, len(specs))

	for i, s := range specs {
		a[i] = zeros(R)
		if s.Component < 0 || s.Component >= len(inlet) {
			return nil, nil, fmt.Errorf("%w: spec %d component %d out of range", ErrInvalidInput, i+1, s.Component)
		}
		if !isFinite(s.Value) {
			return nil, nil, fmt.Errorf("%w: spec %d value is %g", ErrInvalidInput, i+1, s.Value)
		}

		switch s.Kind {
		case SPEC_OUTLET:
			for k := 0; k < R; k++ {
				a[i][k] = nu[k][s.Component]
			}
			b[i] = s.Value - inlet[s.Component]

		case SPEC_CONVERSION:
			if s.Reaction < 0 || s.Reaction >= R {
				return nil, nil, fmt.Errorf("%w: spec %d reaction %d out of range", ErrInvalidInput, i+1, s.Reaction+1)
			}
			nuKey := nu[s.Reaction][s.Component]
			if nuKey >= 0 {
				return nil, nil, fmt.Errorf("%w: spec %d key component is not a reactant of reaction %d (ν=%g)",
					ErrDegenerateInput, i+1, s.Reaction+1, nuKey)
			}
			a[i][s.Reaction] = 1
			b[i] = Clamp01(s.Value) * inlet[s.Component] / math.Abs(nuKey)

		default:
			return nil, nil, fmt.Errorf("%w: spec %d has unknown kind %d", ErrInvalidInput, i+1, s.Kind)
		}
	}

	return a, b, nil
}
