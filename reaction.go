package massbal

import (
	"fmt"
	"math"
)

type ExtentMode int

const (
	EXTENT_DIRECT ExtentMode = iota
	EXTENT_CONVERSION
	EXTENT_OUTLET
)

func (m ExtentMode) String() string {
	switch m {
	case EXTENT_DIRECT:
		return "direct"
	case EXTENT_CONVERSION:
		return "conversion"
	case EXTENT_OUTLET:
		return "outlet"
	}
	return "unknown"
}

// Conversion fixes the fraction X of key reactant Key consumed.
type Conversion struct {
	Key   int
	Value float64
}

// OutletTarget fixes the outlet flow of one component.
type OutletTarget struct {
	Component int
	Flow      float64
}

// AtomMatrix holds α[species][element], used only to verify conservation.
type AtomMatrix struct {
	Elements []string
	Alpha    [][]float64
}

type AtomBalance struct {
	Elements  []string
	In        []float64
	Out       []float64
	Conserved bool
}

// ReactionInput describes a single reaction. The extent comes from Extent,
// else Conversion, else Outlet, in that order.
type ReactionInput struct {
	Components []string
	Inlet      []float64 // N_in
	Nu         []float64 // signed, negative for reactants

	Extent     *float64
	Conversion *Conversion
	Outlet     *OutletTarget

	Atoms *AtomMatrix
}

type ReactionResult struct {
	Extent float64
	Mode   ExtentMode
	Outlet []float64 // N_out

	AtomBalance *AtomBalance
	Warnings    []string
}

// Stream returns the outlet as a normalized stream.
func (r *ReactionResult) Stream(components []string) Stream {
	return mixStreams(Sum(r.Outlet), r.Outlet, components)
}

func React(in ReactionInput) (*ReactionResult, error) {
	width := streamWidth(in.Components, len(in.Inlet))
	if err := checkReactionVectors(width, in.Inlet, in.Nu); err != nil {
		return nil, err
	}

	result := &ReactionResult{}
	xi, mode, err := in.extent(&result.Warnings)
	if err != nil {
		return nil, err
	}
	result.Extent = xi
	result.Mode = mode

	result.Outlet = make([]float64, width)
	for i := range result.Outlet {
		result.Outlet[i] = in.Inlet[i] + in.Nu[i]*xi
	}
	if err := checkOutletFlows(result.Outlet, in.Components); err != nil {
		return nil, fmt.Errorf("%w, extent %g too large", err, xi)
	}
	clearRoundoff(result.Outlet)

	if in.Atoms != nil {
		balance, err := AtomTotals(in.Inlet, result.Outlet, *in.Atoms)
		if err != nil {
			return nil, err
		}
		result.AtomBalance = balance
	}

	return result, nil
}

func (in ReactionInput) extent(warnings *[]string) (float64, ExtentMode, error) {
	if in.Extent != nil {
		if !isFinite(*in.Extent) {
			return 0, EXTENT_DIRECT, fmt.Errorf("%w: extent is %g", ErrInvalidInput, *in.Extent)
		}
		return *in.Extent, EXTENT_DIRECT, nil
	}

	if c := in.Conversion; c != nil {
		if c.Key < 0 || c.Key >= len(in.Nu) {
			return 0, EXTENT_CONVERSION, fmt.Errorf("%w: key component %d out of range", ErrInvalidInput, c.Key)
		}
		nuK := in.Nu[c.Key]
		if nuK >= 0 {
			return 0, EXTENT_CONVERSION, fmt.Errorf("%w: choose a reactant with negative ν for the conversion (ν=%g)", ErrDegenerateInput, nuK)
		}
		X := clampWarn("conversion", c.Value, warnings)
		return X * in.Inlet[c.Key] / math.Abs(nuK), EXTENT_CONVERSION, nil
	}

	if o := in.Outlet; o != nil {
		if o.Component < 0 || o.Component >= len(in.Nu) {
			return 0, EXTENT_OUTLET, fmt.Errorf("%w: component %d out of range", ErrInvalidInput, o.Component)
		}
		nuJ := in.Nu[o.Component]
		if math.Abs(nuJ) < PIVOT_THRESHOLD {
			return 0, EXTENT_OUTLET, fmt.Errorf("%w: zero ν cannot determine the extent", ErrDegenerateInput)
		}
		return (o.Flow - in.Inlet[o.Component]) / nuJ, EXTENT_OUTLET, nil
	}

	return 0, EXTENT_DIRECT, fmt.Errorf("%w: give an extent, a conversion or an outlet flow", ErrInsufficientSpecification)
}

// AtomTotals computes Σ_j α[j][e] N[j] for inlet and outlet.
func AtomTotals(inlet, outlet []float64, atoms AtomMatrix) (*AtomBalance, error) {
	if len(atoms.Alpha) != len(inlet) {
		return nil, fmt.Errorf("%w: atom matrix has %d species, expected %d", ErrInvalidInput, len(atoms.Alpha), len(inlet))
	}
	for j, row := range atoms.Alpha {
		if len(row) != len(atoms.Elements) {
			return nil, fmt.Errorf("%w: atom row %d has %d elements, expected %d", ErrInvalidInput, j, len(row), len(atoms.Elements))
		}
	}

	totals := func(N []float64) []float64 {
		t := zeros(len(atoms.Elements))
		for e := range t {
			for j, row := range atoms.Alpha {
				t[e] += row[e] * N[j]
			}
		}
		return t
	}

	balance := &AtomBalance{
		Elements:  atoms.Elements,
		In:        totals(inlet),
		Out:       totals(outlet),
		Conserved: true,
	}
	for e := range balance.In {
		if math.Abs(balance.In[e]-balance.Out[e]) >= ATOM_TOLERANCE {
			balance.Conserved = false
		}
	}
	return balance, nil
}

func checkReactionVectors(width int, inlet, nu []float64) error {
	if width == 0 {
		return fmt.Errorf("%w: no components", ErrInvalidInput)
	}
	if len(inlet) != width {
		return fmt.Errorf("%w: %d inlet flows, expected %d", ErrInvalidInput, len(inlet), width)
	}
	if len(nu) != width {
		return fmt.Errorf("%w: %d stoichiometric coefficients, expected %d", ErrInvalidInput, len(nu), width)
	}
	for i, n := range inlet {
		if !isFinite(n) || n < 0 {
			return fmt.Errorf("%w: inlet flow %d is %g", ErrInvalidInput, i, n)
		}
		if !isFinite(nu[i]) {
			return fmt.Errorf("%w: ν %d is %g", ErrInvalidInput, i, nu[i])
		}
	}
	return nil
}

// clearRoundoff zeroes the outlet flows that checkOutletFlows let through
// as negative within NEGATIVE_FLOW_LIMIT.
func clearRoundoff(outlet []float64) {
	for i, n := range outlet {
		if n < 0 {
			outlet[i] = 0
		}
	}
}

func checkOutletFlows(outlet []float64, components []string) error {
	for i, n := range outlet {
		if n < NEGATIVE_FLOW_LIMIT {
			name := fmt.Sprint(i)
			if i < len(components) {
				name = components[i]
			}
			return fmt.Errorf("%w: negative outlet flow %g for %s", ErrInconsistent, n, name)
		}
	}
	return nil
}
