package massbal

import (
	"fmt"
	"math"
)

func NewStream(flow float64, fractions []float64, components []string) Stream {
	return Stream{
		Flow:       flow,
		Fractions:  append([]float64(nil), fractions...),
		Components: components,
	}
}

// ZeroStream has no flow and an all-zero composition of width n.
func ZeroStream(n int, components []string) Stream {
	return Stream{Fractions: zeros(n), Components: components}
}

// ComponentFlows returns Flow * Fractions[i] for every component.
func (s Stream) ComponentFlows() []float64 {
	return scale(s.Fractions, s.Flow)
}

// Valid reports whether the composition sums to 1, or the stream is empty.
func (s Stream) Valid() bool {
	if s.empty() {
		return true
	}
	return s.Flow >= 0 && SumsToOne(s.Fractions)
}

// empty reports a stream with no flow and no composition, as emitted by a
// unit with nothing upstream.
func (s Stream) empty() bool {
	return s.Flow == 0 && Sum(s.Fractions) == 0
}

func streamWidth(components []string, fallback int) int {
	if len(components) > 0 {
		return len(components)
	}
	return fallback
}

// normalizeFeed validates a raw feed against width and returns its
// normalized composition plus a warning when the raw sum was off.
func normalizeFeed(label string, f Feed, width int) ([]float64, string, error) {
	if !isFinite(f.Flow) || f.Flow < 0 {
		return nil, "", fmt.Errorf("%w: %s flow %g must be finite and non-negative", ErrInvalidInput, label, f.Flow)
	}
	if len(f.Fractions) != width {
		return nil, "", fmt.Errorf("%w: %s has %d fractions, expected %d", ErrInvalidInput, label, len(f.Fractions), width)
	}
	for i, x := range f.Fractions {
		if math.IsInf(x, 0) || x < 0 {
			return nil, "", fmt.Errorf("%w: %s fraction %d is %g", ErrInvalidInput, label, i, x)
		}
	}

	var warning string
	if s := Sum(f.Fractions); !WithinTolerance(s, 1, FRACTION_TOLERANCE) {
		warning = fmt.Sprintf("%s: fractions normalized (sum=%.6f)", label, s)
	}
	return Normalize(f.Fractions), warning, nil
}
