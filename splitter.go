package massbal

import (
	"fmt"
)

type SplitterInput struct {
	Components []string
	Feed       Feed
	Split      []float64 // φ_1..φ_N, normalized before use
}

type SplitterResult struct {
	Outlets  []Stream
	Split    []float64 // normalized φ
	Warnings []string
}

// Split partitions one feed into N outlets of identical composition.
func Split(in SplitterInput) (*SplitterResult, error) {
	width := streamWidth(in.Components, len(in.Feed.Fractions))
	x, warning, err := normalizeFeed("feed", in.Feed, width)
	if err != nil {
		return nil, err
	}

	result := &SplitterResult{}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	phi, warning, err := splitFractions(in.Split)
	if err != nil {
		return nil, err
	}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	result.Split = phi
	result.Outlets = splitStream(Stream{Flow: in.Feed.Flow, Fractions: x, Components: in.Components}, phi)
	return result, nil
}

// splitFractions validates φ and normalizes it to unit sum.
func splitFractions(split []float64) ([]float64, string, error) {
	if len(split) == 0 {
		return nil, "", fmt.Errorf("%w: splitter needs at least one split fraction", ErrInsufficientSpecification)
	}
	for i, phi := range split {
		if !isFinite(phi) || phi < 0 {
			return nil, "", fmt.Errorf("%w: split fraction %d is %g", ErrInvalidInput, i+1, phi)
		}
	}

	s := Sum(split)
	if s <= 0 {
		return nil, "", fmt.Errorf("%w: split fractions are all zero", ErrInsufficientSpecification)
	}

	var warning string
	if !WithinTolerance(s, 1, FRACTION_TOLERANCE) {
		warning = fmt.Sprintf("split fractions normalized (sum=%.6f)", s)
	}
	return Normalize(split), warning, nil
}

func splitStream(feed Stream, phi []float64) []Stream {
	outlets := make([]Stream, len(phi))
	for i, p := range phi {
		outlets[i] = NewStream(p*feed.Flow, feed.Fractions, feed.Components)
	}
	return outlets
}
