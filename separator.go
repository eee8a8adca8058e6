package massbal

import (
	"fmt"
	"math"
)

// SeparatorInput describes a binary split of key component A. Exactly one
// of Distillate, DistillateA, Bottoms, BottomsA must be given.
type SeparatorInput struct {
	Components []string // names of A and B, optional

	Feed     float64 // F
	FeedA    float64 // z_A
	Recovery float64 // R_A, fraction of A reporting to the distillate

	Distillate  *float64 // D
	DistillateA *float64 // x_D
	Bottoms     *float64 // B
	BottomsA    *float64 // x_B
}

type SeparatorResult struct {
	Distillate Stream
	Bottoms    Stream

	D  float64
	B  float64
	XD float64 // fraction of A in the distillate
	XB float64 // fraction of A in the bottoms

	Bypass   bool // no specification, feed routed to bottoms
	Warnings []string
}

// Given wraps a value for one of the optional separator specifications.
func Given(v float64) *float64 {
	return &v
}

func (in SeparatorInput) specCount() int {
	n := 0
	for _, v := range []*float64{in.Distillate, in.DistillateA, in.Bottoms, in.BottomsA} {
		if v != nil {
			n++
		}
	}
	return n
}

// Separate solves D + B = F and D x_D + B x_B = F z_A with R_A F z_A of A
// going to the distillate, using the single extra specification given.
func Separate(in SeparatorInput) (*SeparatorResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	result := &SeparatorResult{}
	F := in.Feed
	zA := clampWarn("z_A", in.FeedA, &result.Warnings)
	RA := clampWarn("R_A", in.Recovery, &result.Warnings)

	switch n := in.specCount(); {
	case n == 0:
		return nil, fmt.Errorf("%w: give one of D, x_D, B or x_B", ErrInsufficientSpecification)
	case n > 1:
		return nil, fmt.Errorf("%w: give exactly one of D, x_D, B or x_B, got %d", ErrInconsistent, n)
	}

	aTop := RA * F * zA
	aBottom := F*zA - aTop

	var D, B, xD, xB float64
	var err error
	switch {
	case in.BottomsA != nil:
		xB = clampWarn("x_B", *in.BottomsA, &result.Warnings)
		if math.Abs(xB) < PIVOT_THRESHOLD {
			return nil, fmt.Errorf("%w: x_B = 0 leaves B undetermined", ErrDegenerateInput)
		}
		B = aBottom / xB
		D = F - B
		if xD, err = fractionOf("distillate", aTop, D); err != nil {
			return nil, err
		}

	case in.Bottoms != nil:
		B = *in.Bottoms
		D = F - B
		if xD, err = fractionOf("distillate", aTop, D); err != nil {
			return nil, err
		}
		if xB, err = fractionOf("bottoms", aBottom, B); err != nil {
			return nil, err
		}

	case in.Distillate != nil:
		D = *in.Distillate
		B = F - D
		if xD, err = fractionOf("distillate", aTop, D); err != nil {
			return nil, err
		}
		if xB, err = fractionOf("bottoms", aBottom, B); err != nil {
			return nil, err
		}

	case in.DistillateA != nil:
		xD = clampWarn("x_D", *in.DistillateA, &result.Warnings)
		if math.Abs(xD) < PIVOT_THRESHOLD {
			return nil, fmt.Errorf("%w: x_D = 0 leaves D undetermined", ErrDegenerateInput)
		}
		D = aTop / xD
		B = F - D
		if xB, err = fractionOf("bottoms", aBottom, B); err != nil {
			return nil, err
		}
	}

	if err := checkSeparation(F, D, B, xD, xB); err != nil {
		return nil, err
	}

	result.fill(D, B, xD, xB, in.Components)
	return result, nil
}

// BypassSeparation is the flowsheet default for a separator with no
// specification: nothing leaves overhead (D = 0) and the bottoms take the
// feed flow with the A left after recovery.
func BypassSeparation(feed, feedA, recovery float64, components []string) *SeparatorResult {
	zA := Clamp01(feedA)
	RA := Clamp01(recovery)

	xB := 0.0
	if feed > 0 {
		xB = (feed*zA - RA*feed*zA) / feed
	}

	result := &SeparatorResult{Bypass: true}
	result.fill(0, feed, 0, xB, components)
	result.Warnings = append(result.Warnings, "no separator specification, feed bypassed to bottoms (D = 0)")
	return result
}

func (in SeparatorInput) validate() error {
	if len(in.Components) != 0 && len(in.Components) != 2 {
		return fmt.Errorf("%w: binary separator tracks exactly 2 components, got %d", ErrInvalidInput, len(in.Components))
	}
	if !isFinite(in.Feed) || in.Feed < 0 {
		return fmt.Errorf("%w: feed flow %g", ErrInvalidInput, in.Feed)
	}
	for name, v := range map[string]*float64{"D": in.Distillate, "x_D": in.DistillateA, "B": in.Bottoms, "x_B": in.BottomsA} {
		if v != nil && !isFinite(*v) {
			return fmt.Errorf("%w: %s is %g", ErrInvalidInput, name, *v)
		}
	}
	return nil
}

func (r *SeparatorResult) fill(D, B, xD, xB float64, components []string) {
	r.D, r.B = D, B
	r.XD, r.XB = Clamp01(xD), Clamp01(xB)
	r.Distillate = Stream{Flow: D, Fractions: []float64{r.XD, 1 - r.XD}, Components: components}
	r.Bottoms = Stream{Flow: B, Fractions: []float64{r.XB, 1 - r.XB}, Components: components}
}

// fractionOf divides the A flow of a product by its total flow. A product
// with no flow is only admissible when it carries no A.
func fractionOf(product string, aFlow, flow float64) (float64, error) {
	if math.Abs(flow) < PIVOT_THRESHOLD {
		if math.Abs(aFlow) < PIVOT_THRESHOLD {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %s has no flow but carries %g of A", ErrDegenerateInput, product, aFlow)
	}
	return aFlow / flow, nil
}

func checkSeparation(F, D, B, xD, xB float64) error {
	inRange := func(x float64) bool {
		return x >= -FRACTION_SLACK && x <= 1+FRACTION_SLACK
	}

	switch {
	case D < 0:
		return fmt.Errorf("%w: D = %g is negative", ErrInconsistent, D)
	case B < 0:
		return fmt.Errorf("%w: B = %g is negative", ErrInconsistent, B)
	case math.Abs(D+B-F) >= BALANCE_TOLERANCE:
		return fmt.Errorf("%w: D + B = %g does not match F = %g", ErrInconsistent, D+B, F)
	case !inRange(xD):
		return fmt.Errorf("%w: x_D = %g outside [0,1]", ErrInconsistent, xD)
	case !inRange(xB):
		return fmt.Errorf("%w: x_B = %g outside [0,1]", ErrInconsistent, xB)
	}
	return nil
}

func clampWarn(name string, x float64, warnings *[]string) float64 {
	c := Clamp01(x)
	if c != x {
		*warnings = append(*warnings, fmt.Sprintf("%s = %g clamped to %g", name, x, c))
	}
	return c
}
