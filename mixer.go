package massbal

import (
	"fmt"
)

type MixerInput struct {
	Components []string
	Feeds      []Feed
}

type MixerResult struct {
	Product  Stream
	Warnings []string
}

// Mix combines N feeds into one product stream. Each feed composition is
// normalized on its own, then component flows are summed.
func Mix(in MixerInput) (*MixerResult, error) {
	if len(in.Feeds) == 0 {
		return nil, fmt.Errorf("%w: mixer needs at least one feed", ErrInsufficientSpecification)
	}

	width := streamWidth(in.Components, len(in.Feeds[0].Fractions))
	result := &MixerResult{}

	total := 0.0
	numer := zeros(width)
	for i, feed := range in.Feeds {
		x, warning, err := normalizeFeed(fmt.Sprintf("feed %d", i+1), feed, width)
		if err != nil {
			return nil, err
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		total += feed.Flow
		for j := range numer {
			numer[j] += feed.Flow * x[j]
		}
	}

	result.Product = mixStreams(total, numer, in.Components)
	return result, nil
}

// mixStreams turns summed component flows into a stream.
func mixStreams(total float64, numer []float64, components []string) Stream {
	if total > 0 {
		return Stream{Flow: total, Fractions: scale(numer, 1/total), Components: components}
	}
	return ZeroStream(len(numer), components)
}
