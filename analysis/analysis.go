// Package analysis provides advisory diagnostics over built spectra. Its
// cutoff suggestion looks at the spatial-frequency content of the Sum row
// and proposes a normalized lowpass cutoff that keeps the signal's extent
// while cutting the bin-to-bin noise above it. The result feeds the
// filter's tunable cutoff; it carries no physical meaning beyond that.
package analysis

import (
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/spectro/filter"
)

// MinBins is the smallest Sum row the estimator accepts; below this the
// spectrum has too few bins for a meaningful frequency split.
const MinBins = 16

// thresholdFactor separates signal content from the noise floor: a
// spatial-frequency bin counts as content when its magnitude exceeds the
// floor by this factor.
const thresholdFactor = 4.0

// cutoffMargin widens the suggested cutoff beyond the detected content
// extent so the filter's transition band does not eat into it.
const cutoffMargin = 1.5

// SuggestCutoff estimates a normalized zero-phase filter cutoff from the
// Sum row's spatial-frequency content. The suggestion is clamped to the
// filter's valid cutoff range.
func SuggestCutoff(sum []float64) (float64, error) {
	if len(sum) < MinBins {
		return 0, fmt.Errorf("analysis: need at least %d bins, got %d", MinBins, len(sum))
	}

	fftSize := nextPow2(len(sum))
	in := make([]complex128, fftSize)

	// Mean removal keeps the DC bin from masking the content estimate;
	// the Hann window bounds leakage from the row's end discontinuity.
	mean := vecmath.Sum(sum) / float64(len(sum))
	for i, v := range sum {
		in[i] = complex((v-mean)*hann(i, len(sum)), 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("analysis: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("analysis: fft: %w", err)
	}

	half := fftSize / 2
	mag := magnitude(out[:half+1])

	floor := median(mag[1:])
	threshold := floor * thresholdFactor

	highest := 0
	for i := 1; i <= half; i++ {
		if mag[i] > threshold {
			highest = i
		}
	}
	if highest == 0 {
		// Nothing rises above the floor; any smoothing is safe.
		return filter.MinCutoff, nil
	}

	cutoff := cutoffMargin * float64(highest) / float64(half)
	return filter.ClampCutoff(cutoff), nil
}

func magnitude(in []complex128) []float64 {
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

func hann(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}

func median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
