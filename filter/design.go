package filter

import "math"

// QButterworth is the quality factor of a second-order Butterworth
// (maximally flat) lowpass section.
var QButterworth = 1 / math.Sqrt2

// Lowpass designs an RBJ cookbook lowpass biquad at freq with quality
// factor q against the given sample rate. Coefficients are normalized so
// a0 = 1.
func Lowpass(freq, q, sampleRate float64) Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	norm := 1 / a0
	return Coefficients{
		B0: b0 * norm,
		B1: b1 * norm,
		B2: b2 * norm,
		A1: a1 * norm,
		A2: a2 * norm,
	}
}
