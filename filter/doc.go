// Package filter implements the zero-phase low-pass smoothing primitive
// applied to spectrum rows. It is a spatial filter over the bin-index
// domain: a second-order Butterworth-characteristic biquad run once
// forward and once in reverse so the phase delay of the two passes
// cancels.
package filter
