// Package refcurve holds the externally supplied reference curve used for
// flat-field calibration: (wavelength, value) samples with piecewise-linear
// interpolation and an explicit domain. Lookups outside the domain fail
// rather than clamp, so "no value" is always distinguishable from a zero
// value.
package refcurve

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// ErrOutOfDomain reports a wavelength lookup outside the curve's sampled
// range.
var ErrOutOfDomain = errors.New("refcurve: wavelength outside reference domain")

// Sample is one (wavelength, value) pair of the reference curve.
type Sample struct {
	Wavelength float64
	Value      float64
}

// Curve is an immutable piecewise-linear reference curve with an optional
// display/calibration scale factor applied on lookup.
type Curve struct {
	samples []Sample
	pl      interp.PiecewiseLinear
	lo, hi  float64
	scale   float64
}

// New builds a curve from at least two samples. Samples are sorted by
// wavelength; duplicate wavelengths are rejected since the interpolant
// needs strictly increasing abscissae.
func New(samples []Sample) (*Curve, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("refcurve: need at least 2 samples, got %d", len(samples))
	}

	sorted := append([]Sample(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Wavelength < sorted[j].Wavelength })

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, s := range sorted {
		if i > 0 && s.Wavelength == sorted[i-1].Wavelength {
			return nil, fmt.Errorf("refcurve: duplicate wavelength %v", s.Wavelength)
		}
		xs[i] = s.Wavelength
		ys[i] = s.Value
	}

	c := &Curve{
		samples: sorted,
		lo:      xs[0],
		hi:      xs[len(xs)-1],
		scale:   1,
	}
	if err := c.pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("refcurve: fit: %w", err)
	}
	return c, nil
}

// Domain returns the sampled wavelength range [lo, hi].
func (c *Curve) Domain() (lo, hi float64) {
	return c.lo, c.hi
}

// Samples returns the curve's samples sorted by wavelength.
func (c *Curve) Samples() []Sample {
	return c.samples
}

// Scale returns the multiplicative factor applied on lookup.
func (c *Curve) Scale() float64 {
	return c.scale
}

// SetScale sets the multiplicative factor applied on lookup.
// Non-positive factors are ignored.
func (c *Curve) SetScale(s float64) {
	if s > 0 {
		c.scale = s
	}
}

// ValueAt returns the interpolated reference value at the given wavelength,
// or ErrOutOfDomain if it lies outside the sampled range.
func (c *Curve) ValueAt(wavelength float64) (float64, error) {
	if wavelength < c.lo || wavelength > c.hi {
		return 0, fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfDomain, wavelength, c.lo, c.hi)
	}
	return c.pl.Predict(wavelength) * c.scale, nil
}
