// Package calib maps spectral bin indices to wavelengths via a two-anchor
// affine calibration and holds the optional per-bin reference scaling used
// for flat-fielding.
package calib

import "fmt"

// Anchor ties one bin index to a known wavelength.
type Anchor struct {
	Index      int
	Wavelength float64
}

// Mapping is an affine index-to-wavelength map defined by two anchors.
// Valid mappings satisfy Low.Index < High.Index and
// Low.Wavelength < High.Wavelength; NewMapping enforces this. WavelengthAt
// performs no checks, so constructing a Mapping by hand with equal indices
// is a caller bug (division by zero).
type Mapping struct {
	Low, High Anchor
}

// NewMapping validates the anchors and returns the mapping.
func NewMapping(low, high Anchor) (Mapping, error) {
	if low.Index >= high.Index {
		return Mapping{}, fmt.Errorf("calib: anchor indices not ascending: %d >= %d", low.Index, high.Index)
	}
	if low.Wavelength >= high.Wavelength {
		return Mapping{}, fmt.Errorf("calib: anchor wavelengths not ascending: %v >= %v", low.Wavelength, high.Wavelength)
	}
	return Mapping{Low: low, High: high}, nil
}

// WavelengthAt returns the wavelength of a (possibly fractional) bin index.
// The map is linear and extrapolates beyond the anchors without clamping.
func (m Mapping) WavelengthAt(index float64) float64 {
	slope := (m.High.Wavelength - m.Low.Wavelength) / float64(m.High.Index-m.Low.Index)
	return m.Low.Wavelength + (index-float64(m.Low.Index))*slope
}

// Scaling is an optional per-bin multiplicative correction. A nil Scaling
// is the identity.
type Scaling []float64

// FactorAt returns the correction factor for bin i, or 1.0 when no factor
// is present (unset scaling or out-of-range index).
func (s Scaling) FactorAt(i int) float64 {
	if i < 0 || i >= len(s) {
		return 1
	}
	return s[i]
}

// Reference is a wavelength-to-value lookup with an explicit domain.
// Lookups outside the domain return an error, never a substituted value.
type Reference interface {
	ValueAt(wavelength float64) (float64, error)
}

// ScalingFromReference derives the flat-fielding vector for the given
// measured Sum row: scaling[i] = reference(wavelengthAt(i)) / sum[i].
// It fails without partial result if any bin's wavelength falls outside
// the reference domain.
func ScalingFromReference(m Mapping, sum []float64, ref Reference) (Scaling, error) {
	out := make(Scaling, len(sum))
	for i, v := range sum {
		rv, err := ref.ValueAt(m.WavelengthAt(float64(i)))
		if err != nil {
			return nil, fmt.Errorf("calib: bin %d: %w", i, err)
		}
		out[i] = rv / v
	}
	return out, nil
}
