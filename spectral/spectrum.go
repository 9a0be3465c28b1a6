package spectral

// Spectrum is an assembled measurement: the three channel rows plus the
// derived Sum row, all of identical length. The Sum row is computed by the
// builder and never mutated independently.
//
// A published Spectrum is read-only to consumers.
type Spectrum struct {
	R, G, B, Sum []float64
}

// ZeroSpectrum returns a Spectrum with n zero-valued bins per row.
func ZeroSpectrum(n int) *Spectrum {
	if n < 0 {
		n = 0
	}
	return &Spectrum{
		R:   make([]float64, n),
		G:   make([]float64, n),
		B:   make([]float64, n),
		Sum: make([]float64, n),
	}
}

// Bins returns the spectral bin count.
func (s *Spectrum) Bins() int {
	return len(s.Sum)
}

// Rows returns all four rows in R, G, B, Sum order. The slices alias the
// spectrum's storage.
func (s *Spectrum) Rows() [4][]float64 {
	return [4][]float64{s.R, s.G, s.B, s.Sum}
}

// Clone returns a deep copy of the spectrum.
func (s *Spectrum) Clone() *Spectrum {
	out := ZeroSpectrum(s.Bins())
	copy(out.R, s.R)
	copy(out.G, s.G)
	copy(out.B, s.B)
	copy(out.Sum, s.Sum)
	return out
}

// Sub subtracts ref elementwise from all four rows in-place.
// Both spectra must have the same bin count. Panics if lengths differ.
func (s *Spectrum) Sub(ref *Spectrum) {
	if ref.Bins() != s.Bins() {
		panic("spectral: bin count mismatch")
	}
	subInPlace(s.R, ref.R)
	subInPlace(s.G, ref.G)
	subInPlace(s.B, ref.B)
	subInPlace(s.Sum, ref.Sum)
}

func subInPlace(dst, src []float64) {
	for i := range dst {
		dst[i] -= src[i]
	}
}
