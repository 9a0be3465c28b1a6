package refcurve

import "math"

// Planck's law constants.
const (
	planckH    = 6.62607015e-34 // J*s
	lightC     = 2.99792458e8   // m/s
	boltzmannK = 1.380649e-23   // J/K
)

// Generated tungsten reference range and resolution, in nanometers.
// Covers the visible band plus margin so typical calibrations never leave
// the curve's domain.
const (
	tungstenLowNm  = 300.0
	tungstenHighNm = 1100.0
	tungstenStepNm = 2.0
)

// FromFilamentTemp generates a blackbody reference curve approximating a
// tungsten-halogen lamp at the given filament temperature (Kelvin). The
// spectral radiance is sampled over the visible band and normalized so the
// curve's maximum is 1.
func FromFilamentTemp(kelvin float64) *Curve {
	var samples []Sample
	peak := 0.0
	for nm := tungstenLowNm; nm <= tungstenHighNm; nm += tungstenStepNm {
		v := spectralRadiance(nm*1e-9, kelvin)
		if v > peak {
			peak = v
		}
		samples = append(samples, Sample{Wavelength: nm, Value: v})
	}
	if peak > 0 {
		for i := range samples {
			samples[i].Value /= peak
		}
	}

	// Construction cannot fail: wavelengths are strictly increasing.
	c, err := New(samples)
	if err != nil {
		panic("refcurve: tungsten curve construction: " + err.Error())
	}
	return c
}

// spectralRadiance evaluates Planck's law at wavelength (meters) and
// temperature (Kelvin).
func spectralRadiance(wavelength, kelvin float64) float64 {
	num := 2 * planckH * lightC * lightC / math.Pow(wavelength, 5)
	den := math.Exp(planckH*lightC/(wavelength*boltzmannK*kelvin)) - 1
	return num / den
}
