package filter

// Cutoff bounds for the zero-phase lowpass, normalized to the bin-index
// domain: 1.0 is the Nyquist frequency of the nominal rate.
const (
	MinCutoff = 0.001
	MaxCutoff = 1.0
)

// nominalRate is the fixed reference rate the cutoff is designed against.
// The filter smooths over bin indices, not physical wavelength spacing, so
// this is a shape parameter: with rate 2.0 a cutoff of 1.0 sits exactly at
// Nyquist and leaves the sequence essentially unsmoothed, while small
// cutoffs smooth over correspondingly many bins.
const nominalRate = 2.0

// ClampCutoff clamps a normalized cutoff to [MinCutoff, MaxCutoff].
func ClampCutoff(cutoff float64) float64 {
	if cutoff < MinCutoff {
		return MinCutoff
	}
	if cutoff > MaxCutoff {
		return MaxCutoff
	}
	return cutoff
}

// ZeroPhase is a reusable zero-phase lowpass over 1-D sequences: one
// second-order Butterworth-Q section applied forward and then in reverse,
// so the phase delay introduced by the forward pass is cancelled by the
// reverse pass at the cost of 2x compute.
type ZeroPhase struct {
	cutoff float64
	coeffs Coefficients
}

// NewZeroPhase designs a zero-phase lowpass for the given normalized
// cutoff. The cutoff is clamped to [MinCutoff, MaxCutoff].
func NewZeroPhase(cutoff float64) *ZeroPhase {
	cutoff = ClampCutoff(cutoff)
	return &ZeroPhase{
		cutoff: cutoff,
		coeffs: Lowpass(cutoff, QButterworth, nominalRate),
	}
}

// Cutoff returns the clamped normalized cutoff the filter was designed for.
func (z *ZeroPhase) Cutoff() float64 {
	return z.cutoff
}

// Apply smooths buf in-place. Each pass starts from the steady state
// implied by its first processed sample, so constant sequences pass
// through unchanged (DC preservation) and neither end rings against a
// zero-state transient. The reverse pass's output is the result.
func (z *ZeroPhase) Apply(buf []float64) {
	if len(buf) == 0 {
		return
	}

	s := NewSection(z.coeffs)
	s.InitSteadyState(buf[0])
	s.ProcessBlock(buf)

	s.Reset()
	s.InitSteadyState(buf[len(buf)-1])
	s.ProcessBlockReverse(buf)
}
