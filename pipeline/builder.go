package pipeline

import (
	"errors"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/spectro/calib"
	"github.com/cwbudde/spectro/filter"
	"github.com/cwbudde/spectro/framebuf"
	"github.com/cwbudde/spectro/linearize"
	"github.com/cwbudde/spectro/spectral"
)

// ErrNoSpectrum reports an operation that needs a built spectrum before one
// has been produced.
var ErrNoSpectrum = errors.New("pipeline: no spectrum built yet")

// Builder owns all mutable pipeline state: the averaging window, the
// calibration mapping and scaling, the zero reference and the current
// settings. It must be driven by a single goroutine; only Current is safe
// to call concurrently.
type Builder struct {
	buf      *framebuf.Buffer
	mapping  calib.Mapping
	scaling  calib.Scaling
	zeroRef  *spectral.Spectrum
	settings Settings

	current atomic.Pointer[spectral.Spectrum]
}

// NewBuilder returns a Builder with the given calibration mapping and
// settings.
func NewBuilder(mapping calib.Mapping, settings Settings) *Builder {
	return &Builder{
		buf:      framebuf.New(settings.BufferSize),
		mapping:  mapping,
		settings: settings,
	}
}

// Process runs one raw frame through the full pipeline and publishes the
// resulting spectrum. The returned spectrum is also available through
// Current until the next frame replaces it.
func (b *Builder) Process(frame spectral.Frame) *spectral.Spectrum {
	frame = linearize.ApplyFrame(b.settings.Linearize, frame)

	if b.buf.Push(frame) {
		// Frames of a new dimension cannot be compared against the old
		// zero reference.
		b.zeroRef = nil
	}

	mean := b.buf.Mean()
	vecmath.ScaleBlockInPlace(mean.R, b.settings.Gains.R)
	vecmath.ScaleBlockInPlace(mean.G, b.settings.Gains.G)
	vecmath.ScaleBlockInPlace(mean.B, b.settings.Gains.B)

	n := mean.Bins()
	sum := make([]float64, n)
	vecmath.AddBlock(sum, mean.R, mean.G)
	vecmath.AddBlockInPlace(sum, mean.B)

	if b.scaling != nil {
		if len(b.scaling) == n {
			vecmath.MulBlockInPlace(sum, b.scaling)
		} else {
			for i := range sum {
				sum[i] *= b.scaling.FactorAt(i)
			}
		}
	}

	out := &spectral.Spectrum{R: mean.R, G: mean.G, B: mean.B, Sum: sum}

	if b.settings.FilterEnabled {
		z := filter.NewZeroPhase(b.settings.FilterCutoff)
		for _, row := range out.Rows() {
			z.Apply(row)
		}
	}

	if b.zeroRef != nil {
		out.Sub(b.zeroRef)
	}

	b.current.Store(out)
	return out
}

// Current returns the most recently published spectrum, or nil before the
// first frame. Safe for concurrent use; the returned spectrum is read-only.
func (b *Builder) Current() *spectral.Spectrum {
	return b.current.Load()
}

// Apply installs a new settings snapshot. A changed linearization mode or
// buffer size invalidates the averaging window where required; the new
// settings take effect on the next processed frame.
func (b *Builder) Apply(s Settings) {
	if s.Linearize != b.settings.Linearize {
		b.buf.Clear()
	}
	b.buf.SetCapacity(s.BufferSize)
	b.settings = s
}

// Settings returns the active settings snapshot.
func (b *Builder) Settings() Settings {
	return b.settings
}

// Mapping returns the active calibration mapping.
func (b *Builder) Mapping() calib.Mapping {
	return b.mapping
}

// SetMapping replaces the calibration mapping. The reference scaling is
// dropped since its per-bin factors were derived under the old wavelength
// assignment.
func (b *Builder) SetMapping(m calib.Mapping) {
	b.mapping = m
	b.scaling = nil
}

// InvalidateWindow clears the averaging buffer. Called when an acquisition
// discontinuity (camera control change) makes averaging across it unsafe.
func (b *Builder) InvalidateWindow() {
	b.buf.Clear()
}

// SetZeroReference snapshots the current spectrum as the baseline
// subtracted from every subsequently built spectrum.
func (b *Builder) SetZeroReference() error {
	cur := b.current.Load()
	if cur == nil {
		return ErrNoSpectrum
	}
	b.zeroRef = cur.Clone()
	return nil
}

// ClearZeroReference removes the baseline.
func (b *Builder) ClearZeroReference() {
	b.zeroRef = nil
}

// HasZeroReference reports whether a baseline is set.
func (b *Builder) HasZeroReference() bool {
	return b.zeroRef != nil
}

// SetScalingFromReference derives the flat-fielding vector from the current
// spectrum's Sum row and the given reference curve. It fails without
// changing state when no spectrum exists yet or when any bin's wavelength
// lies outside the reference domain.
func (b *Builder) SetScalingFromReference(ref calib.Reference) error {
	cur := b.current.Load()
	if cur == nil {
		return ErrNoSpectrum
	}
	s, err := calib.ScalingFromReference(b.mapping, cur.Sum, ref)
	if err != nil {
		return err
	}
	b.scaling = s
	return nil
}

// ClearScaling removes the flat-fielding vector.
func (b *Builder) ClearScaling() {
	b.scaling = nil
}

// HasScaling reports whether a flat-fielding vector is set.
func (b *Builder) HasScaling() bool {
	return b.scaling != nil
}
