package pipeline

import (
	"fmt"

	"github.com/cwbudde/spectro/filter"
	"github.com/cwbudde/spectro/framebuf"
	"github.com/cwbudde/spectro/linearize"
)

// Gains holds the per-channel multiplicative gains applied to the averaged
// frame before the Sum row is formed.
type Gains struct {
	R, G, B float64
}

// GainPreset names a standard set of channel gains.
type GainPreset int

const (
	// PresetUnity leaves all channels unscaled.
	PresetUnity GainPreset = iota
	// PresetSRGB applies the sRGB luminance weights.
	PresetSRGB
	// PresetRec601 applies the ITU-R BT.601 luma weights.
	PresetRec601
	// PresetRec709 applies the ITU-R BT.709 luma weights.
	PresetRec709
)

// Gains returns the preset's channel weights.
func (p GainPreset) Gains() Gains {
	switch p {
	case PresetSRGB, PresetRec709:
		return Gains{R: 0.2126, G: 0.7152, B: 0.0722}
	case PresetRec601:
		return Gains{R: 0.299, G: 0.587, B: 0.114}
	default:
		return Gains{R: 1, G: 1, B: 1}
	}
}

// Settings is one postprocessing configuration snapshot. Snapshots are
// passed by value to the pipeline owner; they are never shared or mutated
// concurrently.
type Settings struct {
	// BufferSize is the averaging window capacity, 1..100.
	BufferSize int
	// FilterEnabled toggles the zero-phase lowpass on all four rows.
	FilterEnabled bool
	// FilterCutoff is the normalized cutoff, clamped to (0.001, 1.0] at
	// use time.
	FilterCutoff float64
	// Linearize selects the inverse gamma transfer applied to raw samples
	// before buffering. Changing it invalidates the averaging window.
	Linearize linearize.Mode
	// Gains are the per-channel gains.
	Gains Gains
}

// DefaultSettings returns the settings a fresh pipeline starts with.
func DefaultSettings() Settings {
	return Settings{
		BufferSize:    10,
		FilterEnabled: false,
		FilterCutoff:  0.5,
		Linearize:     linearize.Off,
		Gains:         PresetUnity.Gains(),
	}
}

// Validate reports configuration values outside their documented ranges.
func (s Settings) Validate() error {
	if s.BufferSize < framebuf.MinCapacity || s.BufferSize > framebuf.MaxCapacity {
		return fmt.Errorf("pipeline: buffer size %d outside [%d, %d]",
			s.BufferSize, framebuf.MinCapacity, framebuf.MaxCapacity)
	}
	if s.FilterCutoff <= 0 || s.FilterCutoff > filter.MaxCutoff {
		return fmt.Errorf("pipeline: filter cutoff %v outside (0, %v]", s.FilterCutoff, filter.MaxCutoff)
	}
	if s.Gains.R < 0 || s.Gains.G < 0 || s.Gains.B < 0 {
		return fmt.Errorf("pipeline: negative gain %+v", s.Gains)
	}
	return nil
}
