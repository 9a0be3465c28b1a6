// Package linearize provides the inverse gamma transfer functions applied
// to raw sensor samples before averaging. Each mode maps a nonlinear sample
// in the normalized range back toward linear light intensity using the
// breakpoints and exponents fixed by the respective standard.
package linearize

import (
	"fmt"
	"math"

	"github.com/cwbudde/spectro/spectral"
)

// Mode selects the inverse transfer function.
type Mode int

const (
	// Off leaves samples unchanged.
	Off Mode = iota
	// Rec601 applies the ITU-R BT.601 inverse OETF.
	Rec601
	// Rec709 applies the ITU-R BT.709 inverse OETF.
	Rec709
	// SRGB applies the IEC 61966-2-1 inverse EOTF.
	SRGB
)

// String returns the mode name as used in configuration files.
func (m Mode) String() string {
	switch m {
	case Off:
		return "off"
	case Rec601:
		return "rec601"
	case Rec709:
		return "rec709"
	case SRGB:
		return "srgb"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name produced by String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "off", "":
		return Off, nil
	case "rec601":
		return Rec601, nil
	case "rec709":
		return Rec709, nil
	case "srgb":
		return SRGB, nil
	default:
		return Off, fmt.Errorf("linearize: unknown mode %q", s)
	}
}

// Apply maps one normalized sample through the selected inverse transfer
// function. All modes are deterministic and monotonic.
func Apply(m Mode, v float64) float64 {
	switch m {
	case Rec601, Rec709:
		// BT.601 and BT.709 share the same transfer constants.
		if v < 0.081 {
			return v / 4.5
		}
		return math.Pow((v+0.099)/1.099, 1/0.45)
	case SRGB:
		if v <= 0.04045 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	default:
		return v
	}
}

// ApplyFrame returns a copy of the frame with every sample linearized.
// For Off the frame is returned as-is without copying.
func ApplyFrame(m Mode, f spectral.Frame) spectral.Frame {
	if m == Off {
		return f
	}
	out := spectral.ZeroFrame(f.Bins())
	applyRow(m, out.R, f.R)
	applyRow(m, out.G, f.G)
	applyRow(m, out.B, f.B)
	return out
}

func applyRow(m Mode, dst, src []float64) {
	for i, v := range src {
		dst[i] = Apply(m, v)
	}
}
