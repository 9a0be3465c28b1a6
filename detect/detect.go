// Package detect finds salient spectral features: local peaks or dips in
// the Sum row of a spectrum, deduplicated so only the locally best
// candidate per wavelength neighborhood survives.
package detect

import (
	"strconv"

	"github.com/cwbudde/spectro/calib"
)

// Mode selects whether local maxima or local minima are reported.
type Mode int

const (
	// Peaks reports strict local maxima.
	Peaks Mode = iota
	// Dips reports strict local minima.
	Dips
)

// Params configures the search.
type Params struct {
	// FindWindow is the half-width W of the candidate window; a center
	// qualifies only against all 2W+1 samples of the window. Must be >= 1.
	FindWindow int
	// UniqueWindow is the wavelength distance D of the deduplication
	// neighborhood; a candidate survives only if it is the best within
	// +-D/2 of its own wavelength. Must be > 0.
	UniqueWindow float64
}

// Point is one detected feature. LabelY and Label are rendering hints:
// the label position is offset by 1% of the maximum Sum value (up for
// peaks, down for dips) and the text is the truncated integer wavelength.
type Point struct {
	Wavelength float64
	Value      float64
	LabelY     float64
	Label      string
}

type candidate struct {
	index      int
	wavelength float64
	value      float64
}

// Find scans the Sum row for local extrema and returns the surviving
// feature points ordered by bin index. The result is computed fresh on
// every call; nothing is cached.
func Find(sum []float64, m calib.Mapping, p Params, mode Mode) []Point {
	if p.FindWindow < 1 || len(sum) == 0 {
		return nil
	}

	windowSize := p.FindWindow*2 + 1
	if windowSize > len(sum) {
		windowSize = len(sum)
		if windowSize%2 == 0 {
			windowSize--
		}
	}
	mid := (windowSize - 1) / 2

	maxValue := sum[0]
	for _, v := range sum[1:] {
		if v > maxValue {
			maxValue = v
		}
	}

	var candidates []candidate
	for start := 0; start+windowSize <= len(sum); start++ {
		center := start + mid
		if isExtremum(sum[start:start+windowSize], mid, mode) {
			candidates = append(candidates, candidate{
				index:      center,
				wavelength: m.WavelengthAt(float64(center)),
				value:      sum[center],
			})
		}
	}

	offset := maxValue * 0.01
	if mode == Dips {
		offset = -offset
	}

	var out []Point
	for _, c := range candidates {
		if c.value != bestInNeighborhood(candidates, c.wavelength, p.UniqueWindow, mode) {
			continue
		}
		out = append(out, Point{
			Wavelength: c.wavelength,
			Value:      c.value,
			LabelY:     c.value + offset,
			Label:      labelText(c.wavelength),
		})
	}
	return out
}

// isExtremum reports whether win[mid] is strictly greater (Peaks) or
// strictly less (Dips) than every other sample in the window. Equal
// neighbors disqualify the center.
func isExtremum(win []float64, mid int, mode Mode) bool {
	center := win[mid]
	for i, v := range win {
		if i == mid {
			continue
		}
		if mode == Peaks {
			if v >= center {
				return false
			}
		} else {
			if v <= center {
				return false
			}
		}
	}
	return true
}

// bestInNeighborhood returns the maximum (Peaks) or minimum (Dips) value
// among candidates whose wavelength lies strictly within +-unique/2 of w.
// The probing candidate itself always lies in its own neighborhood.
func bestInNeighborhood(candidates []candidate, w, unique float64, mode Mode) float64 {
	half := unique / 2
	first := true
	var best float64
	for _, c := range candidates {
		if c.wavelength <= w-half || c.wavelength >= w+half {
			continue
		}
		if first || (mode == Peaks && c.value > best) || (mode == Dips && c.value < best) {
			best = c.value
			first = false
		}
	}
	return best
}

// labelText renders the wavelength the way the display expects: truncated
// to a non-negative integer.
func labelText(wavelength float64) string {
	if wavelength < 0 {
		wavelength = 0
	}
	return strconv.Itoa(int(wavelength))
}
