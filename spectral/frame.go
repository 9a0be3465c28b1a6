package spectral

import "fmt"

// Channels is the number of color channels in a raw frame.
const Channels = 3

// Frame is one raw intensity trace: three parallel channel rows (R, G, B)
// of identical length. The length is the spectral bin count and may differ
// between acquisition sessions.
//
// A Frame handed to a buffer or pipeline must not be mutated afterwards;
// downstream reductions rely on frames being immutable snapshots.
type Frame struct {
	R, G, B []float64
}

// NewFrame wraps three channel rows without copying.
// All rows must have the same length.
func NewFrame(r, g, b []float64) (Frame, error) {
	if len(g) != len(r) || len(b) != len(r) {
		return Frame{}, fmt.Errorf("spectral: channel length mismatch: r=%d g=%d b=%d", len(r), len(g), len(b))
	}
	return Frame{R: r, G: g, B: b}, nil
}

// ZeroFrame returns a Frame with n zero-valued bins per channel.
func ZeroFrame(n int) Frame {
	if n < 0 {
		n = 0
	}
	return Frame{
		R: make([]float64, n),
		G: make([]float64, n),
		B: make([]float64, n),
	}
}

// Bins returns the spectral bin count.
func (f Frame) Bins() int {
	return len(f.R)
}

// Rows returns the channel rows in R, G, B order. The slices alias the
// frame's storage.
func (f Frame) Rows() [Channels][]float64 {
	return [Channels][]float64{f.R, f.G, f.B}
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	out := ZeroFrame(f.Bins())
	copy(out.R, f.R)
	copy(out.G, f.G)
	copy(out.B, f.B)
	return out
}
