// Package framebuf provides the bounded, insertion-ordered window of recent
// raw frames used for temporal averaging. All frames in the buffer share
// the same bin count; pushing a frame with a different count invalidates
// the window, since frames of different dimensions cannot be averaged.
package framebuf

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/spectro/spectral"
)

// Capacity bounds for the averaging window.
const (
	MinCapacity = 1
	MaxCapacity = 100
)

// Buffer holds up to capacity recent frames, newest first.
// It is owned by a single consumer and is not safe for concurrent mutation;
// buffered frames themselves are immutable snapshots, so Mean may fan its
// reduction out across goroutines.
type Buffer struct {
	capacity int
	frames   []spectral.Frame
}

// New returns an empty buffer. The capacity is clamped to
// [MinCapacity, MaxCapacity].
func New(capacity int) *Buffer {
	b := &Buffer{}
	b.SetCapacity(capacity)
	return b
}

// SetCapacity changes the window size, clamped to [MinCapacity, MaxCapacity],
// and drops the oldest frames if the buffer now exceeds it.
func (b *Buffer) SetCapacity(capacity int) {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	b.capacity = capacity
	if len(b.frames) > capacity {
		b.frames = b.frames[:capacity]
	}
}

// Push inserts a frame at the front and trims the oldest entries beyond the
// capacity. If the frame's bin count differs from the buffered frames, all
// prior frames are dropped first and Push reports the dimension change so
// the caller can invalidate dependent state (zero reference).
func (b *Buffer) Push(f spectral.Frame) (dimensionChanged bool) {
	if len(b.frames) > 0 && b.frames[0].Bins() != f.Bins() {
		b.frames = b.frames[:0]
		dimensionChanged = true
	}

	b.frames = append(b.frames, spectral.Frame{})
	copy(b.frames[1:], b.frames)
	b.frames[0] = f

	if len(b.frames) > b.capacity {
		b.frames = b.frames[:b.capacity]
	}
	return dimensionChanged
}

// Clear drops all buffered frames.
func (b *Buffer) Clear() {
	b.frames = b.frames[:0]
}

// Len returns the number of buffered frames.
func (b *Buffer) Len() int {
	return len(b.frames)
}

// Cap returns the configured window capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Bins returns the bin count of the buffered frames, or 0 when empty.
func (b *Buffer) Bins() int {
	if len(b.frames) == 0 {
		return 0
	}
	return b.frames[0].Bins()
}

// Mean returns the elementwise arithmetic mean across all buffered frames,
// per channel, per bin. Division is by the current buffer length, so a
// partially filled window still yields a well-formed mean.
//
// The buffer must not be empty; calling Mean on an empty buffer panics.
func (b *Buffer) Mean() spectral.Frame {
	if len(b.frames) == 0 {
		panic("framebuf: Mean on empty buffer")
	}

	out := spectral.ZeroFrame(b.frames[0].Bins())
	inv := 1 / float64(len(b.frames))

	var wg sync.WaitGroup
	accumulate := func(dst []float64, row int) {
		defer wg.Done()
		for _, f := range b.frames {
			vecmath.AddBlockInPlace(dst, f.Rows()[row])
		}
		vecmath.ScaleBlockInPlace(dst, inv)
	}

	wg.Add(spectral.Channels)
	go accumulate(out.R, 0)
	go accumulate(out.G, 1)
	go accumulate(out.B, 2)
	wg.Wait()

	return out
}
