package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/cwbudde/spectro/control"
	"github.com/cwbudde/spectro/detect"
	"github.com/cwbudde/spectro/spectral"
)

// Result is an operation outcome reported by an acquisition worker.
// Only the most recent result is retained.
type Result struct {
	Worker string
	Err    error
}

// Sources bundles the inbound channels a Pipeline consumes. Nil channels
// are permitted and simply never deliver.
type Sources struct {
	// Frames delivers raw frames from the acquisition collaborator.
	// Backpressure is the channel's concern: frames produced faster than
	// consumed queue up or drop there, never inside the pipeline.
	Frames <-chan spectral.Frame
	// Settings delivers configuration snapshots.
	Settings <-chan Settings
	// Controls delivers camera-control changes; each one invalidates the
	// averaging window for the next tick.
	Controls <-chan control.Control
	// Results delivers worker outcomes, retained as last-known state only.
	Results <-chan Result
}

// Pipeline drives a Builder from inbound channels with a single consumer
// goroutine. Reads of the published spectrum and last result are safe from
// any goroutine.
type Pipeline struct {
	builder *Builder
	src     Sources

	lastResult atomic.Pointer[Result]
}

// New wraps a Builder with its inbound channels.
func New(b *Builder, src Sources) *Pipeline {
	return &Pipeline{builder: b, src: src}
}

// Run consumes messages until ctx is done. Each loop iteration drains at
// most one message; a frame is processed synchronously within its tick and
// is never aborted by a configuration change, which instead takes effect
// on the following tick.
func (p *Pipeline) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-p.src.Frames:
			if !ok {
				return
			}
			p.builder.Process(f)
		case s := <-p.src.Settings:
			p.builder.Apply(s)
		case <-p.src.Controls:
			p.builder.InvalidateWindow()
		case r := <-p.src.Results:
			p.lastResult.Store(&r)
		}
	}
}

// Tick drains at most one pending message without blocking and reports
// whether anything was consumed. It allows embedding the pipeline in a
// cooperative caller-driven loop instead of Run.
func (p *Pipeline) Tick() bool {
	select {
	case f, ok := <-p.src.Frames:
		if !ok {
			return false
		}
		p.builder.Process(f)
	case s := <-p.src.Settings:
		p.builder.Apply(s)
	case <-p.src.Controls:
		p.builder.InvalidateWindow()
	case r := <-p.src.Results:
		p.lastResult.Store(&r)
	default:
		return false
	}
	return true
}

// Current returns the most recently published spectrum, or nil before the
// first frame.
func (p *Pipeline) Current() *spectral.Spectrum {
	return p.builder.Current()
}

// FeaturePoints runs the extremum detector over the current spectrum's Sum
// row on demand. Returns nil before the first frame.
func (p *Pipeline) FeaturePoints(params detect.Params, mode detect.Mode) []detect.Point {
	cur := p.builder.Current()
	if cur == nil {
		return nil
	}
	return detect.Find(cur.Sum, p.builder.Mapping(), params, mode)
}

// LastResult returns the most recent worker result, if any.
func (p *Pipeline) LastResult() (Result, bool) {
	r := p.lastResult.Load()
	if r == nil {
		return Result{}, false
	}
	return *r, true
}
