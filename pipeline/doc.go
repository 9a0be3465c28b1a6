// Package pipeline turns raw frames into calibrated spectra. The Builder
// runs one frame through linearization, temporal averaging, channel gains,
// reference scaling, zero-phase filtering and zero-reference subtraction;
// the Pipeline wraps it in a single-consumer loop fed by channels, so all
// mutable state stays owned by one goroutine and configuration travels as
// snapshot messages.
package pipeline
