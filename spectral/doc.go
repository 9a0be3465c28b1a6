// Package spectral defines the core data model of the pipeline: raw
// 3-channel intensity frames and assembled 4-row spectra. Both types are
// plain slice containers; all math on them lives in the packages that own
// the respective processing step.
package spectral
