// Package analysis provides diagnostics for propagated field slices.
//
//   - [Intensity]: |u|² per sample
//   - [Spectrum]: centred power spectrum of a 1D slice
//   - [Spectrum2D]: centred power spectrum of a 2D slice
//   - [Frequencies]: angular spatial frequencies matching [Spectrum]
//   - [Beam]: centroid and RMS width of an intensity profile
//
// 2D slices are row-major nx×ny as returned by Propagator.Snapshot; [Cut]
// extracts the line through the centre along x.
package analysis
