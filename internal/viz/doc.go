// Package viz renders propagation results for the terminal: lipgloss
// styles for run summaries, asciigraph line plots of profiles and spectra,
// and a shaded character map of 2D intensity slices.
package viz
