package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Plot draws a line plot of data, downsampled to width points.
func Plot(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(downsample(data, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotMany overlays several series of equal length, such as the initial and
// final intensity profiles.
func PlotMany(series [][]float64, width, height int, caption string) string {
	if len(series) == 0 {
		return ""
	}
	sampled := make([][]float64, len(series))
	for k, s := range series {
		sampled[k] = downsample(s, width)
	}
	return asciigraph.PlotMany(sampled,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	)
}

func downsample(data []float64, width int) []float64 {
	if width <= 0 || len(data) <= width {
		return data
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = data[i*len(data)/width]
	}
	return out
}
