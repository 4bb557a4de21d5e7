package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat"
)

var ErrShape = errors.New("analysis: field size does not match shape")

func Intensity(field []complex128) []float64 {
	out := make([]float64, len(field))
	for k, v := range field {
		a := cmplx.Abs(v)
		out[k] = a * a
	}
	return out
}

func Phase(field []complex128) []float64 {
	out := make([]float64, len(field))
	for k, v := range field {
		out[k] = cmplx.Phase(v)
	}
	return out
}

// Cut returns the line iy = ny/2 of a row-major nx×ny field.
func Cut(field []complex128, nx, ny int) ([]complex128, error) {
	if nx*ny != len(field) {
		return nil, ErrShape
	}
	j := ny / 2
	out := make([]complex128, nx)
	for i := range out {
		out[i] = field[i*ny+j]
	}
	return out, nil
}

// Beam summarizes an intensity profile over coordinates x.
type Beam struct {
	Centroid float64
	// Width is the RMS half-width of the intensity.
	Width float64
	Peak  float64
}

func BeamOf(x, intensity []float64) (Beam, error) {
	if len(x) != len(intensity) {
		return Beam{}, ErrShape
	}
	var total, peak float64
	for _, v := range intensity {
		total += v
		peak = math.Max(peak, v)
	}
	if total == 0 {
		return Beam{}, nil
	}
	mean, variance := stat.PopMeanVariance(x, intensity)
	return Beam{Centroid: mean, Width: math.Sqrt(variance), Peak: peak}, nil
}
