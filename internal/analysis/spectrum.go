package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns |FFT(u)|²/n with the zero frequency moved to index n/2.
func Spectrum(field []complex128) []float64 {
	n := len(field)
	if n == 0 {
		return nil
	}
	f := fft.FFT(field)
	out := make([]float64, n)
	for k, v := range f {
		a := cmplx.Abs(v)
		out[(k+n/2)%n] = a * a / float64(n)
	}
	return out
}

// Spectrum2D is the 2D analogue of Spectrum for a row-major nx×ny field.
func Spectrum2D(field []complex128, nx, ny int) ([][]float64, error) {
	if nx*ny != len(field) || nx == 0 {
		return nil, ErrShape
	}
	rows := make([][]complex128, nx)
	for i := range rows {
		rows[i] = field[i*ny : (i+1)*ny]
	}
	f := fft.FFT2(rows)
	norm := float64(nx * ny)
	out := make([][]float64, nx)
	for i := range out {
		out[i] = make([]float64, ny)
	}
	for i, row := range f {
		for j, v := range row {
			a := cmplx.Abs(v)
			out[(i+nx/2)%nx][(j+ny/2)%ny] = a * a / norm
		}
	}
	return out, nil
}

// Frequencies returns the angular spatial frequencies of a centred spectrum
// of n samples spaced dx apart.
func Frequencies(n int, dx float64) []float64 {
	out := make([]float64, n)
	dk := 2 * math.Pi / (float64(n) * dx)
	for k := range out {
		out[k] = float64(k-n/2) * dk
	}
	return out
}
