// Package evaluator turns point functions into array evaluators for the
// propagators. Parallel evaluation is a property of the evaluator chosen at
// construction, never of the caller.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/san-kum/fdprop/internal/grid"
	"github.com/san-kum/fdprop/internal/kernel"
)

// ErrLength indicates a destination slice whose length does not match the
// number of points.
var ErrLength = errors.New("evaluator: destination length mismatch")

// Func evaluates a value at transverse coordinates (x, y) and axial index i.
// y is 0 on 1D grids.
type Func func(x, y float64, i int) complex128

// IndexFunc evaluates a value at grid position (ix, iy) and axial index i.
// iy is 0 on 1D grids.
type IndexFunc func(ix, iy, i int) complex128

// Options control how an evaluator spreads work.
type Options struct {
	// Parallel enables chunked evaluation on multiple goroutines.
	Parallel bool
	// Workers bounds the goroutines; <= 0 means GOMAXPROCS.
	Workers int
	// MinChunk is the smallest number of points per goroutine.
	MinChunk int
}

// Serial is the zero-configuration option set.
var Serial = Options{}

func (o Options) minChunk() int {
	if o.MinChunk > 0 {
		return o.MinChunk
	}
	return 1024
}

// run calls fn over [0, n) in chunks honoring o.
func (o Options) run(n int, fn func(start, end int)) error {
	if !o.Parallel {
		fn(0, n)
		return nil
	}
	return kernel.ParallelFor(n, o.minChunk(), o.Workers, func(start, end int) error {
		fn(start, end)
		return nil
	})
}

// Points evaluates a Func over grid.Points.
type Points struct {
	fn   Func
	opts Options
}

func New(fn Func, opts Options) *Points {
	return &Points{fn: fn, opts: opts}
}

// Constant returns an evaluator that yields v everywhere.
func Constant(v complex128) *Points {
	return New(func(float64, float64, int) complex128 { return v }, Serial)
}

func (p *Points) Evaluate(dst []complex128, pts grid.Points) error {
	if len(dst) != pts.Len() {
		return fmt.Errorf("%w: %d != %d", ErrLength, len(dst), pts.Len())
	}
	return p.opts.run(len(dst), func(start, end int) {
		for k := start; k < end; k++ {
			y := 0.0
			if pts.Y != nil {
				y = pts.Y[k]
			}
			dst[k] = p.fn(pts.X[k], y, pts.I[k])
		}
	})
}

// Indices evaluates an IndexFunc over grid.Indices.
type Indices struct {
	fn   IndexFunc
	opts Options
}

func NewIndexed(fn IndexFunc, opts Options) *Indices {
	return &Indices{fn: fn, opts: opts}
}

// Zero returns a boundary evaluator that yields 0 everywhere.
func Zero() *Indices {
	return NewIndexed(func(int, int, int) complex128 { return 0 }, Serial)
}

func (b *Indices) Evaluate(dst []complex128, idx grid.Indices) error {
	if len(dst) != idx.Len() {
		return fmt.Errorf("%w: %d != %d", ErrLength, len(dst), idx.Len())
	}
	return b.opts.run(len(dst), func(start, end int) {
		for k := start; k < end; k++ {
			iy := 0
			if idx.Y != nil {
				iy = idx.Y[k]
			}
			dst[k] = b.fn(idx.X[k], iy, idx.I[k])
		}
	})
}
