// Package grid describes the transverse sampling of a propagation and the
// flattened point sets handed to coefficient and boundary evaluators.
package grid

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MinPoints is the smallest number of samples per transverse axis. A
// finite-difference sweep needs at least one interior point between two
// boundary points.
const MinPoints = 3

var (
	ErrTooFewPoints = errors.New("grid: axis needs at least 3 points")
	ErrBadRange     = errors.New("grid: axis range is empty or inverted")
	ErrBadStep      = errors.New("grid: axial step must be positive")
)

// Axis is a uniformly sampled coordinate range, endpoints included.
type Axis struct {
	Min, Max float64
	N        int
}

func (a Axis) validate(name string) error {
	if a.N < MinPoints {
		return fmt.Errorf("%s: %w (got %d)", name, ErrTooFewPoints, a.N)
	}
	if !(a.Max > a.Min) {
		return fmt.Errorf("%s: %w [%g, %g]", name, ErrBadRange, a.Min, a.Max)
	}
	return nil
}

func (a Axis) samples() []float64 {
	s := make([]float64, a.N)
	floats.Span(s, a.Min, a.Max)
	return s
}

// Grid holds the transverse coordinates of a 1D or 2D propagation together
// with the axial origin and step. It is immutable after construction.
type Grid struct {
	x, y   []float64
	z0, dz float64
}

// New1D builds a grid with a single transverse axis.
func New1D(x Axis, z0, dz float64) (*Grid, error) {
	if err := x.validate("x"); err != nil {
		return nil, err
	}
	if !(dz > 0) {
		return nil, fmt.Errorf("%w (got %g)", ErrBadStep, dz)
	}
	return &Grid{x: x.samples(), z0: z0, dz: dz}, nil
}

// New2D builds a grid with two transverse axes.
func New2D(x, y Axis, z0, dz float64) (*Grid, error) {
	g, err := New1D(x, z0, dz)
	if err != nil {
		return nil, err
	}
	if err := y.validate("y"); err != nil {
		return nil, err
	}
	g.y = y.samples()
	return g, nil
}

// Dim is the number of transverse dimensions (1 or 2).
func (g *Grid) Dim() int {
	if g.y == nil {
		return 1
	}
	return 2
}

func (g *Grid) Nx() int { return len(g.x) }

// Ny is 0 for a 1D grid.
func (g *Grid) Ny() int { return len(g.y) }

// Size is the number of field samples.
func (g *Grid) Size() int {
	if g.y == nil {
		return len(g.x)
	}
	return len(g.x) * len(g.y)
}

func (g *Grid) X(i int) float64 { return g.x[i] }
func (g *Grid) Y(j int) float64 { return g.y[j] }

func (g *Grid) Dx() float64 { return g.x[1] - g.x[0] }

func (g *Grid) Dy() float64 {
	if g.y == nil {
		return 0
	}
	return g.y[1] - g.y[0]
}

func (g *Grid) Dz() float64 { return g.dz }
func (g *Grid) Z0() float64 { return g.z0 }

// Z maps an axial index to its position along the evolution axis.
func (g *Grid) Z(i int) float64 { return g.z0 + float64(i)*g.dz }

// Points returns the flattened coordinates of every grid sample, row-major
// in (x, y). The axial index array is zeroed.
func (g *Grid) Points() Points {
	if g.y == nil {
		p := Points{X: make([]float64, len(g.x)), I: make([]int, len(g.x))}
		copy(p.X, g.x)
		return p
	}
	n := g.Size()
	p := Points{X: make([]float64, n), Y: make([]float64, n), I: make([]int, n)}
	ny := len(g.y)
	for i, x := range g.x {
		for j, y := range g.y {
			p.X[i*ny+j] = x
			p.Y[i*ny+j] = y
		}
	}
	return p
}

// Points is a set of sample coordinates plus the axial index each sample is
// evaluated at. Y is nil for 1D grids.
type Points struct {
	X, Y []float64
	I    []int
}

func (p Points) Len() int { return len(p.X) }

// SetIndex fills the axial index array with i.
func (p Points) SetIndex(i int) { fill(p.I, i) }

// Indices addresses grid samples by integer position instead of coordinate.
// Boundary evaluators receive these. Y is nil for 1D grids.
type Indices struct {
	X, Y []int
	I    []int
}

func (p Indices) Len() int { return len(p.X) }

func (p Indices) SetIndex(i int) { fill(p.I, i) }

func fill(s []int, v int) {
	for k := range s {
		s[k] = v
	}
}
