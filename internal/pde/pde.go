// Package pde describes the paraxial equation
//
//	A·∂u/∂z = B·(∂²u/∂x² + ∂²u/∂y²) + F·u
//
// by point functions of (x, y, z) and converts it to the per-point kernel
// coefficients consumed by the propagators.
package pde

import (
	"errors"
	"fmt"

	"github.com/san-kum/fdprop/internal/evaluator"
	"github.com/san-kum/fdprop/internal/grid"
	"github.com/san-kum/fdprop/internal/propagate"
)

var (
	ErrIncomplete = errors.New("pde: equation needs B, F and a boundary")

	// ErrVaryingDiffusion indicates a 1D equation whose ra = B/A changes
	// along z. The 1D propagator refreshes rf only.
	ErrVaryingDiffusion = errors.New("pde: 1D equation needs z-invariant A and B")
)

// PointFunc is a coefficient or field value at (x, y, z). y is 0 in 1D.
type PointFunc func(x, y, z float64) complex128

// Const returns a PointFunc that is v everywhere.
func Const(v complex128) PointFunc {
	return func(float64, float64, float64) complex128 { return v }
}

// Equation is a parabolic PDE with Dirichlet boundary values.
type Equation struct {
	// A defaults to 1 when nil.
	A, B, F PointFunc
	// Boundary is the field imposed on the grid edges.
	Boundary PointFunc
	// ConstantInZ declares that A, B and F do not depend on z. The boundary
	// may still vary.
	ConstantInZ bool
}

// diffusionProbes are the axial indices at which Coefficients1D compares ra.
var diffusionProbes = []int{1, 10, 100}

func (eq Equation) validate() error {
	if eq.B == nil || eq.F == nil || eq.Boundary == nil {
		return ErrIncomplete
	}
	return nil
}

func (eq Equation) a(x, y, z float64) complex128 {
	if eq.A == nil {
		return 1
	}
	return eq.A(x, y, z)
}

// at binds a coefficient expression to axial indices on g, shifted by
// shift·dz along z.
func at(g *grid.Grid, shift float64, fn PointFunc) evaluator.Func {
	return func(x, y float64, i int) complex128 {
		return fn(x, y, g.Z(i)+shift*g.Dz())
	}
}

// boundaryAt binds the boundary expression to grid positions.
func boundaryAt(g *grid.Grid, shift float64, fn PointFunc) evaluator.IndexFunc {
	return func(ix, iy, i int) complex128 {
		y := 0.0
		if g.Dim() == 2 {
			y = g.Y(iy)
		}
		return fn(g.X(ix), y, g.Z(i)+shift*g.Dz())
	}
}

// Coefficients1D derives the Crank–Nicolson coefficients
//
//	ra = dz·B/(A·dx²)   rf = dz·F/(2·A)
//
// ra is evaluated at reset only, so B/A must not depend on z; only F may.
// The equation is sampled on g at a few axial indices and rejected with
// ErrVaryingDiffusion when ra differs from its value at index 0.
func Coefficients1D(eq Equation, g *grid.Grid, opts evaluator.Options) (propagate.Coefficients1D, error) {
	if err := eq.validate(); err != nil {
		return propagate.Coefficients1D{}, err
	}
	dz, dx := complex(g.Dz(), 0), complex(g.Dx(), 0)

	ra := func(x, y, z float64) complex128 { return dz * eq.B(x, y, z) / (eq.a(x, y, z) * dx * dx) }
	rf := func(x, y, z float64) complex128 { return dz * eq.F(x, y, z) / (2 * eq.a(x, y, z)) }

	if !eq.ConstantInZ {
		if err := checkDiffusion(g, ra); err != nil {
			return propagate.Coefficients1D{}, err
		}
	}

	return propagate.Coefficients1D{
		RA:          evaluator.New(at(g, 0, ra), opts),
		RF:          evaluator.New(at(g, 0, rf), opts),
		Boundary:    evaluator.NewIndexed(boundaryAt(g, 0, eq.Boundary), evaluator.Serial),
		ConstantInZ: eq.ConstantInZ,
	}, nil
}

func checkDiffusion(g *grid.Grid, ra PointFunc) error {
	for k := 0; k < g.Nx(); k++ {
		x := g.X(k)
		ref := ra(x, 0, g.Z(0))
		for _, i := range diffusionProbes {
			if v := ra(x, 0, g.Z(i)); v != ref {
				return fmt.Errorf("%w: ra(x=%g) is %v at z=%g, %v at z=%g", ErrVaryingDiffusion, x, ref, g.Z(0), v, g.Z(i))
			}
		}
	}
	return nil
}

// Coefficients2D derives the half-step ADI coefficients
//
//	ra = dz·B/(2·A·dx²)   rc = dz·B/(2·A·dy²)   rf = dz·F/(4·A)
//
// The After members are evaluated at z(i); the Before members at z(i) - dz/2,
// the midpoint of the step that ends at index i.
func Coefficients2D(eq Equation, g *grid.Grid, opts evaluator.Options) (propagate.Coefficients2D, error) {
	if err := eq.validate(); err != nil {
		return propagate.Coefficients2D{}, err
	}
	dz, dx, dy := complex(g.Dz(), 0), complex(g.Dx(), 0), complex(g.Dy(), 0)

	ra := func(x, y, z float64) complex128 { return dz * eq.B(x, y, z) / (2 * eq.a(x, y, z) * dx * dx) }
	rc := func(x, y, z float64) complex128 { return dz * eq.B(x, y, z) / (2 * eq.a(x, y, z) * dy * dy) }
	rf := func(x, y, z float64) complex128 { return dz * eq.F(x, y, z) / (4 * eq.a(x, y, z)) }

	pair := func(fn PointFunc) propagate.Pair[propagate.Evaluator] {
		return propagate.Pair[propagate.Evaluator]{
			Before: evaluator.New(at(g, -0.5, fn), opts),
			After:  evaluator.New(at(g, 0, fn), opts),
		}
	}

	return propagate.Coefficients2D{
		RA: pair(ra),
		RC: pair(rc),
		RF: pair(rf),
		Boundary: propagate.Pair[propagate.Boundary]{
			Before: evaluator.NewIndexed(boundaryAt(g, -0.5, eq.Boundary), evaluator.Serial),
			After:  evaluator.NewIndexed(boundaryAt(g, 0, eq.Boundary), evaluator.Serial),
		},
		ConstantInZ: eq.ConstantInZ,
	}, nil
}

// Sample evaluates fn at every grid point at axial position z, row-major.
func Sample(g *grid.Grid, z float64, fn PointFunc) []complex128 {
	pts := g.Points()
	out := make([]complex128, pts.Len())
	for k := range out {
		y := 0.0
		if pts.Y != nil {
			y = pts.Y[k]
		}
		out[k] = fn(pts.X[k], y, z)
	}
	return out
}
