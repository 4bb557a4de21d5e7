package propagate

import (
	"fmt"

	"github.com/go-kit/kit/log/level"
	"github.com/san-kum/fdprop/internal/grid"
	"gonum.org/v1/gonum/mat"
)

// Propagator2D drives an ADI kernel. Each axial step is two half-steps, each
// preceded by its own kernel update, boundary scatter and coefficient
// refresh:
//
//	update(Before) → Step1 → update(After) → Step2
type Propagator2D struct {
	lifecycle

	kernel KernelADI
	coef   Coefficients2D

	pts    grid.Points
	edges  []edge
	perim  grid.Indices
	bvalue []complex128
}

var _ Propagator = (*Propagator2D)(nil)

// New2D sizes the kernel for g and binds the half-step coefficient pairs.
func New2D(g *grid.Grid, k KernelADI, coef Coefficients2D, initial []complex128, opts ...Option) (*Propagator2D, error) {
	if g.Dim() != 2 {
		return nil, fmt.Errorf("%w: 2D propagator on %dD grid", ErrShapeMismatch, g.Dim())
	}
	if err := coef.validate(); err != nil {
		return nil, err
	}
	l, err := newLifecycle(g, initial, opts)
	if err != nil {
		return nil, err
	}

	nx, ny := g.Nx(), g.Ny()
	if err := k.Resize(nx, ny); err != nil {
		return nil, fmt.Errorf("resize kernel: %w", err)
	}

	p := &Propagator2D{
		lifecycle: l,
		kernel:    k,
		coef:      coef,
		pts:       g.Points(),
		edges:     perimeter(nx, ny),
	}
	p.perim = perimeterIndices(p.edges)
	p.bvalue = make([]complex128, p.perim.Len())

	for name, m := range map[string]*mat.CDense{"u": k.U(), "ra": k.RA(), "rc": k.RC(), "rf": k.RF()} {
		if _, err := flat(name, m, nx, ny); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Reset loads the Before coefficients, zeroes the field and snapshots both
// into the kernel, then loads the After coefficients and reseeds the field.
// The first sweep of the next step therefore sees the After set at axial
// index 0 as its explicit side and the Before set as its implicit side.
func (p *Propagator2D) Reset() error {
	p.rewind()
	if err := p.loadCoefficients(Before); err != nil {
		return err
	}
	u, err := p.field()
	if err != nil {
		return err
	}
	clear(u)
	p.kernel.Update()
	if err := p.loadCoefficients(After); err != nil {
		return err
	}
	if u, err = p.field(); err != nil {
		return err
	}
	p.seed(u)
	if err := p.updateBoundary(After); err != nil {
		p.ready = false
		return err
	}
	return nil
}

// Step performs one ADI axial step.
func (p *Propagator2D) Step() error {
	if err := p.advance(); err != nil {
		return err
	}

	if err := p.update(Before); err != nil {
		return p.fail("update before", err)
	}
	if err := p.kernel.Step1(); err != nil {
		return p.fail("step_1", err)
	}
	if err := p.update(After); err != nil {
		return p.fail("update after", err)
	}
	if err := p.kernel.Step2(); err != nil {
		return p.fail("step_2", err)
	}

	if p.validate {
		u, err := p.field()
		if err != nil {
			return p.fail("step_2", err)
		}
		if err := p.check(u); err != nil {
			return p.fail("step_2", err)
		}
	}
	return nil
}

func (p *Propagator2D) update(h HalfStep) error {
	p.kernel.Update()
	if err := p.updateBoundary(h); err != nil {
		return err
	}
	if !p.coef.ConstantInZ {
		return p.loadCoefficients(h)
	}
	return nil
}

// updateBoundary evaluates the half-step boundary over the perimeter and
// scatters it edge by edge.
func (p *Propagator2D) updateBoundary(h HalfStep) error {
	p.perim.SetIndex(p.i)
	if err := evaluateBoundary(p.coef.Boundary.At(h), p.bvalue, p.perim); err != nil {
		return err
	}

	u := p.kernel.U()
	off := 0
	for _, e := range p.edges {
		for k := 0; k < e.n; k++ {
			ix, iy := e.cell(k)
			u.Set(ix, iy, p.bvalue[off+k])
		}
		off += e.n
	}
	level.Debug(p.logger).Log("msg", "boundary", "half", h, "index", p.i, "points", off)
	return nil
}

func (p *Propagator2D) loadCoefficients(h HalfStep) error {
	p.pts.SetIndex(p.i)
	nx, ny := p.grid.Nx(), p.grid.Ny()
	for _, c := range []struct {
		name string
		e    Evaluator
		m    *mat.CDense
	}{
		{"ra", p.coef.RA.At(h), p.kernel.RA()},
		{"rc", p.coef.RC.At(h), p.kernel.RC()},
		{"rf", p.coef.RF.At(h), p.kernel.RF()},
	} {
		dst, err := flat(c.name, c.m, nx, ny)
		if err != nil {
			return err
		}
		if err := evaluate(c.name+" "+h.String(), c.e, dst, p.pts); err != nil {
			return err
		}
	}
	return nil
}

func (p *Propagator2D) field() ([]complex128, error) {
	return flat("u", p.kernel.U(), p.grid.Nx(), p.grid.Ny())
}

// Field returns the kernel's field buffer, nx rows by ny columns. It is
// mutated by every Step.
func (p *Propagator2D) Field() *mat.CDense {
	return p.kernel.U()
}

// SetField copies f into the kernel's field buffer.
func (p *Propagator2D) SetField(f mat.CMatrix) error {
	r, c := f.Dims()
	if r != p.grid.Nx() || c != p.grid.Ny() {
		return fmt.Errorf("%w: field is %dx%d, grid %dx%d", ErrShapeMismatch, r, c, p.grid.Nx(), p.grid.Ny())
	}
	u := p.kernel.U()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			u.Set(i, j, f.At(i, j))
		}
	}
	return nil
}

func (p *Propagator2D) Snapshot() []complex128 {
	u, err := p.field()
	if err != nil {
		return nil
	}
	s := make([]complex128, len(u))
	copy(s, u)
	return s
}
