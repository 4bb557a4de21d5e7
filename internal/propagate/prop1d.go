package propagate

import (
	"fmt"

	"github.com/san-kum/fdprop/internal/grid"
)

// Propagator1D drives a Crank–Nicolson kernel along a single transverse axis.
// The boundary is the pair of endpoints {0, nx-1}.
type Propagator1D struct {
	lifecycle

	kernel Kernel1D
	coef   Coefficients1D

	pts    grid.Points
	edges  grid.Indices
	bvalue []complex128
}

var _ Propagator = (*Propagator1D)(nil)

// New1D sizes the kernel for g and binds the coefficient set. The field is
// seeded from initial on Reset.
func New1D(g *grid.Grid, k Kernel1D, coef Coefficients1D, initial []complex128, opts ...Option) (*Propagator1D, error) {
	if g.Dim() != 1 {
		return nil, fmt.Errorf("%w: 1D propagator on %dD grid", ErrShapeMismatch, g.Dim())
	}
	if err := coef.validate(); err != nil {
		return nil, err
	}
	l, err := newLifecycle(g, initial, opts)
	if err != nil {
		return nil, err
	}

	nx := g.Nx()
	if err := k.Resize(nx); err != nil {
		return nil, fmt.Errorf("resize kernel: %w", err)
	}
	for name, buf := range map[string][]complex128{"u": k.U(), "ra": k.RA(), "rf": k.RF()} {
		if len(buf) != nx {
			return nil, fmt.Errorf("%s: %w: kernel buffer has %d values, grid %d", name, ErrShapeMismatch, len(buf), nx)
		}
	}

	return &Propagator1D{
		lifecycle: l,
		kernel:    k,
		coef:      coef,
		pts:       g.Points(),
		edges:     grid.Indices{X: []int{0, nx - 1}, I: make([]int, 2)},
		bvalue:    make([]complex128, 2),
	}, nil
}

// Reset evaluates ra and rf, snapshots them into the kernel, reseeds the
// field and evaluates ra and rf again. Both kernel buffer sets end up holding
// the axial-index-0 coefficients; ra is never refreshed while stepping.
func (p *Propagator1D) Reset() error {
	p.rewind()
	if err := p.loadCoefficients(); err != nil {
		return err
	}
	p.kernel.Update()
	p.seed(p.kernel.U())
	if err := p.applyBoundary(); err != nil {
		p.ready = false
		return err
	}
	if err := p.loadCoefficients(); err != nil {
		p.ready = false
		return err
	}
	return nil
}

// Step advances the axial index, refreshes boundary values and rf for the
// new index, then solves.
func (p *Propagator1D) Step() error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.update(); err != nil {
		return p.fail("update", err)
	}
	if err := p.kernel.Step(); err != nil {
		return p.fail("step", err)
	}
	if err := p.check(p.kernel.U()); err != nil {
		return p.fail("step", err)
	}
	return nil
}

func (p *Propagator1D) update() error {
	p.kernel.Update()
	if err := p.applyBoundary(); err != nil {
		return err
	}
	if !p.coef.ConstantInZ {
		p.pts.SetIndex(p.i)
		return evaluate("rf", p.coef.RF, p.kernel.RF(), p.pts)
	}
	return nil
}

func (p *Propagator1D) loadCoefficients() error {
	p.pts.SetIndex(p.i)
	if err := evaluate("ra", p.coef.RA, p.kernel.RA(), p.pts); err != nil {
		return err
	}
	return evaluate("rf", p.coef.RF, p.kernel.RF(), p.pts)
}

func (p *Propagator1D) applyBoundary() error {
	p.edges.SetIndex(p.i)
	if err := evaluateBoundary(p.coef.Boundary, p.bvalue, p.edges); err != nil {
		return err
	}
	u := p.kernel.U()
	for k, ix := range p.edges.X {
		u[ix] = p.bvalue[k]
	}
	return nil
}

// Field returns the kernel's field buffer. It is mutated by every Step.
func (p *Propagator1D) Field() []complex128 {
	return p.kernel.U()
}

// SetField copies f into the kernel's field buffer.
func (p *Propagator1D) SetField(f []complex128) error {
	u := p.kernel.U()
	if len(f) != len(u) {
		return fmt.Errorf("%w: field has %d values, grid %d", ErrShapeMismatch, len(f), len(u))
	}
	copy(u, f)
	return nil
}

func (p *Propagator1D) Snapshot() []complex128 {
	u := p.kernel.U()
	s := make([]complex128, len(u))
	copy(s, u)
	return s
}
