package propagate

import (
	"fmt"
	"math/cmplx"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/san-kum/fdprop/internal/grid"
	"gonum.org/v1/gonum/mat"
)

// Propagator is the lifecycle shared by the 1D and 2D engines.
type Propagator interface {
	// Reset primes the kernel, rewinds the axial index to 0 and reseeds the
	// field from the initial field.
	Reset() error
	// Step advances the field by one axial step.
	Step() error
	Index() int
	Z() float64
	Grid() *grid.Grid
	// Snapshot returns a row-major copy of the current field.
	Snapshot() []complex128
}

// Option configures a propagator.
type Option func(*options)

type options struct {
	logger   log.Logger
	validate bool
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFieldValidation makes Step fail with ErrInvalidField when the kernel
// leaves NaN or Inf in the field.
func WithFieldValidation(on bool) Option {
	return func(o *options) { o.validate = on }
}

type lifecycle struct {
	grid     *grid.Grid
	initial  []complex128
	i        int
	ready    bool
	logger   log.Logger
	validate bool
}

func newLifecycle(g *grid.Grid, initial []complex128, opts []Option) (lifecycle, error) {
	o := options{logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if len(initial) != g.Size() {
		return lifecycle{}, fmt.Errorf("initial field: %w: %d values for %d samples", ErrShapeMismatch, len(initial), g.Size())
	}
	l := lifecycle{
		grid:     g,
		initial:  make([]complex128, len(initial)),
		logger:   log.With(o.logger, "dim", g.Dim()),
		validate: o.validate,
	}
	copy(l.initial, initial)
	return l, nil
}

func (l *lifecycle) Index() int       { return l.i }
func (l *lifecycle) Z() float64       { return l.grid.Z(l.i) }
func (l *lifecycle) Grid() *grid.Grid { return l.grid }

// rewind invalidates the state ahead of a reset.
func (l *lifecycle) rewind() {
	l.i = 0
	l.ready = false
}

// seed is the shared reset hook: axial index 0 and the initial field.
func (l *lifecycle) seed(u []complex128) {
	l.i = 0
	copy(u, l.initial)
	l.ready = true
	level.Debug(l.logger).Log("msg", "reset", "z", l.Z())
}

func (l *lifecycle) advance() error {
	if !l.ready {
		return ErrNotReset
	}
	l.i++
	return nil
}

// fail poisons the state; a failed step leaves coefficients at mixed axial
// offsets, so only Reset may follow.
func (l *lifecycle) fail(phase string, err error) error {
	l.ready = false
	level.Error(l.logger).Log("msg", "step failed", "index", l.i, "phase", phase, "err", err)
	return &StepError{Index: l.i, Phase: phase, Wrapped: err}
}

func (l *lifecycle) check(u []complex128) error {
	if !l.validate {
		return nil
	}
	if k, ok := firstNonFinite(u); ok {
		return fmt.Errorf("%w at sample %d", ErrInvalidField, k)
	}
	return nil
}

func evaluate(name string, e Evaluator, dst []complex128, pts grid.Points) error {
	if len(dst) != pts.Len() {
		return fmt.Errorf("%s: %w: buffer has %d values, grid %d", name, ErrShapeMismatch, len(dst), pts.Len())
	}
	if err := e.Evaluate(dst, pts); err != nil {
		return fmt.Errorf("%s: %w: %w", name, ErrEvaluation, err)
	}
	if k, ok := firstNonFinite(dst); ok {
		return fmt.Errorf("%s: %w: %v at point %d", name, ErrEvaluation, dst[k], k)
	}
	return nil
}

func evaluateBoundary(b Boundary, dst []complex128, idx grid.Indices) error {
	if err := b.Evaluate(dst, idx); err != nil {
		return fmt.Errorf("boundary: %w: %w", ErrEvaluation, err)
	}
	if k, ok := firstNonFinite(dst); ok {
		return fmt.Errorf("boundary: %w: %v at point %d", ErrEvaluation, dst[k], k)
	}
	return nil
}

func firstNonFinite(v []complex128) (int, bool) {
	for k, x := range v {
		if cmplx.IsNaN(x) || cmplx.IsInf(x) {
			return k, true
		}
	}
	return 0, false
}

// flat exposes the storage of an nx×ny kernel buffer in row-major order.
func flat(name string, m *mat.CDense, nx, ny int) ([]complex128, error) {
	raw := m.RawCMatrix()
	if raw.Rows != nx || raw.Cols != ny || raw.Stride != ny {
		return nil, fmt.Errorf("%s: %w: kernel buffer %dx%d (stride %d), grid %dx%d",
			name, ErrShapeMismatch, raw.Rows, raw.Cols, raw.Stride, nx, ny)
	}
	return raw.Data[:nx*ny], nil
}
