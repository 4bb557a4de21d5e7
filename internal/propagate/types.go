package propagate

import (
	"fmt"

	"github.com/san-kum/fdprop/internal/grid"
	"gonum.org/v1/gonum/mat"
)

// Evaluator fills dst with one value per point. Implementations must be
// deterministic for identical inputs.
type Evaluator interface {
	Evaluate(dst []complex128, pts grid.Points) error
}

// Boundary fills dst with the field values imposed at the given grid
// positions.
type Boundary interface {
	Evaluate(dst []complex128, idx grid.Indices) error
}

// Kernel1D is the implicit solver driven by Propagator1D.
type Kernel1D interface {
	Resize(nx int) error
	U() []complex128
	RA() []complex128
	RF() []complex128
	// Update snapshots the current state as the explicit side of the next step.
	Update()
	Step() error
}

// KernelADI is the alternating-direction solver driven by Propagator2D.
type KernelADI interface {
	Resize(nx, ny int) error
	U() *mat.CDense
	RA() *mat.CDense
	RC() *mat.CDense
	RF() *mat.CDense
	Update()
	// Step1 is implicit along the second transverse axis, Step2 along the first.
	Step1() error
	Step2() error
}

// HalfStep selects one of the two sub-evaluations of an ADI axial step.
type HalfStep int

const (
	// Before precedes the first sweep; its evaluators sit dz/2 behind After.
	Before HalfStep = iota
	// After precedes the second sweep and is evaluated at the step's own z.
	After
)

func (h HalfStep) String() string {
	switch h {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return fmt.Sprintf("HalfStep(%d)", int(h))
	}
}

// Pair holds one value per half-step.
type Pair[T any] struct {
	Before, After T
}

func (p Pair[T]) At(h HalfStep) T {
	if h == Before {
		return p.Before
	}
	return p.After
}

// Coefficients1D are the inputs of a 1D propagation.
type Coefficients1D struct {
	RA, RF   Evaluator
	Boundary Boundary
	// ConstantInZ skips the per-step rf refresh.
	ConstantInZ bool
}

func (c Coefficients1D) validate() error {
	if c.RA == nil || c.RF == nil || c.Boundary == nil {
		return fmt.Errorf("propagate: incomplete 1D coefficient set")
	}
	return nil
}

// Coefficients2D are the inputs of an ADI propagation, one evaluator per
// coefficient and half-step.
type Coefficients2D struct {
	RA, RC, RF Pair[Evaluator]
	Boundary   Pair[Boundary]
	// ConstantInZ skips the per-half-step ra, rc, rf refresh.
	ConstantInZ bool
}

func (c Coefficients2D) validate() error {
	for _, h := range []HalfStep{Before, After} {
		if c.RA.At(h) == nil || c.RC.At(h) == nil || c.RF.At(h) == nil || c.Boundary.At(h) == nil {
			return fmt.Errorf("propagate: incomplete 2D coefficient set (%s)", h)
		}
	}
	return nil
}
