package propagate

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates an evaluator, kernel buffer or field whose
	// size disagrees with the grid.
	ErrShapeMismatch = errors.New("propagate: shape mismatch")

	// ErrEvaluation indicates an evaluator failed or produced NaN/Inf.
	ErrEvaluation = errors.New("propagate: coefficient evaluation failed")

	// ErrNotReset indicates Step was called before a successful Reset.
	ErrNotReset = errors.New("propagate: step before reset")

	// ErrInvalidField indicates the kernel produced NaN/Inf values.
	ErrInvalidField = errors.New("propagate: invalid field (NaN or Inf detected)")
)

// StepError wraps a failure with the axial position it occurred at.
type StepError struct {
	Index   int
	Phase   string
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Phase, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
