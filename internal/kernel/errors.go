package kernel

import "errors"

var (
	// ErrSingular indicates a zero pivot in the tridiagonal elimination.
	ErrSingular = errors.New("kernel: singular tridiagonal system")

	// ErrSize indicates a requested buffer size below the minimum of 3.
	ErrSize = errors.New("kernel: dimension must be at least 3")
)
