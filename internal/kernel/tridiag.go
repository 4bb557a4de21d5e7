package kernel

import "fmt"

// Thomas solves the tridiagonal system
//
//	a[j]·x[j-1] + b[j]·x[j] + c[j]·x[j+1] = r[j],  j = 0..n-1
//
// writing the solution into x. a[0] and c[n-1] are ignored. tmp is scratch of
// length n. a and c may alias.
func Thomas(a, b, c, r, x, tmp []complex128) error {
	n := len(r)
	if n == 0 {
		return nil
	}

	beta := b[0]
	if beta == 0 {
		return fmt.Errorf("%w: row 0", ErrSingular)
	}
	x[0] = r[0] / beta
	for j := 1; j < n; j++ {
		tmp[j] = c[j-1] / beta
		beta = b[j] - a[j]*tmp[j]
		if beta == 0 {
			return fmt.Errorf("%w: row %d", ErrSingular, j)
		}
		x[j] = (r[j] - a[j]*x[j-1]) / beta
	}
	for j := n - 2; j >= 0; j-- {
		x[j] -= tmp[j+1] * x[j+1]
	}
	return nil
}
