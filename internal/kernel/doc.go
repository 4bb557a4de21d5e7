// Package kernel implements the implicit finite-difference kernels driven by
// the propagators:
//
//   - [CN1D]: Crank–Nicolson step along a single transverse axis
//   - [ADI]: Peaceman–Rachford alternating-direction step on a 2D grid,
//     one tridiagonal sweep per axis ([ADI.Step1] along y, [ADI.Step2] along x)
//
// Both kernels own their field and coefficient buffers. [CN1D.Update] and
// [ADI.Update] snapshot the current field and coefficients as the explicit
// side of the next step; the caller then overwrites the current buffers with
// boundary values and the implicit-side coefficients before stepping.
//
// Buffers returned by the accessors stay valid for the lifetime of the kernel
// and are mutated in place by every step.
package kernel
