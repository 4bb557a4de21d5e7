// Package propagate advances a complex field along the evolution axis with an
// implicit finite-difference marching scheme.
//
// Two propagators share one lifecycle:
//
//   - [Propagator1D]: drives a [Kernel1D] over an nx-point field
//   - [Propagator2D]: drives a [KernelADI], splitting every axial step into a
//     [Before] and an [After] half-step, one implicit sweep per transverse axis
//
// Coefficients and boundary values come from [Evaluator] and [Boundary]
// implementations; the kernel owns every buffer. Field accessors alias the
// kernel storage, so callers needing a stable snapshot must copy (see
// Snapshot).
//
// # Lifecycle
//
//	p, _ := propagate.New1D(g, kernel.NewCN1D(), coef, u0)
//	if err := p.Reset(); err != nil { ... }
//	for i := 0; i < n; i++ {
//	    if err := p.Step(); err != nil { ... }
//	}
//
// # Thread Safety
//
// Propagators are NOT safe for concurrent use. Step and Reset must be
// serialized by the caller.
package propagate
