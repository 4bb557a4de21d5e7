// Package models provides named propagation setups for the CLI.
//
// Each [Model] builds a paraxial [pde.Equation] plus an initial field from a
// parameter map, in units of micrometres:
//
//   - gaussian: free-space Gaussian beam
//   - waveguide: step-index slab (1D) or fibre (2D)
//   - absorber: Gaussian beam entering an absorbing half-space
//   - planewave: tilted plane wave with its exact solution on the boundary
//
// The paraxial envelope u of E = u·exp(i·k·z) obeys
//
//	∂u/∂z = i/(2k)·∇⊥²u + i·k/2·(n²/n0² - 1)·u,   k = 2π·n0/λ
package models
