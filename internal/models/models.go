package models

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/fdprop/internal/pde"
)

// Setup is a ready-to-discretize propagation problem.
type Setup struct {
	Equation pde.Equation
	// Initial is the field at the start of the propagation.
	Initial pde.PointFunc
}

// Model builds a Setup from parameters; missing parameters take Defaults.
type Model struct {
	Name        string
	Description string
	Defaults    map[string]float64
	build       func(p params) Setup
}

func (m Model) Build(overrides map[string]float64) Setup {
	p := params{}
	for k, v := range m.Defaults {
		p[k] = v
	}
	for k, v := range overrides {
		p[k] = v
	}
	return m.build(p)
}

type params map[string]float64

func (p params) k() float64 {
	return 2 * math.Pi * p["n0"] / p["wavelength"]
}

// paraxial returns the equation for refractive index n(x, y, z).
func (p params) paraxial(n func(x, y, z float64) complex128, constant bool) pde.Equation {
	k, n0 := p.k(), complex(p["n0"], 0)
	return pde.Equation{
		B: pde.Const(complex(0, 1/(2*k))),
		F: func(x, y, z float64) complex128 {
			r := n(x, y, z) / n0
			return complex(0, k/2) * (r*r - 1)
		},
		Boundary:    pde.Const(0),
		ConstantInZ: constant,
	}
}

func (p params) gaussian() pde.PointFunc {
	w := p["waist"]
	return func(x, y, _ float64) complex128 {
		return complex(math.Exp(-(x*x+y*y)/(w*w)), 0)
	}
}

func gaussian() Model {
	return Model{
		Name:        "gaussian",
		Description: "free-space Gaussian beam",
		Defaults:    map[string]float64{"wavelength": 1, "n0": 1, "waist": 4},
		build: func(p params) Setup {
			n0 := complex(p["n0"], 0)
			return Setup{
				Equation: p.paraxial(func(float64, float64, float64) complex128 { return n0 }, true),
				Initial:  p.gaussian(),
			}
		},
	}
}

func waveguide() Model {
	return Model{
		Name:        "waveguide",
		Description: "step-index slab (1D) or fibre (2D) guiding a Gaussian beam",
		Defaults: map[string]float64{
			"wavelength": 1, "n0": 1.45, "waist": 3,
			"core_radius": 4, "core_index": 1.46,
		},
		build: func(p params) Setup {
			r, core, clad := p["core_radius"], complex(p["core_index"], 0), complex(p["n0"], 0)
			n := func(x, y, _ float64) complex128 {
				if x*x+y*y <= r*r {
					return core
				}
				return clad
			}
			return Setup{Equation: p.paraxial(n, true), Initial: p.gaussian()}
		},
	}
}

func absorber() Model {
	return Model{
		Name:        "absorber",
		Description: "Gaussian beam entering an absorbing half-space at z_start",
		Defaults: map[string]float64{
			"wavelength": 1, "n0": 1, "waist": 4,
			"z_start": 10, "delta": 1e-4, "beta": 1e-3,
		},
		build: func(p params) Setup {
			start, n0 := p["z_start"], complex(p["n0"], 0)
			inside := n0 - complex(p["delta"], -p["beta"])
			n := func(_, _, z float64) complex128 {
				if z >= start {
					return inside
				}
				return n0
			}
			return Setup{Equation: p.paraxial(n, false), Initial: p.gaussian()}
		},
	}
}

func planewave() Model {
	return Model{
		Name:        "planewave",
		Description: "tilted plane wave with the exact solution imposed on the boundary",
		Defaults:    map[string]float64{"wavelength": 1, "n0": 1, "kx": 0.5, "ky": 0},
		build: func(p params) Setup {
			k, kx, ky := p.k(), p["kx"], p["ky"]
			exact := func(x, y, z float64) complex128 {
				phase := kx*x + ky*y - (kx*kx+ky*ky)*z/(2*k)
				return cmplx.Exp(complex(0, phase))
			}
			n0 := complex(p["n0"], 0)
			eq := p.paraxial(func(float64, float64, float64) complex128 { return n0 }, true)
			eq.Boundary = exact
			return Setup{Equation: eq, Initial: exact}
		},
	}
}
