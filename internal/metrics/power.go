package metrics

import (
	"math"

	"gonum.org/v1/gonum/cmplxs"
)

// Power tracks the discrete power sum |u|²·cell of the most recent slice.
type Power struct {
	name    string
	cell    float64
	first   float64
	last    float64
	samples int
}

// NewPower weights each sample by cell, the transverse cell size (dx or dx·dy).
func NewPower(cell float64) *Power {
	return &Power{name: "power", cell: cell}
}

func (p *Power) Name() string { return p.name }

func (p *Power) Observe(field []complex128, z float64) {
	n := cmplxs.Norm(field, 2)
	p.last = n * n * p.cell
	if p.samples == 0 {
		p.first = p.last
	}
	p.samples++
}

func (p *Power) Value() float64 { return p.last }

// Drift is the relative change of power between the first and last slices.
func (p *Power) Drift() float64 {
	if p.first == 0 {
		return 0
	}
	return math.Abs(p.last-p.first) / p.first
}

func (p *Power) Reset() {
	p.first, p.last = 0, 0
	p.samples = 0
}

// PowerDrift reports Power.Drift under its own name.
type PowerDrift struct {
	*Power
}

func NewPowerDrift(cell float64) PowerDrift {
	return PowerDrift{Power: NewPower(cell)}
}

func (d PowerDrift) Name() string   { return "power_drift" }
func (d PowerDrift) Value() float64 { return d.Drift() }
