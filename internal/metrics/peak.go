package metrics

import "math/cmplx"

// PeakIntensity is the largest |u|² seen over the whole run.
type PeakIntensity struct {
	name string
	peak float64
	at   float64
}

func NewPeakIntensity() *PeakIntensity {
	return &PeakIntensity{name: "peak_intensity"}
}

func (p *PeakIntensity) Name() string { return p.name }

func (p *PeakIntensity) Observe(field []complex128, z float64) {
	for _, v := range field {
		a := cmplx.Abs(v)
		if a*a > p.peak {
			p.peak = a * a
			p.at = z
		}
	}
}

func (p *PeakIntensity) Value() float64 { return p.peak }

// Z is the axial position where the peak was observed.
func (p *PeakIntensity) Z() float64 { return p.at }

func (p *PeakIntensity) Reset() {
	p.peak = 0
	p.at = 0
}
