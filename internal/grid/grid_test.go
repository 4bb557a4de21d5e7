package grid

import (
	"errors"
	"math"
	"testing"
)

func TestNew1D(t *testing.T) {
	g, err := New1D(Axis{Min: -1, Max: 1, N: 5}, 0, 0.1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if g.Dim() != 1 || g.Nx() != 5 || g.Ny() != 0 {
		t.Fatalf("unexpected shape: dim=%d nx=%d ny=%d", g.Dim(), g.Nx(), g.Ny())
	}
	if math.Abs(g.Dx()-0.5) > 1e-12 {
		t.Errorf("dx = %v, want 0.5", g.Dx())
	}
	if g.X(0) != -1 || g.X(4) != 1 {
		t.Errorf("endpoints = %v, %v", g.X(0), g.X(4))
	}
	if math.Abs(g.Z(3)-0.3) > 1e-12 {
		t.Errorf("Z(3) = %v", g.Z(3))
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		x    Axis
		dz   float64
		want error
	}{
		{"too few", Axis{Min: 0, Max: 1, N: 2}, 0.1, ErrTooFewPoints},
		{"inverted", Axis{Min: 1, Max: 0, N: 4}, 0.1, ErrBadRange},
		{"zero dz", Axis{Min: 0, Max: 1, N: 4}, 0, ErrBadStep},
		{"nan dz", Axis{Min: 0, Max: 1, N: 4}, math.NaN(), ErrBadStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New1D(tt.x, 0, tt.dz)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPoints2D(t *testing.T) {
	g, err := New2D(Axis{Min: 0, Max: 2, N: 3}, Axis{Min: 0, Max: 3, N: 4}, 0, 1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	p := g.Points()
	if p.Len() != 12 {
		t.Fatalf("expected 12 points, got %d", p.Len())
	}
	// row-major: k = i*ny + j
	if p.X[5] != 1 || p.Y[5] != 1 {
		t.Errorf("point 5 = (%v, %v), want (1, 1)", p.X[5], p.Y[5])
	}

	p.SetIndex(7)
	for k, i := range p.I {
		if i != 7 {
			t.Fatalf("I[%d] = %d", k, i)
		}
	}
}
