package kernel

// CN1D is a Crank–Nicolson kernel for u_z = L u on a single axis, where the
// discrete operator is parametrised per point by
//
//	ra: dz·B/dx²     (diffusion)
//	rf: dz·F/2       (absorption / potential)
//
// The first and last samples are boundary values and are never solved for.
type CN1D struct {
	u, up   []complex128
	ra, rap []complex128
	rf, rfp []complex128

	a, b, r, x, tmp []complex128
}

func NewCN1D() *CN1D {
	return &CN1D{}
}

func (k *CN1D) Resize(n int) error {
	if n < 3 {
		return ErrSize
	}
	k.u, k.up = make([]complex128, n), make([]complex128, n)
	k.ra, k.rap = make([]complex128, n), make([]complex128, n)
	k.rf, k.rfp = make([]complex128, n), make([]complex128, n)

	m := n - 2
	k.a = make([]complex128, m)
	k.b = make([]complex128, m)
	k.r = make([]complex128, m)
	k.x = make([]complex128, m)
	k.tmp = make([]complex128, m)
	return nil
}

func (k *CN1D) U() []complex128  { return k.u }
func (k *CN1D) RA() []complex128 { return k.ra }
func (k *CN1D) RF() []complex128 { return k.rf }

// Update snapshots the current field and coefficients as the explicit side
// of the next step.
func (k *CN1D) Update() {
	copy(k.up, k.u)
	copy(k.rap, k.ra)
	copy(k.rfp, k.rf)
}

// Step solves for the interior of u. u[0] and u[n-1] must already hold the
// boundary values of the new slice.
func (k *CN1D) Step() error {
	n := len(k.u) - 2

	for i := 1; i <= n; i++ {
		k.a[i-1] = -k.ra[i] / 2
		k.b[i-1] = 1 + k.ra[i] - k.rf[i]
		k.r[i-1] = (k.up[i+1]+k.up[i-1])*k.rap[i]/2 + k.up[i]*(1+k.rfp[i]-k.rap[i])
	}

	k.r[0] += k.u[0] * k.ra[1] / 2
	k.r[n-1] += k.u[n+1] * k.ra[n] / 2

	if err := Thomas(k.a, k.b, k.a, k.r, k.x, k.tmp); err != nil {
		return err
	}
	copy(k.u[1:n+1], k.x)
	return nil
}
