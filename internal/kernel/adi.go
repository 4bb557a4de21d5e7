package kernel

import (
	"gonum.org/v1/gonum/mat"
)

// ADI is a Peaceman–Rachford kernel on an nx×ny grid. Coefficients are the
// half-step weights
//
//	ra: dz·B/(2·dx²)   rc: dz·B/(2·dy²)   rf: dz·F/4
//
// Step1 is implicit along y (rc) and explicit along x (ra); Step2 swaps the
// roles. The outermost rows and columns hold boundary values.
type ADI struct {
	u, up   *mat.CDense
	ra, rap *mat.CDense
	rc, rcp *mat.CDense
	rf, rfp *mat.CDense

	workers  int
	minChunk int
}

// ADIOption configures an ADI kernel.
type ADIOption func(*ADI)

// WithWorkers bounds the number of goroutines used for row sweeps. n <= 0
// means GOMAXPROCS; 1 disables parallelism.
func WithWorkers(n int) ADIOption {
	return func(k *ADI) { k.workers = n }
}

func NewADI(opts ...ADIOption) *ADI {
	k := &ADI{workers: 1, minChunk: 16}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *ADI) Resize(nx, ny int) error {
	if nx < 3 || ny < 3 {
		return ErrSize
	}
	for _, m := range []**mat.CDense{&k.u, &k.up, &k.ra, &k.rap, &k.rc, &k.rcp, &k.rf, &k.rfp} {
		*m = mat.NewCDense(nx, ny, nil)
	}
	return nil
}

func (k *ADI) U() *mat.CDense  { return k.u }
func (k *ADI) RA() *mat.CDense { return k.ra }
func (k *ADI) RC() *mat.CDense { return k.rc }
func (k *ADI) RF() *mat.CDense { return k.rf }

// Update snapshots the current field and coefficients as the explicit side
// of the next half-step.
func (k *ADI) Update() {
	copyDense(k.up, k.u)
	copyDense(k.rap, k.ra)
	copyDense(k.rcp, k.rc)
	copyDense(k.rfp, k.rf)
}

// Step1 sweeps every interior row, implicit along y.
func (k *ADI) Step1() error {
	return k.sweep(sweep{
		impl: plane(k.rc), expl: plane(k.rap),
		rf: plane(k.rf), rfp: plane(k.rfp),
		u: plane(k.u), up: plane(k.up),
	})
}

// Step2 sweeps every interior column, implicit along x.
func (k *ADI) Step2() error {
	return k.sweep(sweep{
		impl: plane(k.ra).t(), expl: plane(k.rcp).t(),
		rf: plane(k.rf).t(), rfp: plane(k.rfp).t(),
		u: plane(k.u).t(), up: plane(k.up).t(),
	})
}

func (k *ADI) sweep(s sweep) error {
	outer, inner := s.u.rows-2, s.u.cols-2
	return ParallelFor(outer, k.minChunk, k.workers, func(start, end int) error {
		w := newWork(inner)
		for i := start + 1; i <= end; i++ {
			if err := s.line(i, w); err != nil {
				return err
			}
		}
		return nil
	})
}

type work struct {
	a, b, r, x, tmp []complex128
}

func newWork(n int) *work {
	return &work{
		a:   make([]complex128, n),
		b:   make([]complex128, n),
		r:   make([]complex128, n),
		x:   make([]complex128, n),
		tmp: make([]complex128, n),
	}
}

// sweep is one ADI half-step expressed on possibly transposed views so the
// same line solver serves both directions.
type sweep struct {
	impl, expl, rf, rfp, u, up view
}

// line solves the tridiagonal system of row i along the inner index.
func (s sweep) line(i int, w *work) error {
	n := s.u.cols - 2

	for j := 1; j <= n; j++ {
		c := s.impl.at(i, j)
		e := s.expl.at(i, j)
		w.a[j-1] = -c
		w.b[j-1] = 1 + 2*c - s.rf.at(i, j)
		w.r[j-1] = (s.up.at(i+1, j)+s.up.at(i-1, j))*e + s.up.at(i, j)*(1+s.rfp.at(i, j)-2*e)
	}

	w.r[0] += s.u.at(i, 0) * s.impl.at(i, 1)
	w.r[n-1] += s.u.at(i, n+1) * s.impl.at(i, n)

	if err := Thomas(w.a, w.b, w.a, w.r, w.x, w.tmp); err != nil {
		return err
	}
	for j := 1; j <= n; j++ {
		s.u.set(i, j, w.x[j-1])
	}
	return nil
}

// view is a strided window on the raw storage of a CDense.
type view struct {
	data       []complex128
	rows, cols int
	rs, cs     int
}

func plane(m *mat.CDense) view {
	raw := m.RawCMatrix()
	return view{data: raw.Data, rows: raw.Rows, cols: raw.Cols, rs: raw.Stride, cs: 1}
}

func (v view) t() view {
	return view{data: v.data, rows: v.cols, cols: v.rows, rs: v.cs, cs: v.rs}
}

func (v view) at(i, j int) complex128     { return v.data[i*v.rs+j*v.cs] }
func (v view) set(i, j int, x complex128) { v.data[i*v.rs+j*v.cs] = x }

func copyDense(dst, src *mat.CDense) {
	d, s := dst.RawCMatrix(), src.RawCMatrix()
	for i := 0; i < s.Rows; i++ {
		copy(d.Data[i*d.Stride:i*d.Stride+d.Cols], s.Data[i*s.Stride:i*s.Stride+s.Cols])
	}
}
