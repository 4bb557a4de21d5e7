package propagate

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/fdprop/internal/grid"
	"github.com/san-kum/fdprop/internal/kernel"
	"gonum.org/v1/gonum/mat"
)

var _ = Describe("Propagator2D", func() {
	const n = 4

	var (
		g    *grid.Grid
		log  *callLog
		coef Coefficients2D
		u0   []complex128
	)

	evaluators := func(name string, fn func(x, y float64, i int) complex128) Pair[Evaluator] {
		return Pair[Evaluator]{
			Before: &recordingEvaluator{name: name + " before", log: log, fn: fn},
			After:  &recordingEvaluator{name: name + " after", log: log, fn: fn},
		}
	}

	BeforeEach(func() {
		var err error
		g, err = grid.New2D(grid.Axis{Min: 0, Max: 3, N: n}, grid.Axis{Min: 0, Max: 3, N: n}, 0, 1)
		Expect(err).NotTo(HaveOccurred())

		log = &callLog{}
		coef = Coefficients2D{
			RA: evaluators("ra", zeroFn),
			RC: evaluators("rc", zeroFn),
			RF: evaluators("rf", zeroFn),
			Boundary: Pair[Boundary]{
				Before: &recordingBoundary{name: "boundary before", log: log, fn: func(int, int, int, int) complex128 { return -1 }},
				After:  &recordingBoundary{name: "boundary after", log: log, fn: func(int, int, int, int) complex128 { return -2 }},
			},
		}
		u0 = make([]complex128, n*n)
		for k := range u0 {
			u0[k] = complex(float64(k), 0)
		}
	})

	newProp := func() *Propagator2D {
		k := recordingADI{ADI: kernel.NewADI(), log: log}
		p, err := New2D(g, k, coef, u0)
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	It("rejects a 1D grid", func() {
		g1, err := grid.New1D(grid.Axis{Min: 0, Max: 1, N: 4}, 0, 1)
		Expect(err).NotTo(HaveOccurred())
		_, err = New2D(g1, kernel.NewADI(), coef, make([]complex128, 4))
		Expect(err).To(MatchError(ErrShapeMismatch))
	})

	It("fails fast when stepped before reset", func() {
		Expect(newProp().Step()).To(MatchError(ErrNotReset))
	})

	Describe("Reset", func() {
		It("loads Before, snapshots a zero field, then loads After and seeds", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			Expect(log.calls).To(Equal([]string{
				"ra before@0", "rc before@0", "rf before@0",
				"update",
				"ra after@0", "rc after@0", "rf after@0",
				"boundary after@0",
			}))
		})

		It("imposes the After boundary at index 0 over the whole perimeter", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			u := p.Field()
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if i == 0 || j == 0 || i == n-1 || j == n-1 {
						Expect(u.At(i, j)).To(Equal(complex(-2, 0)), "edge (%d,%d)", i, j)
					} else {
						Expect(u.At(i, j)).To(Equal(u0[i*n+j]), "interior (%d,%d)", i, j)
					}
				}
			}
		})
	})

	Describe("Step", func() {
		It("runs update(before), step_1, update(after), step_2", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			log.reset()

			Expect(p.Step()).To(Succeed())
			Expect(p.Index()).To(Equal(1))
			Expect(log.calls).To(Equal([]string{
				"update", "boundary before@1", "ra before@1", "rc before@1", "rf before@1",
				"step_1",
				"update", "boundary after@1", "ra after@1", "rc after@1", "rf after@1",
				"step_2",
			}))
		})

		It("only refreshes boundaries when coefficients are constant in z", func() {
			coef.ConstantInZ = true
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			log.reset()

			Expect(p.Step()).To(Succeed())
			Expect(p.Step()).To(Succeed())
			Expect(p.Index()).To(Equal(2))
			Expect(log.calls).To(Equal([]string{
				"update", "boundary before@1", "step_1", "update", "boundary after@1", "step_2",
				"update", "boundary before@2", "step_1", "update", "boundary after@2", "step_2",
			}))
		})

		It("keeps the interior with zero coefficients", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			Expect(p.Step()).To(Succeed())
			u := p.Field()
			Expect(u.At(1, 1)).To(Equal(u0[1*n+1]))
			Expect(u.At(2, 2)).To(Equal(u0[2*n+2]))
			Expect(u.At(0, 1)).To(Equal(complex(-2, 0)))
		})

		It("wraps a kernel failure with the half-step phase", func() {
			coef.RC = evaluators("rc", func(float64, float64, int) complex128 { return -0.5 })
			coef.RF = evaluators("rf", zeroFn)
			p := newProp()
			Expect(p.Reset()).To(Succeed())

			// 1 + 2·rc - rf = 0 on every diagonal entry
			err := p.Step()
			var se *StepError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Phase).To(Equal("step_1"))
			Expect(err).To(MatchError(kernel.ErrSingular))
		})
	})

	Describe("updateBoundary", func() {
		slotBoundary := func() Pair[Boundary] {
			b := &recordingBoundary{name: "slots", log: log, fn: func(slot, _, _, _ int) complex128 {
				return complex(float64(slot), 0)
			}}
			return Pair[Boundary]{Before: b, After: b}
		}

		It("writes exactly the 2·nx + 2·ny perimeter values", func() {
			var seen int
			coef.Boundary = Pair[Boundary]{
				Before: &recordingBoundary{name: "count", log: log, fn: func(int, int, int, int) complex128 { seen++; return 9 }},
			}
			coef.Boundary.After = coef.Boundary.Before
			p := newProp()
			Expect(p.SetField(mat.NewCDense(n, n, append([]complex128(nil), u0...)))).To(Succeed())

			Expect(p.updateBoundary(Before)).To(Succeed())
			Expect(seen).To(Equal(2*n + 2*n))

			u := p.Field()
			for _, ij := range [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}} {
				Expect(u.At(ij[0], ij[1])).To(Equal(u0[ij[0]*n+ij[1]]))
			}
		})

		It("scatters bottom, top, left, right so corners keep the side values", func() {
			coef.Boundary = slotBoundary()
			p := newProp()
			Expect(p.updateBoundary(After)).To(Succeed())
			u := p.Field()

			slot := func(s int) complex128 { return complex(float64(s), 0) }
			// bottom: slots 0..3 at (k, 0); top: 4..7 at (k, 3)
			Expect(u.At(1, 0)).To(Equal(slot(1)))
			Expect(u.At(2, n-1)).To(Equal(slot(n + 2)))
			// left: slots 8..11 at (0, k); right: 12..15 at (3, k)
			Expect(u.At(0, 1)).To(Equal(slot(2*n + 1)))
			Expect(u.At(n-1, 2)).To(Equal(slot(2*n + n + 2)))

			Expect(u.At(0, 0)).To(Equal(slot(2 * n)))
			Expect(u.At(0, n-1)).To(Equal(slot(2*n + n - 1)))
			Expect(u.At(n-1, 0)).To(Equal(slot(2*n + n)))
			Expect(u.At(n-1, n-1)).To(Equal(slot(2*n + 2*n - 1)))
		})

		It("passes the edge positions in perimeter order", func() {
			idx := perimeterIndices(perimeter(3, 2))
			Expect(idx.X).To(Equal([]int{0, 1, 2, 0, 1, 2, 0, 0, 2, 2}))
			Expect(idx.Y).To(Equal([]int{0, 0, 0, 1, 1, 1, 0, 1, 0, 1}))
		})
	})

	Describe("field access", func() {
		It("round-trips SetField through Field", func() {
			p := newProp()
			f := mat.NewCDense(n, n, nil)
			f.Set(2, 3, 5i)
			Expect(p.SetField(f)).To(Succeed())
			Expect(p.Field().At(2, 3)).To(Equal(5i))
			Expect(p.Field().At(0, 0)).To(Equal(complex(0, 0)))
		})

		It("rejects a field of the wrong shape", func() {
			p := newProp()
			Expect(p.SetField(mat.NewCDense(n, n+1, nil))).To(MatchError(ErrShapeMismatch))
		})
	})

	It("gives identical results whether coefficients are cached or recomputed", func() {
		const nx, ny = 13, 9
		gr, err := grid.New2D(grid.Axis{Min: -3, Max: 3, N: nx}, grid.Axis{Min: -2, Max: 2, N: ny}, 0, 0.05)
		Expect(err).NotTo(HaveOccurred())

		start := make([]complex128, nx*ny)
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				x, y := gr.X(i), gr.Y(j)
				start[i*ny+j] = complex(math.Exp(-x*x-2*y*y), 0.1*x)
			}
		}
		ra := func(x, y float64, _ int) complex128 { return complex(0.01*y*y, 0.2+0.01*x) }
		rc := func(x, y float64, _ int) complex128 { return complex(0, 0.3-0.02*x*y) }
		rf := func(x, y float64, _ int) complex128 { return complex(-0.01*(x*x+y*y), 0.003*x) }
		pair := func(fn func(x, y float64, i int) complex128) Pair[Evaluator] {
			return Pair[Evaluator]{
				Before: &recordingEvaluator{name: "before", log: &callLog{}, fn: fn},
				After:  &recordingEvaluator{name: "after", log: &callLog{}, fn: fn},
			}
		}
		edge := &recordingBoundary{name: "b", log: &callLog{}, fn: func(_, ix, iy, i int) complex128 {
			return complex(0.01*float64(ix-iy), 0.001*float64(i))
		}}

		run := func(constant bool) (*Propagator2D, *kernel.ADI) {
			k := kernel.NewADI()
			p, err := New2D(gr, k, Coefficients2D{
				RA: pair(ra), RC: pair(rc), RF: pair(rf),
				Boundary:    Pair[Boundary]{Before: edge, After: edge},
				ConstantInZ: constant,
			}, start)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Reset()).To(Succeed())
			for i := 0; i < 15; i++ {
				Expect(p.Step()).To(Succeed())
			}
			return p, k
		}

		cached, kc := run(true)
		fresh, kf := run(false)
		Expect(kc.RA().RawCMatrix().Data).To(Equal(kf.RA().RawCMatrix().Data))
		Expect(kc.RC().RawCMatrix().Data).To(Equal(kf.RC().RawCMatrix().Data))
		Expect(kc.RF().RawCMatrix().Data).To(Equal(kf.RF().RawCMatrix().Data))
		Expect(cached.Index()).To(Equal(15))
		Expect(cached.Snapshot()).To(Equal(fresh.Snapshot()))
	})

	It("names half-steps", func() {
		Expect(Before.String()).To(Equal("before"))
		Expect(After.String()).To(Equal("after"))
		Expect(Pair[int]{Before: 1, After: 2}.At(After)).To(Equal(2))
	})
})
