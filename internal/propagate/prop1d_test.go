package propagate

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/fdprop/internal/grid"
	"github.com/san-kum/fdprop/internal/kernel"
)

var _ = Describe("Propagator1D", func() {
	var (
		g    *grid.Grid
		log  *callLog
		coef Coefficients1D
		u0   []complex128
	)

	BeforeEach(func() {
		var err error
		g, err = grid.New1D(grid.Axis{Min: 0, Max: 4, N: 5}, 0, 0.5)
		Expect(err).NotTo(HaveOccurred())

		log = &callLog{}
		coef = Coefficients1D{
			RA: &recordingEvaluator{name: "ra", log: log, fn: zeroFn},
			RF: &recordingEvaluator{name: "rf", log: log, fn: zeroFn},
			Boundary: &recordingBoundary{name: "boundary", log: log, fn: func(_, ix, _, i int) complex128 {
				return complex(float64(ix), float64(i))
			}},
		}
		u0 = []complex128{1, 1, 1, 1, 1}
	})

	newProp := func(opts ...Option) *Propagator1D {
		p, err := New1D(g, recordingCN1D{CN1D: kernel.NewCN1D(), log: log}, coef, u0, opts...)
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	Describe("construction", func() {
		It("rejects a 2D grid", func() {
			g2, err := grid.New2D(grid.Axis{Min: 0, Max: 1, N: 3}, grid.Axis{Min: 0, Max: 1, N: 3}, 0, 1)
			Expect(err).NotTo(HaveOccurred())
			_, err = New1D(g2, kernel.NewCN1D(), coef, make([]complex128, 9))
			Expect(err).To(MatchError(ErrShapeMismatch))
		})

		It("rejects an initial field of the wrong size", func() {
			_, err := New1D(g, kernel.NewCN1D(), coef, []complex128{1, 2})
			Expect(err).To(MatchError(ErrShapeMismatch))
		})

		It("rejects an incomplete coefficient set", func() {
			coef.RF = nil
			_, err := New1D(g, kernel.NewCN1D(), coef, u0)
			Expect(err).To(HaveOccurred())
		})
	})

	It("fails fast when stepped before reset", func() {
		p := newProp()
		Expect(p.Step()).To(MatchError(ErrNotReset))
		Expect(log.calls).To(BeEmpty())
	})

	Describe("Reset", func() {
		It("evaluates coefficients around the kernel update and the seed", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			Expect(log.calls).To(Equal([]string{
				"ra@0", "rf@0", "update", "boundary@0", "ra@0", "rf@0",
			}))
		})

		It("imposes the boundary at axial index 0", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			u := p.Field()
			Expect(u[0]).To(Equal(complex(0, 0)))
			Expect(u[4]).To(Equal(complex(4, 0)))
			Expect(u[1:4]).To(Equal([]complex128{1, 1, 1}))
			Expect(p.Index()).To(Equal(0))
		})

		It("rewinds the axial index after stepping", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			Expect(p.Step()).To(Succeed())
			Expect(p.Step()).To(Succeed())
			log.reset()

			Expect(p.Reset()).To(Succeed())
			Expect(p.Index()).To(Equal(0))
			Expect(log.calls[0]).To(Equal("ra@0"))
		})
	})

	Describe("Step", func() {
		It("advances the index by one and refreshes boundary and rf for it", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			log.reset()

			Expect(p.Step()).To(Succeed())
			Expect(p.Index()).To(Equal(1))
			Expect(p.Z()).To(BeNumerically("~", 0.5, 1e-12))
			Expect(log.calls).To(Equal([]string{"update", "boundary@1", "rf@1", "step"}))

			Expect(p.Step()).To(Succeed())
			Expect(p.Index()).To(Equal(2))
			Expect(p.Field()[0]).To(Equal(complex(0, 2)))
			Expect(p.Field()[4]).To(Equal(complex(4, 2)))
		})

		It("skips the rf refresh when coefficients are constant in z", func() {
			coef.ConstantInZ = true
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			log.reset()

			Expect(p.Step()).To(Succeed())
			Expect(log.calls).To(Equal([]string{"update", "boundary@1", "step"}))
		})

		It("zeroes the endpoints and keeps the interior with zero coefficients", func() {
			coef.Boundary = &recordingBoundary{name: "boundary", log: log, fn: func(int, int, int, int) complex128 { return 0 }}

			run := func() []complex128 {
				p := newProp()
				Expect(p.Reset()).To(Succeed())
				Expect(p.Step()).To(Succeed())
				return p.Snapshot()
			}

			first := run()
			Expect(first).To(Equal([]complex128{0, 1, 1, 1, 0}))
			Expect(run()).To(Equal(first))
		})
	})

	It("gives identical results whether rf is cached or recomputed", func() {
		g, err := grid.New1D(grid.Axis{Min: -5, Max: 5, N: 33}, 0, 0.01)
		Expect(err).NotTo(HaveOccurred())

		u0 := make([]complex128, 33)
		for k := range u0 {
			x := g.X(k)
			u0[k] = complex(math.Exp(-x*x), 0)
		}
		ra := func(x, _ float64, _ int) complex128 { return complex(0, 0.3) }
		rf := func(x, _ float64, _ int) complex128 { return complex(-0.01*x*x, 0.002*x) }

		run := func(constant bool) (*Propagator1D, *kernel.CN1D) {
			k := kernel.NewCN1D()
			p, err := New1D(g, k, Coefficients1D{
				RA:          &recordingEvaluator{name: "ra", log: &callLog{}, fn: ra},
				RF:          &recordingEvaluator{name: "rf", log: &callLog{}, fn: rf},
				Boundary:    &recordingBoundary{name: "b", log: &callLog{}, fn: func(int, int, int, int) complex128 { return 0 }},
				ConstantInZ: constant,
			}, u0)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Reset()).To(Succeed())
			for i := 0; i < 25; i++ {
				Expect(p.Step()).To(Succeed())
			}
			return p, k
		}

		cached, kc := run(true)
		fresh, kf := run(false)
		Expect(kc.RF()).To(Equal(kf.RF()))
		Expect(cached.Snapshot()).To(Equal(fresh.Snapshot()))
	})

	Describe("field access", func() {
		It("round-trips SetField through Field", func() {
			p := newProp()
			f := []complex128{1i, 2, 3i, 4, 5i}
			Expect(p.SetField(f)).To(Succeed())
			Expect(p.Field()).To(Equal(f))
		})

		It("aliases the kernel buffer", func() {
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			view := p.Field()
			view[2] = 42
			Expect(p.Snapshot()[2]).To(Equal(complex128(42)))

			snap := p.Snapshot()
			snap[2] = 7
			Expect(p.Field()[2]).To(Equal(complex128(42)))
		})

		It("rejects a field of the wrong length", func() {
			p := newProp()
			Expect(p.SetField([]complex128{1})).To(MatchError(ErrShapeMismatch))
		})
	})

	Describe("failures", func() {
		It("surfaces evaluator errors from Reset", func() {
			coef.RA = failingEvaluator{err: errBoom}
			p := newProp()
			err := p.Reset()
			Expect(err).To(MatchError(ErrEvaluation))
			Expect(errors.Is(err, errBoom)).To(BeTrue())
		})

		It("rejects non-finite coefficients", func() {
			coef.RF = &recordingEvaluator{name: "rf", log: log, fn: func(float64, float64, int) complex128 {
				return complex(math.Inf(1), 0)
			}}
			p := newProp()
			Expect(p.Reset()).To(MatchError(ErrEvaluation))
		})

		It("wraps step failures and requires a new reset", func() {
			coef.Boundary = &recordingBoundary{name: "boundary", log: log, fn: func(_, _, _, i int) complex128 {
				if i == 2 {
					return complex(math.NaN(), 0)
				}
				return 0
			}}
			p := newProp()
			Expect(p.Reset()).To(Succeed())
			Expect(p.Step()).To(Succeed())

			err := p.Step()
			var se *StepError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Index).To(Equal(2))
			Expect(se.Phase).To(Equal("update"))
			Expect(err).To(MatchError(ErrEvaluation))

			Expect(p.Step()).To(MatchError(ErrNotReset))
		})

		It("detects an invalid field when validation is on", func() {
			p, err := New1D(g, nanKernel{kernel.NewCN1D()}, coef, u0, WithFieldValidation(true))
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Reset()).To(Succeed())
			Expect(p.Step()).To(MatchError(ErrInvalidField))
		})
	})
})
