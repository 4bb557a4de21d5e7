// Package experiment assembles a runnable propagation from a run
// configuration: grid, model, coefficient evaluators, kernel, propagator and
// the default metrics.
package experiment

import (
	"context"
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/san-kum/fdprop/internal/config"
	"github.com/san-kum/fdprop/internal/evaluator"
	"github.com/san-kum/fdprop/internal/grid"
	"github.com/san-kum/fdprop/internal/kernel"
	"github.com/san-kum/fdprop/internal/metrics"
	"github.com/san-kum/fdprop/internal/models"
	"github.com/san-kum/fdprop/internal/pde"
	"github.com/san-kum/fdprop/internal/propagate"
	"github.com/san-kum/fdprop/internal/runner"
)

type Experiment struct {
	cfg    config.Config
	grid   *grid.Grid
	runner *runner.Runner
}

// New validates cfg and wires every component of the run. It does not
// reset the propagator; Run does.
func New(cfg *config.Config, reg *models.Registry, logger log.Logger) (*Experiment, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	model, err := reg.Get(cfg.Model)
	if err != nil {
		return nil, err
	}
	setup := model.Build(cfg.Params)
	logger = log.With(logger, "model", model.Name)

	prop, err := newPropagator(cfg, g, setup, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", model.Name, err)
	}

	r := runner.New(prop, runner.WithLogger(logger))
	for _, m := range DefaultMetrics(g) {
		r.AddMetric(m)
	}
	return &Experiment{cfg: *cfg, grid: g, runner: r}, nil
}

func newPropagator(cfg *config.Config, g *grid.Grid, setup models.Setup, logger log.Logger) (propagate.Propagator, error) {
	evalOpts := evaluator.Options{Parallel: cfg.Parallel, Workers: cfg.Workers}
	initial := pde.Sample(g, g.Z0(), setup.Initial)
	opts := []propagate.Option{
		propagate.WithLogger(logger),
		propagate.WithFieldValidation(cfg.CheckField),
	}

	if g.Dim() == 1 {
		coef, err := pde.Coefficients1D(setup.Equation, g, evalOpts)
		if err != nil {
			return nil, err
		}
		return propagate.New1D(g, kernel.NewCN1D(), coef, initial, opts...)
	}

	coef, err := pde.Coefficients2D(setup.Equation, g, evalOpts)
	if err != nil {
		return nil, err
	}
	workers := 1
	if cfg.Parallel {
		workers = cfg.Workers
	}
	return propagate.New2D(g, kernel.NewADI(kernel.WithWorkers(workers)), coef, initial, opts...)
}

// DefaultMetrics returns fresh power, power drift and peak intensity metrics
// weighted by the transverse cell size of g.
func DefaultMetrics(g *grid.Grid) []runner.Metric {
	cell := g.Dx()
	if g.Dim() == 2 {
		cell *= g.Dy()
	}
	return []runner.Metric{
		metrics.NewPower(cell),
		metrics.NewPowerDrift(cell),
		metrics.NewPeakIntensity(),
	}
}

func (e *Experiment) Run(ctx context.Context) (*runner.Result, error) {
	return e.runner.Run(ctx, runner.Config{Steps: e.cfg.Steps, SampleEvery: e.cfg.SampleEvery})
}

// Runner returns the underlying runner for adding observers.
func (e *Experiment) Runner() *runner.Runner { return e.runner }

func (e *Experiment) Grid() *grid.Grid { return e.grid }
