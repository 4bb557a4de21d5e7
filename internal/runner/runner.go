package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/san-kum/fdprop/internal/propagate"
)

var ErrConfig = errors.New("runner: invalid config")

// Runner drives a propagator through Reset and a fixed number of steps.
type Runner struct {
	prop      propagate.Propagator
	metrics   []Metric
	observers []Observer
	logger    log.Logger
}

type Option func(*Runner)

func WithLogger(l log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

func New(p propagate.Propagator, opts ...Option) *Runner {
	r := &Runner{
		prop:    p,
		logger:  log.NewNopLogger(),
		metrics: make([]Metric, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run resets the propagator and advances it cfg.Steps times. Cancellation is
// checked between steps; on cancellation or a step error the partial result
// is returned alongside the error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Z:       make([]float64, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	start := time.Now()
	if err := r.prop.Reset(); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	r.observe(result, cfg)

	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}
		if err := r.prop.Step(); err != nil {
			runErr = err
			break
		}
		result.StepsTaken++
		r.observe(result, cfg)
	}

	result.Final = r.prop.Snapshot()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	logger := log.With(r.logger, "steps", result.StepsTaken, "z", r.prop.Z(), "elapsed", time.Since(start))
	if runErr != nil {
		level.Warn(logger).Log("msg", "run stopped", "err", runErr)
		return result, runErr
	}
	level.Info(logger).Log("msg", "run complete")
	return result, nil
}

func (r *Runner) observe(result *Result, cfg Config) {
	i, z := r.prop.Index(), r.prop.Z()
	field := r.prop.Snapshot()

	result.Z = append(result.Z, z)
	if cfg.SampleEvery > 0 && i%cfg.SampleEvery == 0 {
		result.Samples = append(result.Samples, field)
	}
	for _, m := range r.metrics {
		m.Observe(field, z)
	}
	for _, obs := range r.observers {
		obs.OnStep(i, z, field)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrConfig, cfg.Steps)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample_every must not be negative, got %d", ErrConfig, cfg.SampleEvery)
	}
	return nil
}
