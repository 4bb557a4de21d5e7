package runner

// Metric accumulates a scalar over the sampled slices of one run.
type Metric interface {
	Name() string
	Observe(field []complex128, z float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step, including the reset
// slice at index 0. The field is the propagator's snapshot and may be kept.
type Observer interface {
	OnStep(index int, z float64, field []complex128)
}

type ObserverFunc func(index int, z float64, field []complex128)

func (f ObserverFunc) OnStep(index int, z float64, field []complex128) { f(index, z, field) }

type Config struct {
	Steps int
	// SampleEvery keeps every n-th slice in Result.Samples; 0 keeps none.
	SampleEvery int
}

type Result struct {
	StepsTaken int
	Z          []float64
	Samples    [][]complex128
	Final      []complex128
	Metrics    map[string]float64
}
