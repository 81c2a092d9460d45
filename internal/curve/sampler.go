package curve

import (
	"context"
	"math"

	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/spring"
)

// Sampler evaluates curves on a fixed grid and feeds every sample to its
// metrics and observers. A Sampler is not safe for concurrent use.
type Sampler struct {
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(metrics ...dynamo.Metric) *Sampler {
	return &Sampler{
		metrics:   metrics,
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Sampler) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Sample evaluates ease at t = i·dt for i in [0, steps].
func (s *Sampler) Sample(ctx context.Context, ease spring.Easing, cfg dynamo.Config) (*dynamo.Result, error) {
	return s.run(ctx, cfg, func(i int, t float64) float64 {
		return ease(t)
	})
}

// Integrate steps sys from x0 and records x[0] at every grid point. With
// ValidateState set, a non-finite component anywhere in the state fails the
// sample, not only a non-finite position.
func (s *Sampler) Integrate(ctx context.Context, sys dynamo.System, integ dynamo.Integrator, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	x := x0.Clone()
	prev := 0
	return s.run(ctx, cfg, func(i int, t float64) float64 {
		for ; prev < i; prev++ {
			x = integ.Step(sys, x, float64(prev)*cfg.Dt, cfg.Dt)
		}
		if cfg.ValidateState && !x.IsValid() {
			return math.NaN()
		}
		return x[0]
	})
}

func (s *Sampler) run(ctx context.Context, cfg dynamo.Config, next func(i int, t float64) float64) (*dynamo.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &dynamo.Result{
		Times:   make([]float64, 0, steps+1),
		Values:  make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		v := next(i, t)

		if cfg.ValidateState && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return result, &dynamo.SampleError{Index: i, Time: t, Value: v, Wrapped: dynamo.ErrInvalidState}
		}

		for _, m := range s.metrics {
			m.Observe(t, v)
		}
		for _, obs := range s.observers {
			obs.OnSample(t, v)
		}

		result.Times = append(result.Times, t)
		result.Values = append(result.Values, v)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// Grid evaluates ease on the sampling grid in parallel, without metrics.
func Grid(ease spring.Easing, cfg dynamo.Config) ([]float64, []float64) {
	n := cfg.Steps() + 1
	times := make([]float64, n)
	values := make([]float64, n)

	dynamo.ParallelFor(n, 512, func(start, end int) {
		for i := start; i < end; i++ {
			t := float64(i) * cfg.Dt
			times[i] = t
			values[i] = ease(t)
		}
	})

	return times, values
}
