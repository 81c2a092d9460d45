package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Metric accumulates a single number over a sampled curve.
type Metric interface {
	Name() string
	Observe(t, v float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(t, v float64)
}

// MaxSamples bounds the number of grid points a single Config may request.
const MaxSamples = 1 << 20

type Config struct {
	Dt            float64 `yaml:"dt"`
	Span          float64 `yaml:"span"`
	ValidateState bool    `yaml:"validate"`
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 120,
		Span:          2.0,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %f", ErrInvalidSampling, c.Dt)
	}
	if !(c.Span > 0) || math.IsInf(c.Span, 0) {
		return fmt.Errorf("%w: span must be positive and finite, got %f", ErrInvalidSampling, c.Span)
	}
	if n := math.Round(c.Span / c.Dt); n+1 > MaxSamples {
		return fmt.Errorf("%w: span/dt asks for %.0f samples, limit is %d", ErrInvalidSampling, n+1, MaxSamples)
	}
	return nil
}

// Steps is the number of intervals in the window; samples = Steps()+1.
func (c Config) Steps() int {
	return int(math.Round(c.Span / c.Dt))
}

type Result struct {
	Engine  string             `json:"engine"`
	Times   []float64          `json:"times"`
	Values  []float64          `json:"values"`
	Metrics map[string]float64 `json:"metrics"`
}

// Last returns the final sampled value, or NaN for an empty result.
func (r *Result) Last() float64 {
	if len(r.Values) == 0 {
		return math.NaN()
	}
	return r.Values[len(r.Values)-1]
}

// FiniteMetrics drops NaN and Inf entries, which JSON cannot encode.
func (r *Result) FiniteMetrics() map[string]float64 {
	out := make(map[string]float64, len(r.Metrics))
	for k, v := range r.Metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}
