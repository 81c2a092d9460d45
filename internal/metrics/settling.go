package metrics

import (
	"math"

	"github.com/san-kum/pdspring/internal/dynamo"
)

const DefaultTolerance = 0.01

// SettlingTime is the first sample time after which the curve stays within
// tolerance of target. It is +Inf if the last sample is still outside.
type SettlingTime struct {
	name      string
	target    float64
	tolerance float64
	settledAt float64
	pending   bool
}

func NewSettlingTime(target, tolerance float64) *SettlingTime {
	return &SettlingTime{
		name:      "settling_time",
		target:    target,
		tolerance: tolerance,
	}
}

func (s *SettlingTime) Name() string { return s.name }

func (s *SettlingTime) Observe(t, v float64) {
	if math.Abs(v-s.target) > s.tolerance || math.IsNaN(v) {
		s.pending = true
		return
	}
	if s.pending {
		s.settledAt = t
		s.pending = false
	}
}

func (s *SettlingTime) Value() float64 {
	if s.pending {
		return math.Inf(1)
	}
	return s.settledAt
}

func (s *SettlingTime) Reset() {
	s.settledAt = 0
	s.pending = false
}

// FinalValue is the last observed displacement.
type FinalValue struct {
	name  string
	value float64
}

func NewFinalValue() *FinalValue {
	return &FinalValue{name: "final_value"}
}

func (f *FinalValue) Name() string         { return f.name }
func (f *FinalValue) Observe(t, v float64) { f.value = v }
func (f *FinalValue) Value() float64       { return f.value }
func (f *FinalValue) Reset()               { f.value = 0 }

// Defaults is the metric set every sampled run reports.
func Defaults() []dynamo.Metric {
	return []dynamo.Metric{
		NewOvershoot(1.0),
		NewPeakTime(),
		NewSettlingTime(1.0, DefaultTolerance),
		NewFinalValue(),
	}
}
