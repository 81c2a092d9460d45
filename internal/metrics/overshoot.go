package metrics

import "math"

// Overshoot is how far the curve peaks past its rest value.
type Overshoot struct {
	name   string
	target float64
	peak   float64
	seen   bool
}

func NewOvershoot(target float64) *Overshoot {
	return &Overshoot{
		name:   "overshoot",
		target: target,
	}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(t, v float64) {
	if !o.seen || v > o.peak {
		o.peak = v
		o.seen = true
	}
}

func (o *Overshoot) Value() float64 {
	if !o.seen {
		return 0
	}
	return math.Max(o.peak-o.target, 0)
}

func (o *Overshoot) Reset() {
	o.peak = 0
	o.seen = false
}

// PeakTime is when the curve reaches its maximum.
type PeakTime struct {
	name string
	peak float64
	at   float64
	seen bool
}

func NewPeakTime() *PeakTime {
	return &PeakTime{name: "peak_time"}
}

func (p *PeakTime) Name() string { return p.name }

func (p *PeakTime) Observe(t, v float64) {
	if !p.seen || v > p.peak {
		p.peak = v
		p.at = t
		p.seen = true
	}
}

func (p *PeakTime) Value() float64 { return p.at }

func (p *PeakTime) Reset() {
	p.peak = 0
	p.at = 0
	p.seen = false
}
