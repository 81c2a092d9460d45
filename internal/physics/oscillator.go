package physics

import (
	"math"

	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/spring"
)

var _ dynamo.Hamiltonian = (*Oscillator)(nil)

// Oscillator is a single damped mass pulled towards Target.
// State is [position, velocity].
type Oscillator struct {
	Stiffness float64
	Damping   float64
	Mass      float64
	Target    float64
}

func NewOscillator(p spring.PhysicalParams) *Oscillator {
	return &Oscillator{
		Stiffness: p.Stiffness,
		Damping:   p.Damping,
		Mass:      p.Mass,
		Target:    1.0,
	}
}

func (o *Oscillator) StateDim() int { return 2 }

func (o *Oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	pos, vel := x[0], x[1]
	force := -o.Stiffness*(pos-o.Target) - o.Damping*vel
	return dynamo.State{vel, force / o.Mass}
}

// Energy is kinetic plus spring potential relative to Target.
func (o *Oscillator) Energy(x dynamo.State) float64 {
	stretch := x[0] - o.Target
	return 0.5*o.Mass*x[1]*x[1] + 0.5*o.Stiffness*stretch*stretch
}

// Exact is the analytic trajectory starting at rest position 0 with velocity v0.
func (o *Oscillator) Exact(v0 float64) func(t float64) float64 {
	omega := math.Sqrt(o.Stiffness / o.Mass)
	zeta := o.Damping / (2 * math.Sqrt(o.Stiffness*o.Mass))
	y0 := -o.Target

	switch {
	case zeta < 1:
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		b := (v0 + zeta*omega*y0) / omegaD
		return func(t float64) float64 {
			return o.Target + math.Exp(-zeta*omega*t)*(y0*math.Cos(omegaD*t)+b*math.Sin(omegaD*t))
		}
	case zeta == 1:
		b := v0 + omega*y0
		return func(t float64) float64 {
			return o.Target + (y0+b*t)*math.Exp(-omega*t)
		}
	default:
		alpha := omega * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*omega + alpha
		r2 := -zeta*omega - alpha
		c1 := (v0 - r2*y0) / (r1 - r2)
		c2 := y0 - c1
		return func(t float64) float64 {
			return o.Target + c1*math.Exp(r1*t) + c2*math.Exp(r2*t)
		}
	}
}
