package spring

import "math"

// Easing maps elapsed time or normalized progress to displacement, starting
// at 0 and settling towards 1.
type Easing func(t float64) float64

// New returns the easing curve of a perceptual spring.
func New(duration, bounce float64) (Easing, error) {
	p := PerceptualParams{Duration: duration, Bounce: bounce}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.Physical().Easing(0), nil
}

// Default is New(DefaultDuration, DefaultBounce).
func Default() Easing {
	return MustNew(DefaultDuration, DefaultBounce)
}

func MustNew(duration, bounce float64) Easing {
	ease, err := New(duration, bounce)
	if err != nil {
		panic(err)
	}
	return ease
}

// FromPhysical returns the closed-form displacement of a damped oscillator
// released towards 1. No validation is done: a zero mass or stiffness gives
// NaN or Inf rather than an error.
func FromPhysical(stiffness, damping, mass, velocity float64) Easing {
	zeta := damping / (2 * math.Sqrt(stiffness*mass))
	omega := math.Sqrt(stiffness / mass)
	initialDisplacement := velocity / omega
	decay := -zeta * omega

	if zeta < 1 {
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		return func(t float64) float64 {
			return 1 - math.Exp(decay*t)*
				((initialDisplacement*omega*math.Sin(omegaD*t))/omegaD+
					math.Cos(omegaD*t))
		}
	}

	alpha := omega * math.Sqrt(zeta*zeta-1)
	return func(t float64) float64 {
		// sinh(alpha·t)/alpha → t at critical damping
		velocityTerm := initialDisplacement * omega * t
		if alpha != 0 {
			velocityTerm = (initialDisplacement * omega * math.Sinh(alpha*t)) / alpha
		}
		return 1 - math.Exp(decay*t)*(velocityTerm+math.Cosh(alpha*t))
	}
}

// Lerp interpolates from → to along the curve at t.
func (e Easing) Lerp(from, to, t float64) float64 {
	return from + (to-from)*e(t)
}

// Sample evaluates n evenly spaced points on [0, span].
func (e Easing) Sample(n int, span float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = e(0)
		return out
	}
	step := span / float64(n-1)
	for i := range out {
		out[i] = e(float64(i) * step)
	}
	return out
}
