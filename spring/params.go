package spring

import "math"

const (
	DefaultDuration = 0.8
	DefaultBounce   = 0.3

	// durationScale stretches the perceptual duration onto the oscillator's
	// time constant so settling matches the reference curves.
	durationScale = 1.2
)

// PerceptualParams describes a spring by apparent duration (seconds) and bounce in [-1, 1].
type PerceptualParams struct {
	Duration float64 `json:"duration" yaml:"duration"`
	Bounce   float64 `json:"bounce" yaml:"bounce"`
}

// Validate reports the first parameter outside its range.
func (p PerceptualParams) Validate() error {
	if !(p.Duration > 0) {
		return &ArgumentError{Param: "duration", Value: p.Duration, Reason: "duration must be greater than 0"}
	}
	if !(p.Bounce >= -1 && p.Bounce <= 1) {
		return &ArgumentError{Param: "bounce", Value: p.Bounce, Reason: "bounce must be between -1 and 1"}
	}
	return nil
}

func (p PerceptualParams) Physical() PhysicalParams {
	return Translate(p.Duration, p.Bounce)
}

// PhysicalParams are the classical parameters of a damped harmonic oscillator.
type PhysicalParams struct {
	Stiffness float64 `json:"stiffness" yaml:"stiffness"`
	Damping   float64 `json:"damping" yaml:"damping"`
	Mass      float64 `json:"mass" yaml:"mass"`
}

// DampingRatio is zeta = c / (2·sqrt(k·m)).
func (p PhysicalParams) DampingRatio() float64 {
	return p.Damping / (2 * math.Sqrt(p.Stiffness*p.Mass))
}

// AngularFrequency is the undamped natural frequency sqrt(k/m).
func (p PhysicalParams) AngularFrequency() float64 {
	return math.Sqrt(p.Stiffness / p.Mass)
}

func (p PhysicalParams) Underdamped() bool {
	return p.DampingRatio() < 1
}

func (p PhysicalParams) Easing(velocity float64) Easing {
	return FromPhysical(p.Stiffness, p.Damping, p.Mass, velocity)
}

// Translate maps perceptual duration and bounce onto stiffness, damping and
// mass. It does not validate its input; bounce > 1 selects the second damping
// branch, which [New] never reaches.
func Translate(duration, bounce float64) PhysicalParams {
	bnc := 1 - bounce
	adjustedDuration := duration * durationScale

	mass := 1.0
	root := (2 * math.Pi) / adjustedDuration
	stiffness := root * root

	if bnc >= 0 {
		return PhysicalParams{
			Stiffness: stiffness,
			Damping:   (1 - (4*math.Pi*bnc)/adjustedDuration) * -1,
			Mass:      mass,
		}
	}
	return PhysicalParams{
		Stiffness: stiffness,
		Damping:   ((4 * math.Pi) / (adjustedDuration + 4*math.Pi*bnc)) * -1,
		Mass:      mass,
	}
}
