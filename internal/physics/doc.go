// Package physics holds the damped harmonic oscillator behind the spring
// curves, written as a [dynamo.System] so the numeric integrators can
// reproduce and cross-check the closed-form easing.
//
//	osc := physics.NewOscillator(spring.Translate(0.8, 0.15))
//	x := dynamo.State{0, 0}
//	energy := osc.Energy(x)
package physics
