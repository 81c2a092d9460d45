// Package analysis characterizes sampled easing curves.
//
//   - [PowerSpectrum]: magnitude spectrum via radix-2 [FFT]
//   - [DominantFrequency]: strongest oscillation frequency around the rest value
//   - [ZeroCrossings]: how many times a curve crosses its rest value
//   - [MaxDeviation]: worst pointwise disagreement between two curves
//
// # Comparing Engines
//
// The closed-form curve, the numerically integrated oscillator and the
// harmonica reference spring are sampled on the same grid, so
// [MaxDeviation] can be applied directly:
//
//	dev := analysis.MaxDeviation(closed.Values, ode.Values)
package analysis
