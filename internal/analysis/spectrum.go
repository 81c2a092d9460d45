package analysis

import "math"

// DominantFrequency returns the strongest non-DC frequency (Hz) in values
// sampled every dt, measured around the final value.
func DominantFrequency(values []float64, dt float64) float64 {
	if len(values) < 4 || dt <= 0 {
		return 0
	}

	rest := values[len(values)-1]
	centered := make([]float64, len(values))
	for i, v := range values {
		centered[i] = v - rest
	}

	ps := PowerSpectrum(centered)
	n := 2 * len(ps)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	return float64(maxIdx) / (float64(n) * dt)
}

// ZeroCrossings counts sign changes of values-target, skipping exact hits.
func ZeroCrossings(values []float64, target float64) int {
	count := 0
	prev := 0.0
	for _, v := range values {
		d := v - target
		if d == 0 || math.IsNaN(d) {
			continue
		}
		if prev != 0 && (d > 0) != (prev > 0) {
			count++
		}
		prev = d
	}
	return count
}

// MaxDeviation is max |a[i]-b[i]| over the shorter of the two curves.
func MaxDeviation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	worst := 0.0
	for i := 0; i < n; i++ {
		if d := math.Abs(a[i] - b[i]); d > worst {
			worst = d
		}
	}
	return worst
}
