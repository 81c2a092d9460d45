package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestFFT_Impulse(t *testing.T) {
	data := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	out, err := FFT(data)
	if err != nil {
		t.Fatalf("fft failed: %v", err)
	}

	for i, c := range out {
		if math.Abs(real(c)-1) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
			t.Errorf("bin %d: expected 1+0i, got %v", i, c)
		}
	}
}

func TestFFT_SingleTone(t *testing.T) {
	n := 16
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 3 * float64(i) / float64(n))
	}
	out, err := FFT(data)
	if err != nil {
		t.Fatalf("fft failed: %v", err)
	}

	for k, c := range out {
		want := 0.0
		if k == 3 || k == n-3 {
			want = float64(n) / 2
		}
		if math.Abs(cmplx.Abs(c)-want) > 1e-9 {
			t.Errorf("bin %d: expected magnitude %.3f, got %.3f", k, want, cmplx.Abs(c))
		}
	}
}

func TestFFT_RejectsOddLength(t *testing.T) {
	if _, err := FFT(make([]float64, 6)); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Errorf("expected ErrNotPowerOfTwo, got %v", err)
	}
}

func TestPowerSpectrum_Pads(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 10))
	if len(ps) != 8 {
		t.Errorf("expected 8 bins after padding, got %d", len(ps))
	}
}

func TestPowerSpectrum_Length(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 16))
	if len(ps) != 8 {
		t.Errorf("expected 8 bins, got %d", len(ps))
	}
}

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	freq := 4.0
	values := make([]float64, 1024)
	for i := range values {
		values[i] = 1 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}

	got := DominantFrequency(values, dt)
	resolution := 1 / (1024 * dt)
	if math.Abs(got-freq) > resolution {
		t.Errorf("expected ~%.2f hz, got %.2f", freq, got)
	}
}

func TestDominantFrequency_Degenerate(t *testing.T) {
	if DominantFrequency([]float64{1, 2}, 0.1) != 0 {
		t.Error("expected 0 for short input")
	}
	if DominantFrequency(make([]float64, 32), 0) != 0 {
		t.Error("expected 0 for non-positive dt")
	}
}

func TestZeroCrossings(t *testing.T) {
	tests := []struct {
		values []float64
		want   int
	}{
		{[]float64{0, 0.5, 1.2, 0.9, 1.05, 1}, 3},
		{[]float64{0, 0.5, 0.9, 0.99}, 0},
		{[]float64{0, 1, 1, 2}, 1},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := ZeroCrossings(tt.values, 1); got != tt.want {
			t.Errorf("%v: expected %d crossings, got %d", tt.values, tt.want, got)
		}
	}
}

func TestMaxDeviation(t *testing.T) {
	a := []float64{0, 0.5, 1.0}
	b := []float64{0, 0.7, 0.9, 5}

	if got := MaxDeviation(a, b); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("expected 0.2, got %f", got)
	}
	if MaxDeviation(nil, b) != 0 {
		t.Error("expected 0 for empty input")
	}
}
