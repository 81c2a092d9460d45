package analysis

import (
	"errors"
	"math"
	"math/bits"
	"math/cmplx"
)

var ErrNotPowerOfTwo = errors.New("analysis: fft length must be a power of 2")

// FFT is an iterative radix-2 Cooley-Tukey transform.
func FFT(data []float64) ([]complex128, error) {
	n := len(data)
	out := make([]complex128, n)
	if n == 0 {
		return out, nil
	}
	if n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}

	shift := 64 - bits.TrailingZeros(uint(n))
	for i, v := range data {
		j := bits.Reverse64(uint64(i)) >> uint(shift)
		out[j] = complex(v, 0)
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				even := out[start+k]
				odd := w * out[start+k+half]
				out[start+k] = even + odd
				out[start+k+half] = even - odd
				w *= step
			}
		}
	}

	return out, nil
}

// PowerSpectrum returns |X[k]| for the lower half of the spectrum. Input that
// is not a power of 2 long is zero-padded.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := data
	if n != len(data) {
		padded = make([]float64, n)
		copy(padded, data)
	}

	spectrum, _ := FFT(padded)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}
