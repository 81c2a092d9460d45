package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for sampling operations.
var (
	// ErrInvalidState indicates a NaN or Inf sample.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidSampling indicates a non-positive step or window.
	ErrInvalidSampling = errors.New("dynamo: invalid sampling configuration")

	// ErrUnknownEngine indicates a curve engine name that is not registered.
	ErrUnknownEngine = errors.New("dynamo: unknown engine")
)

// SampleError wraps an error with the sample where it occurred.
type SampleError struct {
	Index   int
	Time    float64
	Value   float64
	Wrapped error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d (t=%.4f): %v", e.Index, e.Time, e.Wrapped)
}

func (e *SampleError) Unwrap() error {
	return e.Wrapped
}
