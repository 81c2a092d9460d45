package spring

import "errors"

// ErrInvalidArgument is returned by [New] for out-of-range perceptual parameters.
var ErrInvalidArgument = errors.New("spring: invalid argument")

// ArgumentError reports which perceptual parameter was rejected.
type ArgumentError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ArgumentError) Error() string {
	return "spring: " + e.Reason
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
