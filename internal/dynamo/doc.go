// Package dynamo provides the primitives shared by curve sampling and the
// numeric reference integration.
//
// The package defines:
//
//   - [State]: vector representing an oscillator state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Metric]: streaming measurement over sampled displacement
//   - [Config]: sampling window and step
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	cfg.Span = 2
//	result, _ := curve.New(metrics.Defaults()...).Sample(ctx, ease, cfg)
//
// # Thread Safety
//
// Metrics carry running state and are NOT thread-safe. Concurrent sampling
// builds a fresh metric set per goroutine.
package dynamo
