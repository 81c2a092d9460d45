// Package spring builds spring easing curves from perceptual parameters.
//
// A perceptual spring is described by how long it appears to take and how
// much it bounces, rather than by stiffness and damping:
//
//   - [New]: validated (duration, bounce) → [Easing]
//   - [Translate]: (duration, bounce) → [PhysicalParams], no validation
//   - [FromPhysical]: closed-form damped oscillator from stiffness, damping and mass
//
// # Example
//
//	ease, err := spring.New(0.8, 0.15)
//	if err != nil {
//	    return err
//	}
//	x := ease.Lerp(0, 200, progress)
//
// # Sign Convention
//
// The translation reproduces a well-known mapping from a reference animation
// framework, including the negated damping terms and the 1.2 duration factor.
// Curves are expected to match that reference point for point, so the
// constants are kept exactly as written.
//
// # Thread Safety
//
// An [Easing] closes over immutable parameters only and may be called from
// any number of goroutines.
package spring
