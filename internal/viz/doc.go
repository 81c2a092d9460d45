// Package viz renders the side-by-side spring demo in the terminal.
//
// Two boxes travel from 0 to 200 units on repeat: the upper one follows the
// perceptual spring easing through a timeline, the lower one is driven frame
// by frame by a harmonica spring with the same duration and bounce.
//
// # Key Bindings
//
//	Space - Restart both tracks
//	P     - Pause/Resume
//	Tab   - Next preset
//	T     - Cycle color themes
//	?     - Toggle full help
//	Q     - Quit
package viz
