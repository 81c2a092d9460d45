// Package timeline drives eased from/to tweens over wall-clock time with
// repeat and seek, the playback model of a browser animation timeline.
package timeline

import (
	"time"

	"github.com/san-kum/pdspring/spring"
)

// Tween moves a value from From to To over Duration. A nil Ease is linear.
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Ease     spring.Easing
}

// Progress maps elapsed time to [0, 1].
func (tw Tween) Progress(elapsed time.Duration) float64 {
	if tw.Duration <= 0 || elapsed >= tw.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(tw.Duration)
}

// At returns the tweened value. A finished tween rests exactly on To rather
// than on Lerp(From, To, ease(1)), which for a short spring is not To.
func (tw Tween) At(elapsed time.Duration) float64 {
	p := tw.Progress(elapsed)
	if p >= 1 {
		return tw.To
	}
	if tw.Ease == nil {
		return tw.From + (tw.To-tw.From)*p
	}
	return tw.Ease.Lerp(tw.From, tw.To, p)
}
