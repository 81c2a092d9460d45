package timeline

import "time"

// Infinite repeats a timeline forever.
const Infinite = -1

type Timeline struct {
	tween     Tween
	repeat    int
	pos       time.Duration
	iteration int
	paused    bool
	done      bool
}

// New plays tw once plus repeat more times, or forever for Infinite.
func New(tw Tween, repeat int) *Timeline {
	return &Timeline{tween: tw, repeat: repeat}
}

// Advance moves the playhead by dt and returns the current value.
func (tl *Timeline) Advance(dt time.Duration) float64 {
	if tl.paused || tl.done || dt <= 0 {
		return tl.Value()
	}
	tl.seekTotal(tl.total() + dt)
	return tl.Value()
}

// Seek jumps the playhead to an absolute position measured from the start of
// the first iteration, clearing any finished state.
func (tl *Timeline) Seek(pos time.Duration) {
	tl.done = false
	tl.seekTotal(pos)
}

func (tl *Timeline) total() time.Duration {
	return time.Duration(tl.iteration)*tl.tween.Duration + tl.pos
}

func (tl *Timeline) seekTotal(total time.Duration) {
	if total < 0 {
		total = 0
	}
	d := tl.tween.Duration
	if d <= 0 {
		tl.pos, tl.iteration, tl.done = 0, max(tl.repeat, 0), true
		return
	}

	iteration := int(total / d)
	pos := total % d
	if tl.repeat != Infinite && iteration > tl.repeat {
		iteration, pos, tl.done = tl.repeat, d, true
	} else if iteration > 0 && pos == 0 && total > 0 {
		// land on the end of the previous iteration rather than the start of the next
		iteration, pos = iteration-1, d
	}
	tl.iteration, tl.pos = iteration, pos
}

func (tl *Timeline) Value() float64 { return tl.tween.At(tl.pos) }

// Progress is the position within the current iteration, in [0, 1].
func (tl *Timeline) Progress() float64 { return tl.tween.Progress(tl.pos) }

func (tl *Timeline) Iteration() int { return tl.iteration }
func (tl *Timeline) Done() bool     { return tl.done }
func (tl *Timeline) Paused() bool   { return tl.paused }
func (tl *Timeline) Pause()         { tl.paused = true }
func (tl *Timeline) Resume()        { tl.paused = false }

// Restart seeks to zero and resumes playback.
func (tl *Timeline) Restart() {
	tl.Seek(0)
	tl.paused = false
}
