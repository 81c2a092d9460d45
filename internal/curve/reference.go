package curve

import (
	"context"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/pdspring/internal/dynamo"
)

// maxDampingRatio stands in for the infinite ratio of bounce = -1.
const maxDampingRatio = 1e3

// DampingRatio maps bounce onto a damping ratio: 1-bounce when bouncing,
// 1/(1+bounce) when flattened.
func DampingRatio(bounce float64) float64 {
	if bounce >= 0 {
		return 1 - bounce
	}
	if bounce <= -1 {
		return maxDampingRatio
	}
	return math.Min(1/(1+bounce), maxDampingRatio)
}

// ReferenceSpring is a harmonica spring tuned to the same duration and
// bounce, stepped every dt seconds.
func ReferenceSpring(duration, bounce, dt float64) harmonica.Spring {
	return harmonica.NewSpring(dt, 2*math.Pi/duration, DampingRatio(bounce))
}

// SampleReference steps a harmonica spring from 0 towards 1 on the sampling grid.
func (s *Sampler) SampleReference(ctx context.Context, duration, bounce, velocity float64, cfg dynamo.Config) (*dynamo.Result, error) {
	sp := ReferenceSpring(duration, bounce, cfg.Dt)
	pos, vel := 0.0, velocity
	return s.run(ctx, cfg, func(i int, t float64) float64 {
		if i > 0 {
			pos, vel = sp.Update(pos, vel, 1.0)
		}
		return pos
	})
}
