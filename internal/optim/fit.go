package optim

import (
	"context"
	"math"

	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/internal/metrics"
	"github.com/san-kum/pdspring/spring"
)

// Target describes the feel a fitted spring should have. Overshoot is a
// fraction of the travel, SettlingTime is in curve time units.
type Target struct {
	Overshoot       float64
	SettlingTime    float64
	OvershootWeight float64
	SettleWeight    float64
}

type Grid struct {
	Durations []float64
	Bounces   []float64
}

func DefaultGrid() Grid {
	return Grid{
		Durations: Linspace(0.2, 2.0, 37),
		Bounces:   Linspace(-0.9, 0.9, 37),
	}
}

type FitResult struct {
	Params       curve.Params
	Cost         float64
	Overshoot    float64
	SettlingTime float64
}

// Fit searches the grid for the perceptual parameters whose closed-form curve
// best matches target. Curves that never settle within cfg.Span are rejected.
func Fit(ctx context.Context, target Target, grid Grid, cfg dynamo.Config) (*FitResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ow, sw := target.OvershootWeight, target.SettleWeight
	if ow == 0 && sw == 0 {
		ow, sw = 1, 1
	}

	search := NewGridSearch(
		[]string{"duration", "bounce"},
		[][]float64{grid.Durations, grid.Bounces},
	)

	measure := func(duration, bounce float64) (float64, float64, error) {
		ease, err := spring.New(duration, bounce)
		if err != nil {
			return 0, 0, err
		}
		overshoot := metrics.NewOvershoot(1)
		settle := metrics.NewSettlingTime(1, metrics.DefaultTolerance)
		if _, err := curve.New(overshoot, settle).Sample(ctx, ease, cfg); err != nil {
			return 0, 0, err
		}
		return overshoot.Value(), settle.Value(), nil
	}

	best, cost, err := search.Search(ctx, func(p map[string]float64) (float64, error) {
		over, st, err := measure(p["duration"], p["bounce"])
		if err != nil {
			return 0, err
		}
		if math.IsInf(st, 1) {
			return math.Inf(1), nil
		}
		return ow*sq(over-target.Overshoot) + sw*sq(st-target.SettlingTime), nil
	})
	if err != nil {
		return nil, err
	}
	if math.IsInf(cost, 1) {
		return nil, ErrNoCandidate
	}

	res := &FitResult{
		Params: curve.Params{Duration: best["duration"], Bounce: best["bounce"]},
		Cost:   cost,
	}
	res.Overshoot, res.SettlingTime, err = measure(res.Params.Duration, res.Params.Bounce)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func sq(x float64) float64 { return x * x }
