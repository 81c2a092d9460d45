package curve

import (
	"context"
	"sync"

	"github.com/san-kum/pdspring/internal/dynamo"
)

// Job is one entry of an Ensemble run.
type Job struct {
	Engine string
	Params Params
}

// Ensemble runs many engine/parameter combinations concurrently, each with a
// fresh metric set from newMetrics.
type Ensemble struct {
	registry   *Registry
	newMetrics func() []dynamo.Metric
}

func NewEnsemble(r *Registry, newMetrics func() []dynamo.Metric) *Ensemble {
	return &Ensemble{registry: r, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, jobs []Job, cfg dynamo.Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()

			var metrics []dynamo.Metric
			if e.newMetrics != nil {
				metrics = e.newMetrics()
			}
			results[idx], errs[idx] = e.registry.Run(ctx, job.Engine, job.Params, cfg, metrics...)
		}(i, job)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
