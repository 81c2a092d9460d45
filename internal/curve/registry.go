package curve

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/internal/integrators"
	"github.com/san-kum/pdspring/internal/physics"
	"github.com/san-kum/pdspring/spring"
)

const DefaultEngine = "closed"

// Params are the inputs every engine understands.
type Params struct {
	Duration float64 `json:"duration" yaml:"duration"`
	Bounce   float64 `json:"bounce" yaml:"bounce"`
	Velocity float64 `json:"velocity" yaml:"velocity"`
}

func (p Params) Perceptual() spring.PerceptualParams {
	return spring.PerceptualParams{Duration: p.Duration, Bounce: p.Bounce}
}

type Engine func(ctx context.Context, s *Sampler, p Params, cfg dynamo.Config) (*dynamo.Result, error)

type Registry struct {
	engines map[string]Engine
}

func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]Engine)}

	r.engines["closed"] = func(ctx context.Context, s *Sampler, p Params, cfg dynamo.Config) (*dynamo.Result, error) {
		if err := p.Perceptual().Validate(); err != nil {
			return nil, err
		}
		return s.Sample(ctx, p.Perceptual().Physical().Easing(p.Velocity), cfg)
	}
	r.engines["ode"] = odeEngine(func() dynamo.Integrator { return integrators.NewRK4() })
	r.engines["euler"] = odeEngine(func() dynamo.Integrator { return integrators.NewEuler() })
	r.engines["harmonica"] = func(ctx context.Context, s *Sampler, p Params, cfg dynamo.Config) (*dynamo.Result, error) {
		if err := p.Perceptual().Validate(); err != nil {
			return nil, err
		}
		return s.SampleReference(ctx, p.Duration, p.Bounce, p.Velocity, cfg)
	}

	return r
}

func odeEngine(newIntegrator func() dynamo.Integrator) Engine {
	return func(ctx context.Context, s *Sampler, p Params, cfg dynamo.Config) (*dynamo.Result, error) {
		if err := p.Perceptual().Validate(); err != nil {
			return nil, err
		}
		osc := physics.NewOscillator(p.Perceptual().Physical())
		return s.Integrate(ctx, osc, newIntegrator(), dynamo.State{0, p.Velocity}, cfg)
	}
}

// Register adds or replaces an engine.
func (r *Registry) Register(name string, e Engine) {
	r.engines[name] = e
}

func (r *Registry) Get(name string) (Engine, error) {
	e, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownEngine, name)
	}
	return e, nil
}

func (r *Registry) ListEngines() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run samples one engine with the given metrics and tags the result.
func (r *Registry) Run(ctx context.Context, name string, p Params, cfg dynamo.Config, metrics ...dynamo.Metric) (*dynamo.Result, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	result, err := e(ctx, New(metrics...), p, cfg)
	if err != nil {
		return result, err
	}
	result.Engine = name
	return result, nil
}
