package automation

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/pdspring/internal/analysis"
	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/internal/metrics"
	"github.com/san-kum/pdspring/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted list of curves to sample.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep samples one engine. Zero dt or span fall back to the
// sampling defaults and an empty engine means the closed form.
type ScenarioStep struct {
	Name     string  `yaml:"name"`
	Engine   string  `yaml:"engine"`
	Duration float64 `yaml:"duration"`
	Bounce   float64 `yaml:"bounce"`
	Velocity float64 `yaml:"velocity"`
	Dt       float64 `yaml:"dt"`
	Span     float64 `yaml:"span"`
	SaveAs   string  `yaml:"save_as"`
}

func (s ScenarioStep) engine() string {
	if s.Engine == "" {
		return curve.DefaultEngine
	}
	return s.Engine
}

func (s ScenarioStep) params() curve.Params {
	return curve.Params{Duration: s.Duration, Bounce: s.Bounce, Velocity: s.Velocity}
}

func (s ScenarioStep) sampling() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Span != 0 {
		cfg.Span = s.Span
	}
	return cfg
}

// StepResult pairs a sampled curve with the run id it was stored under, if any.
type StepResult struct {
	Step   ScenarioStep
	Result *dynamo.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// RunScenario executes all steps in order. Steps with save_as are written to
// store when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *curve.Registry, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		label := step.Name
		if label == "" {
			label = step.engine()
		}
		log.Printf("[automation] step %d/%d: %s", i+1, len(scenario.Steps), label)

		cfg := step.sampling()
		result, err := registry.Run(ctx, step.engine(), step.params(), cfg, metrics.Defaults()...)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: result}
		if step.SaveAs != "" && store != nil {
			sr.RunID, err = store.Save(step.SaveAs, step.params(), cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep samples one engine across evenly spaced bounce values.
type ParameterSweep struct {
	Engine    string
	Duration  float64
	Velocity  float64
	BounceMin float64
	BounceMax float64
	NumSteps  int
	Sampling  dynamo.Config
}

type SweepResult struct {
	Bounce        float64
	Overshoot     float64
	PeakTime      float64
	SettlingTime  float64
	FinalValue    float64
	ZeroCrossings int
}

// RunSweep runs every bounce value concurrently through a curve.Ensemble.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *curve.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	engine := sweep.Engine
	if engine == "" {
		engine = curve.DefaultEngine
	}

	bounces := make([]float64, sweep.NumSteps)
	jobs := make([]curve.Job, sweep.NumSteps)
	for i := range jobs {
		b := sweep.BounceMin
		if sweep.NumSteps > 1 {
			b += float64(i) * (sweep.BounceMax - sweep.BounceMin) / float64(sweep.NumSteps-1)
		}
		bounces[i] = b
		jobs[i] = curve.Job{
			Engine: engine,
			Params: curve.Params{Duration: sweep.Duration, Bounce: b, Velocity: sweep.Velocity},
		}
	}

	runs, err := curve.NewEnsemble(registry, metrics.Defaults).Run(ctx, jobs, sweep.Sampling)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		results[i] = SweepResult{
			Bounce:        bounces[i],
			Overshoot:     r.Metrics["overshoot"],
			PeakTime:      r.Metrics["peak_time"],
			SettlingTime:  r.Metrics["settling_time"],
			FinalValue:    r.Metrics["final_value"],
			ZeroCrossings: analysis.ZeroCrossings(r.Values, 1),
		}
	}

	return results, nil
}

// MonteCarloConfig perturbs the initial velocity of one spring.
type MonteCarloConfig struct {
	Engine       string
	Params       curve.Params
	Perturbation float64
	NumTrials    int
	Sampling     dynamo.Config
	Seed         int64
}

type MonteCarloResult struct {
	TrialID    int
	Velocity   float64
	FinalValue float64
	Overshoot  float64
	Stable     bool // settled near the rest value within the span
}

// RunMonteCarlo samples the spring NumTrials times with a random initial
// velocity in Params.Velocity ± Perturbation.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *curve.Registry) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	engine := cfg.Engine
	if engine == "" {
		engine = curve.DefaultEngine
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		p := cfg.Params
		p.Velocity += (rng.Float64() - 0.5) * 2 * cfg.Perturbation

		settle := metrics.NewSettlingTime(1, metrics.DefaultTolerance)
		overshoot := metrics.NewOvershoot(1)
		result, err := registry.Run(ctx, engine, p, cfg.Sampling, settle, overshoot)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			Velocity:   p.Velocity,
			FinalValue: result.Last(),
			Overshoot:  overshoot.Value(),
			Stable:     !math.IsInf(settle.Value(), 1),
		})

		if (trial+1)%10 == 0 {
			log.Printf("[automation] monte carlo: %d/%d trials complete", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
