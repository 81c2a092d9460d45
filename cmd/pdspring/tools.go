package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pdspring/internal/analysis"
	"github.com/san-kum/pdspring/internal/automation"
	"github.com/san-kum/pdspring/internal/config"
	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/internal/metrics"
	"github.com/san-kum/pdspring/internal/optim"
	"github.com/san-kum/pdspring/internal/physics"
	"github.com/san-kum/pdspring/internal/storage"
	"github.com/san-kum/pdspring/internal/viz"
	"github.com/spf13/cobra"
)

type paramsReport struct {
	Duration      float64 `json:"duration"`
	Bounce        float64 `json:"bounce"`
	Stiffness     float64 `json:"stiffness"`
	Damping       float64 `json:"damping"`
	Mass          float64 `json:"mass"`
	DampingRatio  float64 `json:"damping_ratio"`
	Omega         float64 `json:"angular_frequency"`
	Underdamped   bool    `json:"underdamped"`
	InitialEnergy float64 `json:"initial_energy"`
}

func newParamsReport(cfg *config.Config) paramsReport {
	phys := cfg.Params().Perceptual().Physical()
	var h dynamo.Hamiltonian = physics.NewOscillator(phys)
	return paramsReport{
		Duration:      cfg.Duration,
		Bounce:        cfg.Bounce,
		Stiffness:     phys.Stiffness,
		Damping:       phys.Damping,
		Mass:          phys.Mass,
		DampingRatio:  phys.DampingRatio(),
		Omega:         phys.AngularFrequency(),
		Underdamped:   phys.Underdamped(),
		InitialEnergy: h.Energy(dynamo.State{0, cfg.Velocity}),
	}
}

func showParams(cmd *cobra.Command, args []string) error {
	cfg, label, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	report := newParamsReport(cfg)
	if jsonOut {
		return printJSON(report)
	}

	if label != "" {
		fmt.Printf("preset: %s\n", label)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "duration\t%.4f\n", report.Duration)
	fmt.Fprintf(w, "bounce\t%.4f\n", report.Bounce)
	fmt.Fprintf(w, "stiffness\t%.6f\n", report.Stiffness)
	fmt.Fprintf(w, "damping\t%.6f\n", report.Damping)
	fmt.Fprintf(w, "mass\t%.1f\n", report.Mass)
	fmt.Fprintf(w, "damping ratio\t%.6f\n", report.DampingRatio)
	fmt.Fprintf(w, "angular frequency\t%.6f\n", report.Omega)
	fmt.Fprintf(w, "underdamped\t%v\n", report.Underdamped)
	fmt.Fprintf(w, "initial energy\t%.6f\n", report.InitialEnergy)
	return w.Flush()
}

// writeConfig saves the resolved config so it can be edited and passed back
// with --config.
func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	path := "pdspring.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	cfg, result, err := sampleConfigured(cmd)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(result.Values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s  duration %.2f  bounce %.2f", result.Engine, cfg.Duration, cfg.Bounce)),
	))
	fmt.Println()
	printMetrics(result.Metrics)
	return nil
}

func analyzeCurve(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	engines := curve.NewRegistry().ListEngines()
	jobs := make([]curve.Job, len(engines))
	for i, name := range engines {
		jobs[i] = curve.Job{Engine: name, Params: cfg.Params()}
	}
	results, err := curve.NewEnsemble(curve.NewRegistry(), metrics.Defaults).Run(cmd.Context(), jobs, cfg.Sampling)
	if err != nil {
		return err
	}

	var base []float64
	for i, name := range engines {
		if name == cfg.Engine {
			base = results[i].Values
		}
	}
	if base == nil {
		return fmt.Errorf("unknown engine: %s", cfg.Engine)
	}

	fmt.Printf("dominant frequency: %.4f Hz\n", analysis.DominantFrequency(base, cfg.Sampling.Dt))
	fmt.Printf("oscillations around rest: %d\n\n", analysis.ZeroCrossings(base, 1))

	ps := analysis.PowerSpectrum(base)
	plotData := ps
	if len(plotData) > 100 {
		plotData = plotData[:100]
	}
	if len(plotData) > 1 {
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum"),
		))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ENGINE\tMAX DEV vs %s\tOVERSHOOT\tSETTLE\n", cfg.Engine)
	for i, name := range engines {
		r := results[i]
		fmt.Fprintf(w, "%s\t%.6f\t%.4f\t%s\n",
			name,
			analysis.MaxDeviation(base, r.Values),
			r.Metrics["overshoot"],
			formatTime(r.Metrics["settling_time"]),
		)
	}
	return w.Flush()
}

func formatTime(t float64) string {
	if math.IsInf(t, 1) {
		return "never"
	}
	return fmt.Sprintf("%.3fs", t)
}

func compareBounces(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	bounces := []float64{-0.5, 0, 0.3, 0.6}
	if len(args) > 0 {
		bounces = make([]float64, len(args))
		for i, a := range args {
			b, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("invalid bounce %q: %w", a, err)
			}
			bounces[i] = b
		}
	}

	jobs := make([]curve.Job, len(bounces))
	for i, b := range bounces {
		p := cfg.Params()
		p.Bounce = b
		jobs[i] = curve.Job{Engine: cfg.Engine, Params: p}
	}

	results, err := curve.NewEnsemble(curve.NewRegistry(), metrics.Defaults).Run(cmd.Context(), jobs, cfg.Sampling)
	if err != nil {
		return err
	}

	series := make([][]float64, len(results))
	for i, r := range results {
		series[i] = r.Values
	}
	palette := []asciigraph.AnsiColor{asciigraph.Magenta, asciigraph.Cyan, asciigraph.Yellow, asciigraph.Green, asciigraph.Red, asciigraph.Blue}
	colors := make([]asciigraph.AnsiColor, len(series))
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%s  duration %.2f", cfg.Engine, cfg.Duration)),
	))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BOUNCE\tOVERSHOOT\tPEAK\tSETTLE\tDAMPING RATIO")
	for i, r := range results {
		phys := jobs[i].Params.Perceptual().Physical()
		fmt.Fprintf(w, "%.2f\t%.4f\t%.3fs\t%s\t%.4f\n",
			bounces[i],
			r.Metrics["overshoot"],
			r.Metrics["peak_time"],
			formatTime(r.Metrics["settling_time"]),
			phys.DampingRatio(),
		)
	}
	return w.Flush()
}

func fitSpring(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	target := optim.Target{Overshoot: wantOvershoot, SettlingTime: wantSettle}
	res, err := optim.Fit(cmd.Context(), target, optim.DefaultGrid(), cfg.Sampling)
	if err != nil {
		return err
	}

	fmt.Printf("duration: %.3f\n", res.Params.Duration)
	fmt.Printf("bounce: %.3f\n", res.Params.Bounce)
	fmt.Printf("overshoot: %.4f (target %.4f)\n", res.Overshoot, wantOvershoot)
	fmt.Printf("settling time: %.3f (target %.3f)\n", res.SettlingTime, wantSettle)
	fmt.Printf("cost: %.6g\n", res.Cost)
	return nil
}

func sweepBounce(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Engine:    cfg.Engine,
		Duration:  cfg.Duration,
		Velocity:  cfg.Velocity,
		BounceMin: sweepMin,
		BounceMax: sweepMax,
		NumSteps:  sweepSteps,
		Sampling:  cfg.Sampling,
	}, curve.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BOUNCE\tOVERSHOOT\tPEAK\tSETTLE\tFINAL\tCROSSINGS")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.3fs\t%s\t%.4f\t%d\n",
			r.Bounce, r.Overshoot, r.PeakTime, formatTime(r.SettlingTime), r.FinalValue, r.ZeroCrossings)
	}
	return w.Flush()
}

func monteCarlo(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Engine:       cfg.Engine,
		Params:       cfg.Params(),
		Perturbation: perturb,
		NumTrials:    trials,
		Sampling:     cfg.Sampling,
		Seed:         seed,
	}, curve.NewRegistry())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	worst := 0.0
	for _, r := range results {
		worst = math.Max(worst, r.Overshoot)
	}
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("settled: %d\n", stable)
	fmt.Printf("unsettled: %d\n", unstable)
	fmt.Printf("worst overshoot: %.4f\n", worst)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	results, err := automation.RunScenario(cmd.Context(), sc, curve.NewRegistry(), st)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tENGINE\tDURATION\tBOUNCE\tOVERSHOOT\tSETTLE\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.4f\t%s\t%s\n",
			r.Step.Name,
			r.Result.Engine,
			r.Step.Duration,
			r.Step.Bounce,
			r.Result.Metrics["overshoot"],
			formatTime(r.Result.Metrics["settling_time"]),
			r.RunID,
		)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDURATION\tBOUNCE\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", name, p.Duration, p.Bounce, p.Description)
	}

	up := openUserPresets()
	for _, name := range up.Names() {
		p := up.Get(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", name, p.Duration, p.Bounce, "(saved) "+p.Description)
	}
	return w.Flush()
}

func savePreset(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	up, err := config.OpenUserPresets()
	if err != nil {
		return err
	}
	p := config.Preset{Duration: cfg.Duration, Bounce: cfg.Bounce}
	if err := up.Put(args[0], p); err != nil {
		return err
	}
	fmt.Printf("saved preset %s (duration %.2f, bounce %.2f)\n", args[0], p.Duration, p.Bounce)
	return nil
}

func deletePreset(cmd *cobra.Command, args []string) error {
	up, err := config.OpenUserPresets()
	if err != nil {
		return err
	}
	if err := up.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted preset %s\n", args[0])
	return nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, label, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg, label)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}
