package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/san-kum/pdspring/internal/config"
	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	duration   float64
	bounce     float64
	velocity   float64
	engine     string
	dt         float64
	span       float64
	// params
	jsonOut bool
	// config-init
	overwrite bool
	// export-svg
	outFile   string
	svgWidth  int
	svgHeight int
	// sample
	saveName string
	// fit
	wantOvershoot float64
	wantSettle    float64
	// sweep
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// demo
	theme string
	// montecarlo
	trials  int
	perturb float64
	seed    int64
)

// main registers the pdspring commands and runs the demo when no subcommand
// is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "pdspring",
		Short:        "perceptual spring easing lab",
		SilenceUsage: true,
		RunE:         runDemo,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".pdspring", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset (built-in or saved)")
	pf.Float64Var(&duration, "duration", 0.8, "perceived duration in seconds")
	pf.Float64Var(&bounce, "bounce", 0.3, "bounce in [-1, 1]")
	pf.Float64Var(&velocity, "velocity", 0, "initial velocity")
	pf.StringVar(&engine, "engine", curve.DefaultEngine, "curve engine ("+strings.Join(curve.NewRegistry().ListEngines(), ", ")+")")
	pf.Float64Var(&dt, "dt", 1.0/120, "sampling step")
	pf.Float64Var(&span, "span", 2, "sampled time span")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "show the physical parameters for a duration and bounce",
		Args:  cobra.NoArgs,
		RunE:  showParams,
	}
	paramsCmd.Flags().BoolVar(&jsonOut, "json", false, "print as JSON")

	configInitCmd := &cobra.Command{
		Use:   "config-init [path]",
		Short: "write the resolved config to a yaml file (default pdspring.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	configInitCmd.Flags().BoolVar(&overwrite, "force", false, "overwrite an existing file")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the easing curve",
		Args:  cobra.NoArgs,
		RunE:  plotCurve,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "write the sampled curve as CSV to stdout",
		Args:  cobra.NoArgs,
		RunE:  sampleCurve,
	}
	sampleCmd.Flags().StringVar(&saveName, "save", "", "also store the run under this name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "frequency analysis and engine agreement",
		Args:  cobra.NoArgs,
		RunE:  analyzeCurve,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [bounce...]",
		Short: "compare curves for several bounce values",
		RunE:  compareBounces,
	}

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "find duration and bounce for a target overshoot and settling time",
		Args:  cobra.NoArgs,
		RunE:  fitSpring,
	}
	fitCmd.Flags().Float64Var(&wantOvershoot, "overshoot", 0.05, "target overshoot as a fraction of travel")
	fitCmd.Flags().Float64Var(&wantSettle, "settle", 0.8, "target settling time")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep bounce at a fixed duration",
		Args:  cobra.NoArgs,
		RunE:  sweepBounce,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -0.9, "lowest bounce")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "highest bounce")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of bounce values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb the initial velocity and count settling runs",
		Args:  cobra.NoArgs,
		RunE:  monteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 2, "velocity perturbation")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for time based)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	enginesCmd := &cobra.Command{
		Use:   "engines",
		Short: "list curve engines",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range curve.NewRegistry().ListEngines() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in and saved presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	presetSaveCmd := &cobra.Command{
		Use:   "preset-save [name]",
		Short: "save the current duration and bounce as a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  savePreset,
	}

	presetDeleteCmd := &cobra.Command{
		Use:   "preset-delete [name]",
		Short: "delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE:  deletePreset,
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "animate the spring next to a harmonica reference",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}
	themeHelp := "color theme (" + strings.Join(viz.ThemeNames(), ", ") + ")"
	demoCmd.Flags().StringVar(&theme, "theme", "", themeHelp)
	rootCmd.Flags().StringVar(&theme, "theme", "", themeHelp)

	rootCmd.AddCommand(paramsCmd, configInitCmd, plotCmd, sampleCmd, listCmd, showCmd, exportJSONCmd, exportSVGCmd,
		analyzeCmd, compareCmd, fitCmd, sweepCmd, monteCarloCmd, batchCmd, enginesCmd,
		presetsCmd, presetSaveCmd, presetDeleteCmd, demoCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order. It returns the config and the preset label.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	label := ""

	if preset != "" {
		p := config.Lookup(openUserPresets(), preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(*p)
		label = preset
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("duration") {
		cfg.Duration = duration
		label = ""
	}
	if flags.Changed("bounce") {
		cfg.Bounce = bounce
		label = ""
	}
	if flags.Changed("velocity") {
		cfg.Velocity = velocity
	}
	if flags.Changed("engine") {
		cfg.Engine = engine
	}
	if flags.Changed("dt") {
		cfg.Sampling.Dt = dt
	}
	if flags.Changed("span") {
		cfg.Sampling.Span = span
	}
	if flags.Changed("theme") {
		cfg.Demo.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, label, nil
}

func openUserPresets() *config.UserPresets {
	up, err := config.OpenUserPresets()
	if err != nil {
		log.Printf("[presets] warning: %v (using in-memory presets)", err)
	}
	return up
}
