package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pdspring/internal/config"
	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/internal/export"
	"github.com/san-kum/pdspring/internal/metrics"
	"github.com/san-kum/pdspring/internal/storage"
	"github.com/spf13/cobra"
)

// sampleConfigured runs the configured engine with the default metric set.
func sampleConfigured(cmd *cobra.Command) (*config.Config, *dynamo.Result, error) {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	result, err := curve.NewRegistry().Run(cmd.Context(), cfg.Engine, cfg.Params(), cfg.Sampling, metrics.Defaults()...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, result, nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func sampleCurve(cmd *cobra.Command, args []string) error {
	cfg, result, err := sampleConfigured(cmd)
	if err != nil {
		return err
	}

	if err := export.WriteCSV(os.Stdout, result); err != nil {
		return err
	}

	if cmd.Flags().Changed("save") {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(saveName, cfg.Params(), cfg.Sampling, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tENGINE\tTIME\tDURATION\tBOUNCE\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.2f\t%d\n",
			run.ID,
			run.Name,
			run.Engine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Duration,
			run.Params.Bounce,
			run.Samples,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *dynamo.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	result.Engine = meta.Engine
	result.Metrics = meta.Metrics
	return meta, result, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(result.Values) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("engine: %s\n", meta.Engine)
	fmt.Printf("duration: %.3f  bounce: %.3f  velocity: %.3f\n", meta.Params.Duration, meta.Params.Bounce, meta.Params.Velocity)
	fmt.Printf("stiffness: %.4f  damping: %.4f  mass: %.1f\n", meta.Physical.Stiffness, meta.Physical.Damping, meta.Physical.Mass)
	fmt.Printf("samples: %d\n\n", len(result.Values))

	fmt.Println(asciigraph.Plot(result.Values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s over %.2f", meta.Engine, meta.Span)),
	))
	fmt.Println()
	printMetrics(meta.Metrics)
	return nil
}

func outputWriter(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, err := outputWriter(outFile)
	if err != nil {
		return err
	}
	defer w.Close()

	cfg := dynamo.Config{Dt: meta.Dt, Span: meta.Span}
	return export.ExportJSON(w, meta.Params, cfg, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.CurveToSVG(result.Times, result.Values, svgWidth, svgHeight, "#ff00ff")
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to draw", args[0])
	}

	path := outFile
	if path == "" {
		path = args[0] + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// printJSON is used for machine readable listings.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
