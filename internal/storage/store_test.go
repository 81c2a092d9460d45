package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
)

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		Engine: "closed",
		Times:  []float64{0.0, 0.5, 1.0},
		Values: []float64{0.0, 1.0123456789, 0.999},
		Metrics: map[string]float64{
			"overshoot":     0.0123456789,
			"settling_time": math.Inf(1),
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p := curve.Params{Duration: 0.8, Bounce: 0.15}
	cfg := dynamo.Config{Dt: 0.5, Span: 1}
	runID, err := st.Save("demo", p, cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Engine != "closed" || meta.Name != "demo" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Params != p {
		t.Errorf("expected params %+v, got %+v", p, meta.Params)
	}
	if meta.Physical.Mass != 1 {
		t.Errorf("expected mass 1, got %f", meta.Physical.Mass)
	}
	if meta.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", meta.Samples)
	}
	if _, ok := meta.Metrics["settling_time"]; ok {
		t.Error("expected non-finite metric to be dropped")
	}
	if meta.Metrics["overshoot"] != 0.0123456789 {
		t.Errorf("expected overshoot 0.0123456789, got %f", meta.Metrics["overshoot"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples.Values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(samples.Values))
	}
	if samples.Values[1] != 1.0123456789 {
		t.Errorf("expected exact value round trip, got %v", samples.Values[1])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg := dynamo.Config{Dt: 0.5, Span: 1}
	for i := 0; i < 2; i++ {
		if _, err := st.Save("", curve.Params{Duration: 0.8}, cfg, sampleResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if len(runs) == 2 && runs[1].Timestamp.Before(runs[0].Timestamp) {
		t.Error("expected runs sorted oldest first")
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save("", curve.Params{Duration: 0.8}, dynamo.Config{Dt: 0.5, Span: 1}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadSamples("nope"); err == nil {
		t.Error("expected error for missing samples")
	}
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	bad := sampleResult()
	bad.Times = bad.Times[:1]
	p := curve.Params{Duration: 0.8, Bounce: 0.15}
	if _, err := st.Save("broken", p, dynamo.Config{Dt: 0.5, Span: 1}, bad); err == nil {
		t.Fatal("expected save to fail for mismatched samples")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no run directories after a failed save, got %d", len(entries))
	}
}
