package export

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
)

func testResult(engine string) *dynamo.Result {
	return &dynamo.Result{
		Engine:  engine,
		Times:   []float64{0, 0.5, 1},
		Values:  []float64{0, 1.1, 1},
		Metrics: map[string]float64{"overshoot": 0.1, "settling_time": math.Inf(1)},
	}
}

func TestCurveToSVG(t *testing.T) {
	r := testResult("closed")
	svg := CurveToSVG(r.Times, r.Values, 400, 200, "#ff8800")

	if !strings.HasPrefix(svg, "<?xml") {
		t.Error("expected xml header")
	}
	if !strings.Contains(svg, `stroke="#ff8800"`) {
		t.Error("expected stroke color in output")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected closing svg tag")
	}
}

func TestCurveToSVGTooShort(t *testing.T) {
	if svg := CurveToSVG([]float64{0}, []float64{0}, 100, 100, "red"); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestSeriesToSVG(t *testing.T) {
	a, b := testResult("closed"), testResult("ode")
	svg := SeriesToSVG([]Series{
		{Times: a.Times, Values: a.Values, Stroke: "red"},
		{Times: b.Times, Values: b.Values},
	}, 300, 100)

	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("expected default stroke for unstyled series")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	p := curve.Params{Duration: 0.8, Bounce: 0.15}
	cfg := dynamo.Config{Dt: 0.5, Span: 1}

	if err := ExportJSON(&buf, p, cfg, testResult("closed")); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Engine != "closed" || data.Steps != 3 {
		t.Errorf("unexpected export %+v", data)
	}
	if data.Physical.Mass != 1 {
		t.Errorf("expected mass 1, got %f", data.Physical.Mass)
	}
	if _, ok := data.Metrics["settling_time"]; ok {
		t.Error("expected infinite metric to be dropped")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testResult("closed"), testResult("ode")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "time,closed,ode" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "0.500000,1.100000,1.100000" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestWriteCSVMismatch(t *testing.T) {
	short := &dynamo.Result{Times: []float64{0}, Values: []float64{0}}
	if err := WriteCSV(&bytes.Buffer{}, testResult("closed"), short); err == nil {
		t.Error("expected error for mismatched results")
	}
}
