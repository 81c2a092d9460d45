package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/spring"
)

type ExportData struct {
	Engine   string                `json:"engine"`
	Duration float64               `json:"duration"`
	Bounce   float64               `json:"bounce"`
	Velocity float64               `json:"velocity"`
	Physical spring.PhysicalParams `json:"physical"`
	Dt       float64               `json:"dt"`
	Span     float64               `json:"span"`
	Steps    int                   `json:"steps"`
	Times    []float64             `json:"times"`
	Values   []float64             `json:"values"`
	Metrics  map[string]float64    `json:"metrics"`
}

func NewExportData(p curve.Params, cfg dynamo.Config, result *dynamo.Result) ExportData {
	return ExportData{
		Engine:   result.Engine,
		Duration: p.Duration,
		Bounce:   p.Bounce,
		Velocity: p.Velocity,
		Physical: spring.Translate(p.Duration, p.Bounce),
		Dt:       cfg.Dt,
		Span:     cfg.Span,
		Steps:    len(result.Times),
		Times:    result.Times,
		Values:   result.Values,
		Metrics:  result.FiniteMetrics(),
	}
}

func ExportJSON(w io.Writer, p curve.Params, cfg dynamo.Config, result *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(p, cfg, result))
}
