package export

import (
	"fmt"
	"strings"
)

// Series is one stroked curve in an SVG chart.
type Series struct {
	Times  []float64
	Values []float64
	Stroke string
}

// CurveToSVG renders a single sampled curve.
func CurveToSVG(times, values []float64, width, height int, stroke string) string {
	return SeriesToSVG([]Series{{Times: times, Values: values, Stroke: stroke}}, width, height)
}

// SeriesToSVG renders several curves on shared axes with a dashed line at the
// rest value 1. Series shorter than two points are skipped.
func SeriesToSVG(series []Series, width, height int) string {
	minX, maxX := 0.0, 0.0
	minY, maxY := 0.0, 1.0
	drawn := 0
	for _, s := range series {
		n := min(len(s.Times), len(s.Values))
		if n < 2 {
			continue
		}
		drawn++
		for i := 0; i < n; i++ {
			minX = min(minX, s.Times[i])
			maxX = max(maxX, s.Times[i])
			minY = min(minY, s.Values[i])
			maxY = max(maxY, s.Values[i])
		}
	}
	if drawn == 0 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444444" stroke-dasharray="4 4"/>
`, width, height, width, height, py(1), width, py(1)))

	for _, s := range series {
		n := min(len(s.Times), len(s.Values))
		if n < 2 {
			continue
		}
		stroke := s.Stroke
		if stroke == "" {
			stroke = "#00ff00"
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for i := 0; i < n; i++ {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(s.Times[i]), py(s.Values[i])))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(s.Times[i]), py(s.Values[i])))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
