package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mroul/wallet"
)

// PerformanceChart renders a PNG line chart for one calendar year of the
// valuation series: portfolio market value against net fiat invested.
// Returns raw PNG bytes.
func PerformanceChart(series []wallet.DayValue, year int, currency string) ([]byte, error) {
	var xValues []time.Time
	var valueY, investedY []float64
	for _, dv := range series {
		if dv.Date.Year() != year {
			continue
		}
		xValues = append(xValues, dv.Date.Time())
		valueY = append(valueY, dv.Value.InexactFloat64())
		investedY = append(investedY, dv.NetInvested.InexactFloat64())
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 data points for %d, got %d", year, len(xValues))
	}

	valueSeries := chart.TimeSeries{
		Name: "Portfolio Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("f3ba2f"),
			StrokeWidth: 2.0,
		},
		XValues: xValues,
		YValues: valueY,
	}

	investedSeries := chart.TimeSeries{
		Name: "Net Invested",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("1e2329"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: investedY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Portfolio Performance %d (%s)", year, currency),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return chart.TimeFromFloat64(f).Format("Jan")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{valueSeries, investedSeries},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
