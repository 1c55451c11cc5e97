package dashboard

import (
	"strconv"
)

const (
	chartWidth     = 520
	chartHeight    = 320
	chartPadTop    = 40
	chartPadBottom = 40
	chartPadSide   = 30
	barGap         = 20
)

var barColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"}

type Bar struct {
	Label  string
	Value  float64
	Color  string
	X      int
	Y      int
	Width  int
	Height int
}

// LabelX is the horizontal centre of the bar.
func (b Bar) LabelX() int {
	return b.X + b.Width/2
}

// BarChart is the season-averages chart, laid out for an SVG viewBox.
type BarChart struct {
	Title    string
	Width    int
	Height   int
	Baseline int
	Bars     []Bar
}

func seasonChart(stats PlayerStats) BarChart {
	return buildBarChart(stats.Name+" - Season Averages",
		[]string{"PPG", "APG", "RPG", "FG%", "3P%"},
		[]float64{stats.AvgPoints, stats.AvgAssists, stats.AvgRebounds, stats.FGPercentage, stats.ThreePtPercentage},
	)
}

// buildBarChart scales bars against the largest value; all-zero input gives
// flat bars.
func buildBarChart(title string, labels []string, values []float64) BarChart {
	chart := BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		Baseline: chartHeight - chartPadBottom,
	}
	if len(labels) == 0 {
		return chart
	}

	var maxValue float64
	for _, v := range values {
		if v > maxValue {
			maxValue = v
		}
	}

	plotHeight := chartHeight - chartPadTop - chartPadBottom
	slot := (chartWidth - 2*chartPadSide) / len(labels)
	barWidth := slot - barGap

	for i, label := range labels {
		var height int
		if maxValue > 0 && values[i] > 0 {
			height = int(values[i] / maxValue * float64(plotHeight))
		}
		chart.Bars = append(chart.Bars, Bar{
			Label:  label,
			Value:  values[i],
			Color:  barColors[i%len(barColors)],
			X:      chartPadSide + i*slot + barGap/2,
			Y:      chart.Baseline - height,
			Width:  barWidth,
			Height: height,
		})
	}
	return chart
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
