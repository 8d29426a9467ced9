package view

import (
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// ForecastChart draws daily maxima as a braille line chart. It returns ""
// when there are fewer than two days or no room to draw.
func ForecastChart(days []Day, width, height int, style lipgloss.Style) string {
	if len(days) < 2 || width < 10 || height < 4 {
		return ""
	}
	start, end := days[0].Date, days[len(days)-1].Date
	if !end.After(start) {
		return ""
	}

	minY, maxY := days[0].Max, days[0].Max
	for _, d := range days[1:] {
		minY = min(minY, d.Max)
		maxY = max(maxY, d.Max)
	}
	minY--
	maxY++

	chart := tslc.New(width, height)
	chart.SetStyle(style)
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(minY, maxY)
	chart.SetViewYRange(minY, maxY)
	for _, d := range days {
		chart.Push(tslc.TimePoint{Time: d.Date, Value: d.Max})
	}
	chart.DrawBraille()
	return chart.View()
}
