package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HerbHall/renewhub/internal/forecast"
)

const sparkWidth = 72

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

func (m Model) updateForecast(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := forecast.PeriodOptions()
	i := max(slices.Index(opts, m.periods), 0)

	switch {
	case key.Matches(msg, keys.NextPage):
		if i < len(opts)-1 {
			m.periods = opts[i+1]
			return m, m.reload(func(id int) tea.Cmd { return loadForecast(m.forecasts, m.periods, id) })
		}
	case key.Matches(msg, keys.PrevPage):
		if i > 0 {
			m.periods = opts[i-1]
			return m, m.reload(func(id int) tea.Cmd { return loadForecast(m.forecasts, m.periods, id) })
		}
	case key.Matches(msg, keys.Train):
		m.status = "Training forecast model..."
		return m, m.reload(func(id int) tea.Cmd { return trainForecast(m.forecasts, m.periods, id) })
	}
	return m, nil
}

func (m Model) renderForecast() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Energy Demand Forecasting"))
	b.WriteString("\n")
	b.WriteString(renderPeriods(m.periods))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.status))
		return b.String()
	}

	v := m.forecast
	b.WriteString(subtitleStyle.Render(v.Title))
	b.WriteString("\n")
	if v.Chart.Empty() {
		b.WriteString(mutedStyle.Render("No forecast data available."))
		return b.String()
	}
	b.WriteString(chartStyle.Render(Sparkline(v.Chart.YHat, sparkWidth)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s  ...  %s", v.Chart.Labels[0], v.Chart.Labels[len(v.Chart.Labels)-1])))
	b.WriteString("\n\n")

	s := v.Summary
	b.WriteString(fmt.Sprintf("Peak     %8.2f kW  at %s\n", s.Peak, s.PeakAt.Format(forecast.LabelLayout)))
	b.WriteString(fmt.Sprintf("Minimum  %8.2f kW  at %s\n", s.Minimum, s.MinimumAt.Format(forecast.LabelLayout)))
	b.WriteString(fmt.Sprintf("Average  %8.2f kW\n", s.Average))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Model Performance"))
	b.WriteString("\n")
	b.WriteString(textStyle.Render(v.MetricsText()))
	if v.PlotURL != "" {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Plot:       " + v.PlotURL))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Components: " + v.ComponentsPlotURL))
	}
	return b.String()
}

func renderPeriods(selected int) string {
	opts := forecast.PeriodOptions()
	parts := make([]string, 0, len(opts))
	for _, p := range opts {
		if p == selected {
			parts = append(parts, tabActiveStyle.Render(forecast.PeriodLabel(p)))
		} else {
			parts = append(parts, tabInactiveStyle.Render(forecast.PeriodLabel(p)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Sparkline renders values as a row of block characters at most width wide.
// Longer series are averaged into buckets.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	series := values
	if len(values) > width {
		series = make([]float64, width)
		for i := range width {
			lo := i * len(values) / width
			hi := (i + 1) * len(values) / width
			var sum float64
			for _, v := range values[lo:hi] {
				sum += v
			}
			series[i] = sum / float64(hi-lo)
		}
	}

	lo, hi := series[0], series[0]
	for _, v := range series {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	out := make([]rune, len(series))
	top := len(sparkBlocks) - 1
	for i, v := range series {
		idx := top / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(top))
		}
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}
