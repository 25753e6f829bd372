package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HerbHall/renewhub/internal/catalog"
	"github.com/HerbHall/renewhub/pkg/models"
)

type feature struct {
	title       string
	description string
	target      string
}

var features = []feature{
	{
		title:       "Solar Energy",
		description: "High-efficiency solar panels, inverters and complete solar systems.",
		target:      catalog.CategoryURL(catalog.Tab(models.CategorySolar)),
	},
	{
		title:       "Wind Energy",
		description: "Wind turbines and generators for residential and commercial sites.",
		target:      catalog.CategoryURL(catalog.Tab(models.CategoryWind)),
	},
	{
		title:       "Energy Forecasting",
		description: "Forecast energy demand to plan usage and reduce costs.",
		target:      ForecastPath,
	},
	{
		title:       "Personalized Recommendations",
		description: "Product recommendations tailored to your needs and preferences.",
		target:      RecommendationsPath,
	},
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.homeCursor = clampCursor(m.homeCursor-1, len(features))
	case key.Matches(msg, keys.Down):
		m.homeCursor = clampCursor(m.homeCursor+1, len(features))
	case key.Matches(msg, keys.Enter):
		return m, m.open(features[m.homeCursor].target)
	}
	return m, nil
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Renewable Energy Portal"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Browse renewable energy products, get recommendations and forecast your energy demand."))
	b.WriteString("\n\n")
	for i, f := range features {
		line := subtitleStyle.Render(f.title) + "\n" + textStyle.Render(f.description)
		if i == m.homeCursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(unselectedStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
