package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HerbHall/renewhub/internal/catalog"
)

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notFound {
		if key.Matches(msg, keys.Enter) {
			return m, m.open(catalog.ProductsPath)
		}
		return m, nil
	}

	similar := m.detail.Similar
	switch {
	case key.Matches(msg, keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(similar))
	case key.Matches(msg, keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(similar))
	case key.Matches(msg, keys.Enter):
		if m.cursor < len(similar) {
			return m, m.open(ProductPath(similar[m.cursor].ID))
		}
	}
	return m, nil
}

func (m Model) renderDetail() string {
	if m.notFound {
		return errorStyle.Render("Product not found") + "\n" +
			mutedStyle.Render("The product you are looking for does not exist.") + "\n\n" +
			selectedStyle.Render("Back to Products") + mutedStyle.Render("  (enter)")
	}
	if m.err != nil {
		return errorStyle.Render(catalogFailedMsg)
	}

	d := m.detail
	p := d.Product
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(p.Category.Label()))
	b.WriteString("  ")
	b.WriteString(priceStyle.Render(fmt.Sprintf("$%.2f", p.Price)))
	b.WriteString("  ")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Efficiency: %d%%", d.EfficiencyPercent)))
	b.WriteString("\n\n")
	if p.Description != "" {
		b.WriteString(textStyle.Render(p.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(subtitleStyle.Render("Specifications"))
	b.WriteString("\n")
	if len(d.Specs) == 0 {
		b.WriteString(mutedStyle.Render("No specifications available."))
		b.WriteString("\n")
	}
	for _, s := range d.Specs {
		b.WriteString(fmt.Sprintf("  %-20s %s\n", s.Name, s.Value))
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Similar Products"))
	b.WriteString("\n")
	if len(d.Similar) == 0 {
		b.WriteString(mutedStyle.Render("No similar products found."))
		return b.String()
	}
	for i, s := range d.Similar {
		line := renderProductRow(s.Product, i == m.cursor)
		if s.SimilarityScore != nil {
			line += scoreStyle.Render(fmt.Sprintf("  %.0f%% match", *s.SimilarityScore*100))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
