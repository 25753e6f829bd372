package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HerbHall/renewhub/internal/recommend"
	"github.com/HerbHall/renewhub/pkg/models"
)

const (
	recTabUser = iota
	recTabCategory
)

var recTabLabels = []string{"Personalized Recommendations", "Category Recommendations"}

func (m Model) updateRecommendations(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.query
	switch {
	case key.Matches(msg, keys.NextTab), key.Matches(msg, keys.PrevTab):
		m.recTab = 1 - m.recTab
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.NextUser):
		profiles := recommend.Profiles()
		q.UserID = q.UserID%len(profiles) + 1

	case key.Matches(msg, keys.NextCat):
		cats := models.Categories()
		q.Category = cats[(slices.Index(cats, q.Category)+1)%len(cats)]

	case key.Matches(msg, keys.MoreItems):
		q.Count = recommend.ClampCount(q.Count + 1)

	case key.Matches(msg, keys.LessItems):
		q.Count = recommend.ClampCount(q.Count - 1)

	case key.Matches(msg, keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(m.activeRecs()))
		return m, nil

	case key.Matches(msg, keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(m.activeRecs()))
		return m, nil

	case key.Matches(msg, keys.Enter):
		recs := m.activeRecs()
		if m.cursor < len(recs) {
			return m, m.open(ProductPath(recs[m.cursor].ID))
		}
		return m, nil

	default:
		return m, nil
	}

	if q == m.query {
		return m, nil
	}
	m.query = q
	m.cursor = 0
	return m, m.reload(func(id int) tea.Cmd { return loadRecommendations(m.recLoader, m.query, id) })
}

func (m Model) activeRecs() []models.ScoredProduct {
	if m.recTab == recTabCategory {
		return m.recs.Category.Recommendations
	}
	return m.recs.User.Recommendations
}

func (m Model) renderRecommendations() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Product Recommendations"))
	b.WriteString("\n")

	parts := make([]string, 0, len(recTabLabels))
	for i, l := range recTabLabels {
		if i == m.recTab {
			parts = append(parts, tabActiveStyle.Render(l))
		} else {
			parts = append(parts, tabInactiveStyle.Render(l))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(recsFailedMsg))
		return b.String()
	}

	var heading string
	if m.recTab == recTabCategory {
		heading = m.recs.Category.Title
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Category: %s   Items: %d", m.query.Category.Label(), m.query.Count)))
	} else {
		p, _ := recommend.Profile(m.query.UserID)
		heading = "Recommended for " + p.Label()
		b.WriteString(mutedStyle.Render(fmt.Sprintf("User: %s   Items: %d", p.Label(), m.query.Count)))
	}
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render(heading))
	b.WriteString("\n")

	recs := m.activeRecs()
	if len(recs) == 0 {
		b.WriteString(mutedStyle.Render("No recommendations available."))
		return b.String()
	}
	for i, r := range recs {
		line := renderProductRow(r.Product, i == m.cursor)
		if r.PredictedRating != nil {
			line += scoreStyle.Render(fmt.Sprintf("  rating %.1f/5", *r.PredictedRating))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
