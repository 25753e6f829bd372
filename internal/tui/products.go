package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HerbHall/renewhub/internal/catalog"
	"github.com/HerbHall/renewhub/pkg/models"
)

func (m Model) updateProducts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.ctrl.State()
	v := m.ctrl.View(m.products)

	switch {
	case key.Matches(msg, keys.NextTab), key.Matches(msg, keys.PrevTab):
		tabs := catalog.Tabs()
		i := slices.Index(tabs, st.ActiveTab)
		if key.Matches(msg, keys.NextTab) {
			i = (i + 1) % len(tabs)
		} else {
			i = (i - 1 + len(tabs)) % len(tabs)
		}
		m.ctrl.SelectCategoryTab(tabs[i])
		m.route = m.loc.Route()
		m.cursor = 0

	case key.Matches(msg, keys.Toggle):
		n := int(msg.Runes[0] - '1')
		cats := models.Categories()
		if n >= 0 && n < len(cats) {
			c := cats[n]
			m.ctrl.ToggleCategoryCheckbox(c, !st.Filter.HasCategory(c))
			m.cursor = 0
		}

	case key.Matches(msg, keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, keys.MinDown), key.Matches(msg, keys.MinUp),
		key.Matches(msg, keys.MaxDown), key.Matches(msg, keys.MaxUp):
		r := st.Filter.PriceRange
		switch {
		case key.Matches(msg, keys.MinDown):
			r.Min -= catalog.PriceStep
		case key.Matches(msg, keys.MinUp):
			r.Min += catalog.PriceStep
		case key.Matches(msg, keys.MaxDown):
			r.Max -= catalog.PriceStep
		case key.Matches(msg, keys.MaxUp):
			r.Max += catalog.PriceStep
		}
		r.Min = min(max(r.Min, catalog.DefaultMinPrice), catalog.DefaultMaxPrice)
		r.Max = min(max(r.Max, catalog.DefaultMinPrice), catalog.DefaultMaxPrice)
		m.ctrl.SetPriceRange(catalog.NewPriceRange(r.Min, r.Max))
		m.cursor = 0

	case key.Matches(msg, keys.NextPage):
		if st.Page < v.Pagination.TotalPages {
			m.ctrl.SetPage(st.Page + 1)
			m.cursor = 0
		}

	case key.Matches(msg, keys.PrevPage):
		if st.Page > 1 {
			m.ctrl.SetPage(st.Page - 1)
			m.cursor = 0
		}

	case key.Matches(msg, keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(v.Items))

	case key.Matches(msg, keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(v.Items))

	case key.Matches(msg, keys.Enter):
		if m.cursor < len(v.Items) {
			return m, m.open(ProductPath(v.Items[m.cursor].ID))
		}
	}

	if m.err == nil {
		m.status = m.ctrl.View(m.products).Message
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.ctrl != nil && m.search.Value() != m.ctrl.State().Filter.SearchTerm {
		m.ctrl.SetSearchTerm(m.search.Value())
		m.cursor = 0
		if m.err == nil {
			m.status = m.ctrl.View(m.products).Message
		}
	}
	return m, cmd
}

func (m Model) renderProducts() string {
	v := m.ctrl.View(m.products)
	st := v.State

	var b strings.Builder
	b.WriteString(titleStyle.Render("Renewable Energy Products"))
	b.WriteString("\n")
	b.WriteString(renderTabs(st.ActiveTab))
	b.WriteString("\n\n")
	b.WriteString(renderFilters(st, m.search.View(), m.searching))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(catalogFailedMsg))
		return b.String()
	}
	if v.Empty {
		b.WriteString(mutedStyle.Render(v.Message))
		return b.String()
	}

	for i, p := range v.Items {
		b.WriteString(renderProductRow(p, i == m.cursor))
		b.WriteString("\n")
	}
	if v.ShowPager {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Page %d of %d", v.Pagination.Page, v.Pagination.TotalPages)))
	}
	return b.String()
}

func renderTabs(active catalog.Tab) string {
	tabs := catalog.Tabs()
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == active {
			parts = append(parts, tabActiveStyle.Render(t.Label()))
		} else {
			parts = append(parts, tabInactiveStyle.Render(t.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderFilters(st catalog.BrowseState, searchView string, searching bool) string {
	var b strings.Builder
	if searching || st.Filter.SearchTerm != "" {
		b.WriteString("Search: " + searchView + "\n")
	}
	b.WriteString(fmt.Sprintf("Price: $%.0f - $%.0f\n", st.Filter.PriceRange.Min, st.Filter.PriceRange.Max))
	b.WriteString("Categories:")
	for i, c := range models.Categories() {
		box := "[ ]"
		if st.Filter.HasCategory(c) {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf(" %d%s %s", i+1, box, c.Label()))
	}
	return mutedStyle.Render(b.String())
}

func renderProductRow(p models.Product, selected bool) string {
	line := fmt.Sprintf("%s  %s  %s  %s",
		textStyle.Render(p.Name),
		mutedStyle.Render(p.Category.Label()),
		priceStyle.Render(fmt.Sprintf("$%.2f", p.Price)),
		mutedStyle.Render(fmt.Sprintf("%d%% efficient", p.EfficiencyPercent())),
	)
	if selected {
		return selectedStyle.Render(line)
	}
	return unselectedStyle.Render(line)
}
