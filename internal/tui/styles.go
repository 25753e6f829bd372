package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorGreen   = lipgloss.Color("#2E7D32")
	colorLeaf    = lipgloss.Color("#81C784")
	colorBlue    = lipgloss.Color("#1565C0")
	colorMuted   = lipgloss.Color("#8A8A8A")
	colorText    = lipgloss.Color("#E0E0E0")
	colorError   = lipgloss.Color("#E57373")
	colorWarning = lipgloss.Color("#FFB74D")
)

var (
	locationStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorMuted)

	navActiveStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorGreen).Bold(true).Padding(0, 1)
	navInactiveStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Foreground(colorLeaf).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	priceStyle    = lipgloss.NewStyle().Foreground(colorLeaf)
	scoreStyle    = lipgloss.NewStyle().Foreground(colorWarning)

	selectedStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorLeaf).
			PaddingLeft(1)
	unselectedStyle = lipgloss.NewStyle().PaddingLeft(2)

	tabActiveStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true).Underline(true).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorError).
			Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	statusStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	chartStyle  = lipgloss.NewStyle().Foreground(colorBlue)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorLeaf)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
