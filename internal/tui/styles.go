package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every view. Taxonomy colors come from the catalog.
const (
	accent = lipgloss.Color("205")
	muted  = lipgloss.Color("240")
	faint  = lipgloss.Color("241")
	warn   = lipgloss.Color("214")
	alert  = lipgloss.Color("196")
	shade  = lipgloss.Color("236")
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	tabStyle         = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle   = tabStyle.Foreground(accent).Background(shade).Bold(true)
	inactiveTabStyle = tabStyle.Foreground(muted)

	bannerStyle  = tabStyle.Foreground(lipgloss.Color("0")).Background(warn)
	statusStyle  = lipgloss.NewStyle().Foreground(muted).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(alert)
	dangerStyle  = errorStyle.Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(faint).Width(10)
	changedStyle = lipgloss.NewStyle().Foreground(warn).Bold(true)
)

// swatch colors text with a taxonomy color, leaving it plain when there is
// none.
func swatch(text, color string) string {
	if color == "" || color == "transparent" {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}
