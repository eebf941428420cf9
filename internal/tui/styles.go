package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/coverwizard/internal/wizard"
)

var (
	colorAccent  = lipgloss.Color("#5B8DEF")
	colorBorder  = lipgloss.Color("#444444")
	colorMuted   = lipgloss.Color("#888888")
	colorSubtle  = lipgloss.Color("#AAAAAA")
	colorDanger  = lipgloss.Color("#FF6B6B")
	colorWarn    = lipgloss.Color("#E5C07B")
	colorSuccess = lipgloss.Color("#98C379")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorDanger)
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	bodyStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	hintStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorDanger)
	okStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	chipStyle  = lipgloss.NewStyle().Foreground(colorAccent).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// letterStyle returns the box a letter is rendered in for a template.
func letterStyle(id wizard.TemplateID, width int) lipgloss.Style {
	base := lipgloss.NewStyle().Width(max(20, width)).Padding(1, 2)
	switch id {
	case wizard.TemplateModern:
		return base.
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorAccent).
			Foreground(lipgloss.Color("#DDDDDD"))
	case wizard.TemplateCreative:
		return base.
			Background(lipgloss.Color("#1E2A44")).
			Foreground(lipgloss.Color("#E8EEFF")).
			Italic(true)
	case wizard.TemplateSimple:
		return base.
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	default:
		return base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
