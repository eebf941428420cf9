package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/coverwizard/internal/wizard"
)

var progressSteps = []wizard.Step{
	wizard.StepResume,
	wizard.StepJob,
	wizard.StepGenerating,
	wizard.StepPreview,
}

// renderProgress draws the four-stage bar. Stages before current get a
// check mark; the current stage is highlighted.
func renderProgress(current wizard.Step) string {
	index := current.ProgressIndex()
	if index == 0 {
		return ""
	}
	done := lipgloss.NewStyle().Foreground(colorAccent)
	active := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	pending := lipgloss.NewStyle().Foreground(colorMuted)
	link := lipgloss.NewStyle().Foreground(colorBorder)

	parts := make([]string, 0, len(progressSteps))
	for _, step := range progressSteps {
		n := step.ProgressIndex()
		switch {
		case n < index:
			parts = append(parts, done.Render(fmt.Sprintf("(✓) %s", step.FriendlyName())))
		case n == index:
			parts = append(parts, active.Render(fmt.Sprintf("(%d) %s", n, step.FriendlyName())))
		default:
			parts = append(parts, pending.Render(fmt.Sprintf("(%d) %s", n, step.FriendlyName())))
		}
	}
	return strings.Join(parts, link.Render(" ── "))
}
