package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-akhmetov/helpdesk/internal/event"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	previewBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	visitedStepStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))

	pendingStepStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Faint(true)

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// renderNotice draws a one-line notification.
func renderNotice(e *event.Event) string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case event.KindSuccess:
		return successStyle.Render("✓ " + e.Text)
	case event.KindWarning:
		return warningStyle.Render("! " + e.Text)
	case event.KindError:
		return errorStyle.Render("✗ " + e.Text)
	default:
		return labelStyle.Render(e.Text)
	}
}
