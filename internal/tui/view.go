package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

//nolint:gochecknoglobals // Styles are immutable values.
var (
	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2)

	ringingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("196")).
			Bold(true).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(clockStyle.Render(m.now.Format(alarm.LabelLayout)))
	b.WriteString("\n")

	if m.sounding {
		b.WriteString(ringingStyle.Render("ALARM! Press s to stop"))
		b.WriteString("\n\n")
	}

	b.WriteString(headerStyle.Render("Alarms"))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}

	for i, entry := range m.entries {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + entry.Label))
		} else {
			b.WriteString("  " + entry.Label)
		}

		b.WriteString(dimStyle.Render("  " + entry.ScheduledAt.Format("Mon 2006-01-02")))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusIsError {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(m.status)
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString(m.help.View(formKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}
