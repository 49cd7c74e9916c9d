package notifications

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

// Render renders a notification banner based on severity level
func Render(severity Severity, message string, colors config.ColorScheme) string {
	st := severity.style(colors)

	headerText := st.icon + " " + st.title
	maxWidth := max(lipgloss.Width(headerText), lipgloss.Width(message))

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Bold(true).
		Width(maxWidth).
		Render(headerText)

	messageContent := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal)).
		Width(maxWidth).
		Render(message)

	content := lipgloss.JoinVertical(lipgloss.Left, header, messageContent)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(st.border)).
		Padding(0, 1).
		Render(content)
}

// RenderFromState renders a banner from a state.Notification
func RenderFromState(n state.Notification, colors config.ColorScheme) string {
	return Render(severityOf(n.Level), n.Message, colors)
}

func severityOf(level state.NotificationLevel) Severity {
	switch level {
	case state.LevelWarning:
		return Warning
	case state.LevelError:
		return Error
	default:
		return Info
	}
}

// RenderInline renders a compact single-line notification for the status bar
func RenderInline(severity Severity, message string, colors config.ColorScheme) string {
	st := severity.style(colors)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Padding(0, 1).
		Render(st.icon + " " + message)
}

// RenderInlineFromState renders a status message from state
func RenderInlineFromState(n state.Notification, colors config.ColorScheme) string {
	return RenderInline(severityOf(n.Level), n.Message, colors)
}

// RenderReminder renders one deadline reminder as a history line
func RenderReminder(n models.TaskNotification, now time.Time, colors config.ColorScheme) string {
	priority := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(n.Priority.Color())).
		Render(fmt.Sprintf("%-6s", n.Priority))

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal)).
		Render(n.Title)

	due := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle)).
		Render(DueIn(n.EndDate, now))

	return priority + " " + title + " " + due
}

// DueIn describes a deadline relative to now, e.g. "due in 3h" or "overdue 20m"
func DueIn(end, now time.Time) string {
	d := end.Sub(now)
	if d < 0 {
		return "overdue " + roughDuration(-d)
	}
	return "due in " + roughDuration(d)
}

func roughDuration(d time.Duration) string {
	switch {
	case d >= 48*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return "<1m"
	}
}
