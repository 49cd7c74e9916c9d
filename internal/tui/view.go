package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/tui/notifications"
	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

const (
	defaultWidth   = 120
	minColumnWidth = 16
)

// View renders the current state of the application.
func (m Model) View() tea.View {
	view := tea.NewView(m.Render())
	view.AltScreen = true
	view.ReportFocus = true
	view.WindowTitle = "taskboard · " + m.engine.ProjectID()
	return view
}

// Render returns the screen content as a string
func (m Model) Render() string {
	if !m.loaded {
		parts := []string{"Loading board…"}
		for _, n := range m.Toasts.All() {
			parts = append(parts, notifications.RenderFromState(n, m.colors))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	sections := []string{
		m.renderHeader(),
		m.renderBoard(m.displayBoard()),
	}
	if n := len(m.board.Excluded); n > 0 {
		sections = append(sections, m.subtle().Render(
			fmt.Sprintf("%d task(s) hidden: status matches no column", n)))
	}
	if m.showDetail {
		if t, ok := m.selectedTask(); ok {
			sections = append(sections, m.renderDetail(t))
		}
	}
	if m.showReminders {
		sections = append(sections, m.renderReminders())
	}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) subtle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Subtle))
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.colors.Title)).
		Render("taskboard · " + m.engine.ProjectID())

	var indicator string
	switch status := m.Connection.Status(); status {
	case state.Connected:
		indicator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.InfoFg)).Render("● " + status.String())
	case state.Disconnected:
		indicator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.WarningFg)).Render("○ " + status.String())
	default:
		indicator = m.subtle().Render("○ " + status.String())
	}

	if m.notifier != nil {
		if n := len(m.notifier.Notifications()); n > 0 {
			indicator += m.subtle().Render(fmt.Sprintf("  🔔 %d", n))
		}
	}

	return title + "  " + indicator
}

func (m Model) columnWidth() int {
	width := m.width
	if width == 0 {
		width = defaultWidth
	}
	return max(width/len(models.Statuses)-4, minColumnWidth)
}

func (m Model) renderBoard(b board.Board) string {
	width := m.columnWidth()
	columns := make([]string, 0, len(models.Statuses))

	for ci, st := range models.Statuses {
		tasks := b.Column(st)

		var body strings.Builder
		body.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(m.colors.Title)).
			Render(fmt.Sprintf("%s (%d)", st.Title(), len(tasks))))

		if len(tasks) == 0 {
			body.WriteString("\n" + m.subtle().Render("empty"))
		}
		for ti, t := range tasks {
			selected := ci == m.Selection.SelectedColumn() && ti == m.Selection.SelectedTask()
			body.WriteString("\n" + m.renderTask(t, width, selected))
		}

		border := m.colors.ColumnBorder
		if ci == m.Selection.SelectedColumn() {
			border = m.colors.SelectedBorder
		}
		columns = append(columns, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Width(width).
			Render(body.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) renderTask(t models.Task, width int, selected bool) string {
	border := m.colors.Subtle
	grabbed := false
	if g := m.Selection.Grab(); g != nil && g.TaskID == t.ID {
		grabbed = true
		border = m.colors.GrabbedBorder
	} else if selected {
		border = m.colors.SelectedBorder
	}

	priority := m.subtle().Render("·")
	if t.Priority != "" {
		priority = lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Priority.Color())).
			Render(string(t.Priority))
	}

	title := t.Title
	if grabbed {
		title = "✥ " + title
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Normal)).Render(title),
		priority,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(width - 2).
		Render(content)
}

func (m Model) renderDetail(t models.Task) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Accent))
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Title)).Render(t.Title),
		label.Render("Status: ") + t.Status.Title(),
	}
	if t.Assignee != "" {
		lines = append(lines, label.Render("Assignee: ")+t.Assignee)
	}
	if t.DueDate != nil {
		lines = append(lines, label.Render("Due: ")+notifications.DueIn(*t.DueDate, m.now()))
	}
	if t.Description != "" {
		lines = append(lines, "", t.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.colors.Accent)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderReminders() string {
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Accent)).Render("Reminders")}

	var items []models.TaskNotification
	if m.notifier != nil {
		items = m.notifier.Notifications()
	}
	if len(items) == 0 {
		lines = append(lines, m.subtle().Render("No reminders yet"))
	}
	now := m.now()
	for _, n := range items {
		lines = append(lines, notifications.RenderReminder(n, now, m.colors))
	}
	if err := m.Connection.LastError(); err != nil && m.Connection.Status() == state.Disconnected {
		lines = append(lines, m.subtle().Render(err.Error()))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.colors.ColumnBorder)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderToasts() string {
	if !m.Toasts.HasAny() {
		return ""
	}
	parts := make([]string, 0, len(m.Toasts.All()))
	for _, n := range m.Toasts.All() {
		parts = append(parts, notifications.RenderInlineFromState(n, m.colors))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
