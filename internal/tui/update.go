package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/notify"
	"github.com/thenoetrevino/taskboard/internal/services/kanban"
	"github.com/thenoetrevino/taskboard/internal/tui/notifications"
	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

// Update is the main update dispatcher that handles all messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	select {
	case <-m.ctx.Done():
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetWidth(msg.Width)
		return m, nil

	case tea.FocusMsg:
		if m.notifier != nil && !m.notifier.Connected() {
			m.notifier.Resume()
		}
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.Toasts.Add(state.LevelError, fmt.Sprintf("Could not load board: %v", msg.err))
			return m, nil
		}
		m.loaded = true
		m.setBoard(msg.board)
		return m, nil

	case boardRefreshedMsg:
		m.loaded = true
		m.setBoard(msg.board)
		return m, m.waitForRefresh()

	case persistResultMsg:
		m.handlePersistResult(msg.result)
		return m, m.waitForResult()

	case listenStartedMsg:
		if msg.err != nil {
			m.Connection.SetStatus(state.Disabled, msg.err)
			m.Toasts.Add(state.LevelWarning, fmt.Sprintf("Reminders unavailable: %v", msg.err))
			return m, nil
		}
		m.events = msg.events
		return m, waitForEvent(m.ctx, m.events)

	case notifyEventMsg:
		m.handleNotifyEvent(msg.event)
		return m, waitForEvent(m.ctx, m.events)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// setBoard replaces the rendered board, dropping a grab whose task vanished
func (m *Model) setBoard(b board.Board) {
	m.board = b
	if g := m.Selection.Grab(); g != nil {
		if _, _, ok := b.Find(g.TaskID); !ok {
			m.Selection.EndGrab()
			m.Toasts.Add(state.LevelWarning, "The grabbed task is no longer on the board")
		}
	}
	m.Selection.Clamp(columnLens(b))
}

func (m *Model) handlePersistResult(r kanban.PersistResult) {
	if r.Err == nil {
		return
	}
	title := string(r.TaskID)
	if t, ok := r.Ticket.Previous.Task(r.TaskID); ok {
		title = t.Title
	}

	if r.Stale {
		// a newer move or refresh already decided where the task is
		slog.Debug("ignoring stale persist failure", "task_id", r.TaskID, "seq", r.Seq, "error", r.Err)
		return
	}

	b, err := m.engine.Revert(r.Ticket)
	if err != nil {
		if errors.Is(err, kanban.ErrStaleTicket) {
			return
		}
		m.Toasts.Add(state.LevelError, fmt.Sprintf("Could not move %q: %v", title, r.Err))
		return
	}
	m.setBoard(b)
	m.Toasts.Add(state.LevelError, fmt.Sprintf("Could not move %q, moved back: %v", title, r.Err))
}

func (m *Model) handleNotifyEvent(ev notify.Event) {
	switch ev.Type {
	case notify.EventNotification:
		n := ev.Notification
		m.Toasts.Add(state.LevelInfo, fmt.Sprintf("%s %s", n.Title, notifications.DueIn(n.EndDate, m.now())))
	case notify.EventConnected:
		m.Connection.SetStatus(state.Connected, nil)
	case notify.EventDisconnected:
		m.Connection.SetStatus(state.Disconnected, ev.Err)
	}
}

// ============================================================================
// KEY HANDLERS
// ============================================================================

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.Toasts.Clear()

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.Selection.IsGrabbing() {
		return m.handleGrabKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	col, task := m.Selection.SelectedColumn(), m.Selection.SelectedTask()
	lens := columnLens(m.board)

	switch {
	case key.Matches(msg, m.keys.PrevColumn):
		if col == 0 {
			m.Toasts.Add(state.LevelInfo, "Already at the first column")
			return m, nil
		}
		m.Selection.SetSelection(col-1, task)
	case key.Matches(msg, m.keys.NextColumn):
		if col >= len(models.Statuses)-1 {
			m.Toasts.Add(state.LevelInfo, "Already at the last column")
			return m, nil
		}
		m.Selection.SetSelection(col+1, task)
	case key.Matches(msg, m.keys.PrevTask):
		m.Selection.SetSelection(col, task-1)
	case key.Matches(msg, m.keys.NextTask):
		m.Selection.SetSelection(col, task+1)
	case key.Matches(msg, m.keys.Grab):
		t, ok := m.selectedTask()
		if !ok {
			m.Toasts.Add(state.LevelInfo, "No task selected")
			return m, nil
		}
		m.Selection.StartGrab(t.ID, t.Status, task)
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.Toasts.Add(state.LevelInfo, "Refreshing…")
		return m, m.loadBoard()
	case key.Matches(msg, m.keys.ViewTask):
		m.showDetail = !m.showDetail
	case key.Matches(msg, m.keys.ToggleNotifications):
		m.showReminders = !m.showReminders
	case key.Matches(msg, m.keys.ClearNotifications):
		if m.notifier != nil {
			m.notifier.ClearHistory()
		}
	}

	m.Selection.Clamp(lens)
	return m, nil
}

func (m Model) handleGrabKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	g := m.Selection.Grab()
	target := g.Target.Index()

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.Selection.EndGrab()
		m.follow(g.TaskID)
	case key.Matches(msg, m.keys.PrevColumn):
		if target > 0 {
			m.retarget(g, models.Statuses[target-1], g.Index)
		}
	case key.Matches(msg, m.keys.NextColumn):
		if target < len(models.Statuses)-1 {
			m.retarget(g, models.Statuses[target+1], g.Index)
		}
	case key.Matches(msg, m.keys.PrevTask):
		m.retarget(g, g.Target, g.Index-1)
	case key.Matches(msg, m.keys.NextTask):
		m.retarget(g, g.Target, g.Index+1)
	case key.Matches(msg, m.keys.Drop):
		return m.drop()
	}
	return m, nil
}

// retarget points the grab at column to, clamping index to the slots a
// drop there can take
func (m Model) retarget(g *state.Grab, to models.Status, index int) {
	limit := len(m.board.Column(to))
	if to == g.From {
		limit--
	}
	g.Target = to
	g.Index = min(max(index, 0), max(limit, 0))
	m.Selection.SetSelection(to.Index(), g.Index)
}

func (m Model) drop() (tea.Model, tea.Cmd) {
	g := m.Selection.EndGrab()

	ticket, err := m.engine.MoveTo(m.ctx, g.TaskID, g.Target, g.Index)
	if err != nil {
		m.Toasts.Add(state.LevelError, fmt.Sprintf("Cannot move task: %v", err))
		m.follow(g.TaskID)
		return m, nil
	}
	if !ticket.NoOp {
		m.board = ticket.Next
	}
	m.follow(g.TaskID)
	return m, nil
}
