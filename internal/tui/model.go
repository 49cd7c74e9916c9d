package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/notify"
	"github.com/thenoetrevino/taskboard/internal/services/kanban"
	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

// Model is the Bubble Tea model of the board screen. The engine owns the
// authoritative board; the model keeps the copy it last rendered.
type Model struct {
	ctx      context.Context
	engine   *kanban.Engine
	notifier notify.Notifier
	events   <-chan notify.Event

	keys   keyMap
	help   help.Model
	colors config.ColorScheme
	now    func() time.Time

	board  board.Board
	loaded bool

	Selection  *state.SelectionState
	Toasts     *state.NotificationState
	Connection *state.ConnectionState

	showDetail    bool
	showReminders bool

	width  int
	height int
}

// New creates the board model. notifier may be nil when reminders are not
// configured.
func New(ctx context.Context, engine *kanban.Engine, notifier notify.Notifier, keys config.KeyMappings, colors config.ColorScheme) Model {
	h := help.New()
	h.Styles = help.DefaultStyles(colors.Preset != "light")

	status := state.Disabled
	if notifier != nil {
		status = state.Connecting
	}

	return Model{
		ctx:        ctx,
		engine:     engine,
		notifier:   notifier,
		keys:       newKeyMap(keys),
		help:       h,
		colors:     colors,
		now:        time.Now,
		board:      engine.Board(),
		Selection:  state.NewSelectionState(),
		Toasts:     state.NewNotificationState(),
		Connection: state.NewConnectionState(status),
	}
}

// Init loads the board and subscribes to engine results, background
// refreshes and the notification feed
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadBoard(),
		m.waitForResult(),
		m.waitForRefresh(),
	}
	if m.notifier != nil {
		cmds = append(cmds, m.listen())
	}
	return tea.Batch(cmds...)
}

// Board returns the board as last rendered
func (m Model) Board() board.Board {
	return m.board
}

func (m Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		b, err := m.engine.Refresh(m.ctx)
		return boardLoadedMsg{board: b, err: err}
	}
}

func (m Model) waitForResult() tea.Cmd {
	results := m.engine.Results()
	return func() tea.Msg {
		select {
		case r, ok := <-results:
			if !ok {
				return nil
			}
			return persistResultMsg{result: r}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) waitForRefresh() tea.Cmd {
	refreshes := m.engine.Refreshes()
	return func() tea.Msg {
		select {
		case b := <-refreshes:
			return boardRefreshedMsg{board: b}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) listen() tea.Cmd {
	return func() tea.Msg {
		events, err := m.notifier.Listen(m.ctx)
		return listenStartedMsg{events: events, err: err}
	}
}

func waitForEvent(ctx context.Context, events <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			return notifyEventMsg{event: ev}
		case <-ctx.Done():
			return nil
		}
	}
}

// columnLens returns the number of tasks per displayed column
func columnLens(b board.Board) []int {
	lens := make([]int, len(models.Statuses))
	for i, st := range models.Statuses {
		lens[i] = len(b.Column(st))
	}
	return lens
}

// selectedTask returns the task under the cursor
func (m Model) selectedTask() (models.Task, bool) {
	col := m.board.Column(models.Statuses[m.Selection.SelectedColumn()])
	i := m.Selection.SelectedTask()
	if i >= len(col) {
		return models.Task{}, false
	}
	return col[i], true
}

// displayBoard is the board with the grabbed task shown at its drop target
func (m Model) displayBoard() board.Board {
	g := m.Selection.Grab()
	if g == nil {
		return m.board
	}
	mv, err := board.NewMove(m.board, g.TaskID, g.Target, g.Index)
	if err != nil {
		return m.board
	}
	preview, _, err := board.Apply(m.board, mv)
	if err != nil {
		return m.board
	}
	return preview
}

// follow puts the cursor on task id if it is on the board
func (m Model) follow(id models.TaskID) {
	st, i, ok := m.board.Find(id)
	if !ok {
		m.Selection.Clamp(columnLens(m.board))
		return
	}
	m.Selection.SetSelection(st.Index(), i)
}
