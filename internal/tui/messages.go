package tui

import (
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/notify"
	"github.com/thenoetrevino/taskboard/internal/services/kanban"
)

// boardLoadedMsg carries the result of an explicit refresh
type boardLoadedMsg struct {
	board board.Board
	err   error
}

// boardRefreshedMsg carries a board fetched by the background poller
type boardRefreshedMsg struct {
	board board.Board
}

// persistResultMsg carries the backend outcome of one move
type persistResultMsg struct {
	result kanban.PersistResult
}

// listenStartedMsg is sent once the notification feed is subscribed
type listenStartedMsg struct {
	events <-chan notify.Event
	err    error
}

// notifyEventMsg carries one event from the notification feed
type notifyEventMsg struct {
	event notify.Event
}
