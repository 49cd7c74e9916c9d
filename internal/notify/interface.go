package notify

import (
	"context"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// Notifier is the notification feed as seen by the TUI and CLI
type Notifier interface {
	// Listen connects and delivers events until ctx is done or Close
	Listen(ctx context.Context) (<-chan Event, error)

	// Connected reports whether a subscription is currently live
	Connected() bool

	// Notifications returns the recent history, newest first
	Notifications() []models.TaskNotification

	// ClearHistory forgets the recent history
	ClearHistory()

	// Resume retries immediately if disconnected
	Resume()

	Close() error
}

var _ Notifier = (*Client)(nil)
