package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/notify"
	"github.com/thenoetrevino/taskboard/internal/testutil"
)

// scriptedNotifier replays a fixed list of events and then ends the feed
type scriptedNotifier struct {
	events []notify.Event
}

func (n *scriptedNotifier) Listen(ctx context.Context) (<-chan notify.Event, error) {
	ch := make(chan notify.Event, len(n.events))
	for _, ev := range n.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}
func (n *scriptedNotifier) Connected() bool                          { return false }
func (n *scriptedNotifier) Notifications() []models.TaskNotification { return nil }
func (n *scriptedNotifier) ClearHistory()                            {}
func (n *scriptedNotifier) Resume()                                  {}
func (n *scriptedNotifier) Close() error                             { return nil }

func reminder(id, title string) *models.TaskNotification {
	return &models.TaskNotification{
		ID:       models.TaskID(id),
		Title:    title,
		EndDate:  time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
		Priority: models.PriorityHigh,
	}
}

func feed() *scriptedNotifier {
	return &scriptedNotifier{events: []notify.Event{
		{Type: notify.EventConnected},
		{Type: notify.EventNotification, Notification: reminder("7", "Submit report")},
		{Type: notify.EventDisconnected, Err: errors.New("connection reset")},
		{Type: notify.EventNotification, Notification: reminder("8", "Review PR")},
	}}
}

func TestWatchHuman(t *testing.T) {
	env := testutil.SetupTestApp(t, nil, app.WithNotifier(feed()))

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, WatchCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "Submit report")
	assert.Contains(t, out, "disconnected:")
	assert.Contains(t, out, "Review PR")
}

func TestWatchCountStopsEarly(t *testing.T) {
	env := testutil.SetupTestApp(t, nil, app.WithNotifier(feed()))

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, WatchCmd(), "--count", "1", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestWatchJSON(t *testing.T) {
	env := testutil.SetupTestApp(t, nil, app.WithNotifier(feed()))

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, WatchCmd(), "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	second := testutil.ParseJSON(t, lines[1])
	assert.Equal(t, "notification", second["type"])
	assert.Equal(t, "Submit report", second["notification"].(map[string]interface{})["title"])
	third := testutil.ParseJSON(t, lines[2])
	assert.Equal(t, "connection reset", third["error"])
}

func TestWatchWithoutBroker(t *testing.T) {
	env := testutil.SetupTestApp(t, nil)

	_, _, err := testutil.ExecuteCommand(t, env.Ctx, WatchCmd())
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
