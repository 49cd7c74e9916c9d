package notify

import (
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// EventType says what an Event carries
type EventType string

const (
	EventNotification EventType = "notification"
	EventConnected    EventType = "connected"
	EventDisconnected EventType = "disconnected"
)

// Event is delivered by Listen. Connected and Disconnected events mark
// changes of the connected flag; Err holds the cause of a disconnect.
type Event struct {
	Type         EventType
	Notification *models.TaskNotification
	Err          error
	Timestamp    time.Time
}
