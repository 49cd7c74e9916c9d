package notify

import (
	"sync"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// History keeps the most recent notifications, newest first
type History struct {
	mu    sync.Mutex
	items []models.TaskNotification
	size  int
}

// NewHistory creates a history holding at most size items
func NewHistory(size int) *History {
	if size <= 0 {
		size = models.NotificationHistorySize
	}
	return &History{size: size, items: make([]models.TaskNotification, 0, size)}
}

// Add records n as the newest item, evicting the oldest when full
func (h *History) Add(n models.TaskNotification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == h.size {
		h.items = h.items[:h.size-1]
	}
	h.items = append(h.items, models.TaskNotification{})
	copy(h.items[1:], h.items)
	h.items[0] = n
}

// Items returns a copy, newest first
func (h *History) Items() []models.TaskNotification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.TaskNotification, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of remembered notifications
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Clear forgets every notification
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = h.items[:0]
}
