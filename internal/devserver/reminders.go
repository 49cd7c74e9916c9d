package devserver

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/robfig/cron/v3"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// PublishFunc delivers a payload to a destination
type PublishFunc func(destination string, body []byte) error

// Reminders publishes a deadline reminder to the assignee's topic for each
// open task due within the window. Each task is reminded once per due date.
type Reminders struct {
	store    *Store
	publish  PublishFunc
	template string
	window   time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu   sync.Mutex
	sent map[models.TaskID]time.Time
	cron *cron.Cron
}

// NewReminders creates the reminder job
func NewReminders(store *Store, publish PublishFunc, template string, window time.Duration, logger *slog.Logger) *Reminders {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reminders{
		store:    store,
		publish:  publish,
		template: template,
		window:   window,
		now:      time.Now,
		logger:   logger,
		sent:     make(map[models.TaskID]time.Time),
	}
}

// RunOnce publishes pending reminders and returns how many were sent
func (r *Reminders) RunOnce() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	sent := 0
	for _, t := range r.store.Due(r.now(), r.window) {
		if t.Assignee == "" {
			continue
		}
		if last, ok := r.sent[t.ID]; ok && last.Equal(*t.DueDate) {
			continue
		}

		body, err := sonic.Marshal(notificationFor(t))
		if err != nil {
			r.logger.Error("failed to encode reminder", "task_id", t.ID, "error", err)
			continue
		}
		if err := r.publish(models.Topic(r.template, t.Assignee), body); err != nil {
			r.logger.Error("failed to publish reminder", "task_id", t.ID, "error", err)
			continue
		}
		r.sent[t.ID] = *t.DueDate
		sent++
	}
	return sent
}

// Start runs the job on a cron schedule such as "@every 1m"
func (r *Reminders) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if n := r.RunOnce(); n > 0 {
			r.logger.Info("published deadline reminders", "count", n)
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	c.Start()

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()
	return nil
}

// Stop halts the schedule
func (r *Reminders) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

func notificationFor(t models.Task) models.TaskNotification {
	priority := t.Priority
	if !priority.Valid() {
		priority = models.PriorityMedium
	}
	return models.TaskNotification{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		EndDate:     *t.DueDate,
		Priority:    priority,
		Status:      string(t.Status),
		ProjectID:   t.ProjectID,
	}
}
