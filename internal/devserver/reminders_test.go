package devserver

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/thenoetrevino/taskboard/internal/models"
)

type published struct {
	destination string
	body        []byte
}

type recorder struct {
	mu   sync.Mutex
	msgs []published
	fail error
}

func (r *recorder) publish(destination string, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.msgs = append(r.msgs, published{destination: destination, body: body})
	return nil
}

func TestRemindersPublishOncePerDueDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	due := now.Add(3 * time.Hour)
	store := NewStore([]models.Task{
		{ID: "t1", ProjectID: "p", Status: models.StatusTodo, Title: "Ship it", Priority: models.PriorityHigh, DueDate: &due, Assignee: "u1"},
		{ID: "t2", ProjectID: "p", Status: models.StatusTodo, Title: "Nobody's", DueDate: &due},
	})

	rec := &recorder{}
	r := NewReminders(store, rec.publish, "", 24*time.Hour, nil)
	r.now = func() time.Time { return now }

	if n := r.RunOnce(); n != 1 {
		t.Fatalf("Expected 1 reminder, got %d", n)
	}
	if n := r.RunOnce(); n != 0 {
		t.Errorf("Expected reminder to be sent once, got %d more", n)
	}

	msg := rec.msgs[0]
	if msg.destination != "/topic/deadline-reminders/u1" {
		t.Errorf("Unexpected destination %q", msg.destination)
	}

	var n models.TaskNotification
	if err := sonic.Unmarshal(msg.body, &n); err != nil {
		t.Fatalf("Failed to decode reminder: %v", err)
	}
	if n.ID != "t1" || n.Title != "Ship it" || n.Priority != models.PriorityHigh || !n.EndDate.Equal(due) {
		t.Errorf("Unexpected reminder payload: %+v", n)
	}
}

func TestRemindersRetryAfterPublishFailure(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	due := now.Add(time.Hour)
	store := NewStore([]models.Task{
		{ID: "t1", ProjectID: "p", Status: models.StatusTodo, DueDate: &due, Assignee: "u1"},
	})

	rec := &recorder{fail: errors.New("broker down")}
	r := NewReminders(store, rec.publish, "", 24*time.Hour, nil)
	r.now = func() time.Time { return now }

	if n := r.RunOnce(); n != 0 {
		t.Fatalf("Expected no reminders while broker is down, got %d", n)
	}

	rec.fail = nil
	if n := r.RunOnce(); n != 1 {
		t.Errorf("Expected reminder after recovery, got %d", n)
	}
}

func TestRemindersDefaultsMissingPriority(t *testing.T) {
	due := time.Now().Add(time.Hour)
	n := notificationFor(models.Task{ID: "x", DueDate: &due, Status: models.StatusReview})
	if n.Priority != models.PriorityMedium {
		t.Errorf("Expected MEDIUM default, got %q", n.Priority)
	}
	if n.Status != "review" {
		t.Errorf("Expected status carried through, got %q", n.Status)
	}
}

func TestRemindersStartRejectsBadSchedule(t *testing.T) {
	r := NewReminders(NewStore(nil), (&recorder{}).publish, "", time.Hour, nil)
	if err := r.Start("not a schedule"); err == nil {
		r.Stop()
		t.Fatal("Expected invalid schedule error")
	}
	r.Stop()
}
