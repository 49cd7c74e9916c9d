package models

import "time"

// TaskID identifies a task. The backend treats it as opaque.
type TaskID string

// Task represents a single card on a project's kanban board.
// Only Status and Order are ever rewritten on the client; the remaining
// fields are payload carried through from the backend untouched.
type Task struct {
	ID          TaskID     `json:"id"`
	ProjectID   string     `json:"projectId,omitempty"`
	Status      Status     `json:"status"`
	Order       int        `json:"order"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
}

// TaskPatch is the body of a status/order update
type TaskPatch struct {
	Status Status `json:"status"`
	Order  int    `json:"order"`
}
