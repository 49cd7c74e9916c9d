package models

import "time"

// TaskNotification is a deadline reminder pushed by the backend
type TaskNotification struct {
	ID          TaskID    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EndDate     time.Time `json:"endDate"`
	Priority    Priority  `json:"priority"`
	Status      string    `json:"status"`
	ProjectID   string    `json:"projectId"`
}
