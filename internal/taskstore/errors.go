package taskstore

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// ErrMalformedResponse marks a 2xx response whose body could not be decoded
var ErrMalformedResponse = errors.New("malformed response")

// PersistenceError reports a failed task update: either the request never
// completed (StatusCode 0, Err set) or the backend answered non-2xx.
type PersistenceError struct {
	TaskID     models.TaskID
	StatusCode int
	Message    string
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to update task %s: %s", e.TaskID, e.Message)
	}
	return fmt.Sprintf("failed to update task %s: %v", e.TaskID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SourceError reports a failed task list fetch
type SourceError struct {
	ProjectID  string
	StatusCode int
	Message    string
	Err        error
}

func (e *SourceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to list tasks for project %s: %s", e.ProjectID, e.Message)
	}
	return fmt.Sprintf("failed to list tasks for project %s: %v", e.ProjectID, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func statusMessage(code int) string {
	return fmt.Sprintf("request failed with status %d", code)
}
