package board

import (
	"errors"
	"fmt"
)

// Move validation errors
var (
	ErrInvalidColumn   = errors.New("column is not a configured status")
	ErrTaskNotFound    = errors.New("task not found at source position")
	ErrIndexOutOfRange = errors.New("target index out of range")
)

// ValidationError reports a move rejected before any state was touched.
// It never results in a backend call.
type ValidationError struct {
	Move Move
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid move of task %q (%s[%d] -> %s[%d]): %v",
		e.Move.TaskID, e.Move.From, e.Move.FromIndex, e.Move.To, e.Move.ToIndex, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
