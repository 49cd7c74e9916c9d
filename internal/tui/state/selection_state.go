package state

import "github.com/thenoetrevino/taskboard/internal/models"

// Grab is a task picked up for moving. Target and Index are where it
// would land if dropped now.
type Grab struct {
	TaskID models.TaskID
	From   models.Status
	Target models.Status
	Index  int
}

// SelectionState is the board cursor and the grab in progress, if any
type SelectionState struct {
	column int
	task   int
	grab   *Grab
}

// NewSelectionState starts on the first task of the first column
func NewSelectionState() *SelectionState {
	return &SelectionState{}
}

// SelectedColumn returns the index of the selected column
func (s *SelectionState) SelectedColumn() int {
	return s.column
}

// SelectedTask returns the index of the selected task within its column
func (s *SelectionState) SelectedTask() int {
	return s.task
}

// SetSelection moves the cursor
func (s *SelectionState) SetSelection(column, task int) {
	s.column = max(column, 0)
	s.task = max(task, 0)
}

// Clamp keeps the cursor inside a board whose column lengths are lens
func (s *SelectionState) Clamp(lens []int) {
	if len(lens) == 0 {
		s.column, s.task = 0, 0
		return
	}
	s.column = min(max(s.column, 0), len(lens)-1)
	s.task = min(max(s.task, 0), max(lens[s.column]-1, 0))
}

// Grab returns the grab in progress, or nil
func (s *SelectionState) Grab() *Grab {
	return s.grab
}

// IsGrabbing reports whether a task is picked up
func (s *SelectionState) IsGrabbing() bool {
	return s.grab != nil
}

// StartGrab picks up a task at its current position
func (s *SelectionState) StartGrab(id models.TaskID, from models.Status, index int) {
	s.grab = &Grab{TaskID: id, From: from, Target: from, Index: index}
}

// EndGrab drops the grab without moving anything
func (s *SelectionState) EndGrab() *Grab {
	g := s.grab
	s.grab = nil
	return g
}
