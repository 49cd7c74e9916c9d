package models

// Status identifies the board column a task belongs to
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Statuses is the fixed, ordered set of board columns.
// It is configuration and is never derived from task data.
var Statuses = []Status{
	StatusBacklog,
	StatusTodo,
	StatusInProgress,
	StatusReview,
	StatusDone,
}

var statusTitles = map[Status]string{
	StatusBacklog:    "Backlog",
	StatusTodo:       "To Do",
	StatusInProgress: "In Progress",
	StatusReview:     "Review",
	StatusDone:       "Done",
}

// Valid reports whether s is one of the configured statuses
func (s Status) Valid() bool {
	_, ok := statusTitles[s]
	return ok
}

// Title returns the display name of the column
func (s Status) Title() string {
	if t, ok := statusTitles[s]; ok {
		return t
	}
	return string(s)
}

// Index returns the position of s in Statuses, or -1
func (s Status) Index() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStatus resolves a status identifier or display name (case-insensitive).
func ParseStatus(v string) (Status, error) {
	for _, st := range Statuses {
		if equalFold(v, string(st)) || equalFold(v, st.Title()) {
			return st, nil
		}
	}
	return "", ErrUnknownStatus
}
