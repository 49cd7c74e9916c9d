// Package board holds the column arrangement of a project's tasks and the
// pure transitions applied to it by user moves.
package board

import (
	"cmp"
	"slices"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// Column is the ordered list of tasks sharing a status
type Column struct {
	Status models.Status
	Tasks  []models.Task
}

// Board maps every configured status to its ordered tasks.
// A Board is a value: transitions return a new Board and never write to the
// slices of the one they were given, so a caller can keep an old Board around
// to roll back to.
type Board struct {
	columns map[models.Status][]models.Task

	// Excluded holds tasks whose status matched no configured column.
	// They are not rendered and never moved.
	Excluded []models.Task
}

// Build partitions tasks into the configured columns, each sorted by
// ascending order. Ties keep input order. Orders are then rewritten to the
// column positions so every column is ranked 0..len-1.
func Build(tasks []models.Task) Board {
	b := Board{columns: make(map[models.Status][]models.Task, len(models.Statuses))}
	for _, st := range models.Statuses {
		b.columns[st] = []models.Task{}
	}

	for _, t := range tasks {
		if !t.Status.Valid() {
			b.Excluded = append(b.Excluded, t)
			continue
		}
		b.columns[t.Status] = append(b.columns[t.Status], t)
	}

	for st, col := range b.columns {
		slices.SortStableFunc(col, func(a, c models.Task) int {
			return cmp.Compare(a.Order, c.Order)
		})
		renumber(col)
		b.columns[st] = col
	}

	return b
}

// Column returns a copy of the tasks in status, in board order
func (b Board) Column(status models.Status) []models.Task {
	return slices.Clone(b.columns[status])
}

// Columns returns all columns in the configured order
func (b Board) Columns() []Column {
	cols := make([]Column, 0, len(models.Statuses))
	for _, st := range models.Statuses {
		cols = append(cols, Column{Status: st, Tasks: b.Column(st)})
	}
	return cols
}

// Len returns the number of tasks on the board, excluded tasks not counted
func (b Board) Len() int {
	n := 0
	for _, col := range b.columns {
		n += len(col)
	}
	return n
}

// Tasks flattens the board in column order
func (b Board) Tasks() []models.Task {
	out := make([]models.Task, 0, b.Len())
	for _, st := range models.Statuses {
		out = append(out, b.columns[st]...)
	}
	return out
}

// Find locates a task by id
func (b Board) Find(id models.TaskID) (models.Status, int, bool) {
	for _, st := range models.Statuses {
		for i, t := range b.columns[st] {
			if t.ID == id {
				return st, i, true
			}
		}
	}
	return "", -1, false
}

// Task returns the task with the given id
func (b Board) Task(id models.TaskID) (models.Task, bool) {
	st, i, ok := b.Find(id)
	if !ok {
		return models.Task{}, false
	}
	return b.columns[st][i], true
}

// Clone returns a deep copy of the board's column slices
func (b Board) Clone() Board {
	out := Board{
		columns:  make(map[models.Status][]models.Task, len(b.columns)),
		Excluded: slices.Clone(b.Excluded),
	}
	for st, col := range b.columns {
		out.columns[st] = slices.Clone(col)
	}
	return out
}

// Equal reports whether both boards hold the same tasks in the same places
func (b Board) Equal(other Board) bool {
	for _, st := range models.Statuses {
		if !slices.EqualFunc(b.columns[st], other.columns[st], taskEqual) {
			return false
		}
	}
	return slices.EqualFunc(b.Excluded, other.Excluded, taskEqual)
}

// shallowCopy copies the column map but shares the slices
func (b Board) shallowCopy() Board {
	out := Board{
		columns:  make(map[models.Status][]models.Task, len(models.Statuses)),
		Excluded: b.Excluded,
	}
	for _, st := range models.Statuses {
		out.columns[st] = b.columns[st]
	}
	return out
}

func renumber(col []models.Task) {
	for i := range col {
		col[i].Order = i
	}
}

func taskEqual(a, c models.Task) bool {
	if a.DueDate != nil && c.DueDate != nil {
		if !a.DueDate.Equal(*c.DueDate) {
			return false
		}
	} else if a.DueDate != c.DueDate {
		return false
	}
	a.DueDate, c.DueDate = nil, nil
	return a == c
}
