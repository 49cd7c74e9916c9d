package board

import (
	"slices"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// Move relocates one task to a (column, index) position
type Move struct {
	TaskID    models.TaskID
	From      models.Status
	To        models.Status
	FromIndex int
	ToIndex   int
}

// IsNoOp reports whether the move leaves the task where it is
func (m Move) IsNoOp() bool {
	return m.From == m.To && m.FromIndex == m.ToIndex
}

// Persist is the single backend update a move produces.
// Order is the drop index, not a recomputed global rank.
type Persist struct {
	TaskID models.TaskID
	Status models.Status
	Order  int
}

// Patch returns the request body for the update
func (p Persist) Patch() models.TaskPatch {
	return models.TaskPatch{Status: p.Status, Order: p.Order}
}

// NewMove builds the move that puts task id at index toIndex of column to,
// looking up its current position in b.
func NewMove(b Board, id models.TaskID, to models.Status, toIndex int) (Move, error) {
	from, fromIndex, ok := b.Find(id)
	if !ok {
		return Move{}, &ValidationError{Move: Move{TaskID: id, To: to, ToIndex: toIndex}, Err: ErrTaskNotFound}
	}
	return Move{TaskID: id, From: from, To: to, FromIndex: fromIndex, ToIndex: toIndex}, nil
}

// Apply returns the board that results from m, together with the backend
// update it requires. A no-op move returns b itself and a nil Persist.
// Invalid moves return b unchanged and a *ValidationError.
func Apply(b Board, m Move) (Board, *Persist, error) {
	if err := b.Validate(m); err != nil {
		return b, nil, err
	}
	if m.IsNoOp() {
		return b, nil, nil
	}

	next := b.shallowCopy()

	src := slices.Clone(b.columns[m.From])
	task := src[m.FromIndex]
	src = slices.Delete(src, m.FromIndex, m.FromIndex+1)

	dst := src
	if m.From != m.To {
		dst = slices.Clone(b.columns[m.To])
		renumber(src)
		next.columns[m.From] = src
	}

	task.Status = m.To
	dst = slices.Insert(dst, m.ToIndex, task)
	renumber(dst)
	next.columns[m.To] = dst

	return next, &Persist{TaskID: task.ID, Status: m.To, Order: m.ToIndex}, nil
}

// Validate checks m's preconditions against b
func (b Board) Validate(m Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		return &ValidationError{Move: m, Err: ErrInvalidColumn}
	}

	src := b.columns[m.From]
	if m.FromIndex < 0 || m.FromIndex >= len(src) || src[m.FromIndex].ID != m.TaskID {
		return &ValidationError{Move: m, Err: ErrTaskNotFound}
	}

	limit := len(b.columns[m.To])
	if m.From == m.To {
		limit--
	}
	if m.ToIndex < 0 || m.ToIndex > limit {
		return &ValidationError{Move: m, Err: ErrIndexOutOfRange}
	}
	return nil
}
