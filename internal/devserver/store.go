package devserver

import (
	"errors"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/models"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidOrder  = errors.New("invalid order: must be >= 0")
)

// Store is an in-memory task table partitioned by project.
// Updates renumber both affected columns, the way the real backend does.
type Store struct {
	mu    sync.Mutex
	tasks map[string][]models.Task
	owner map[models.TaskID]string
}

// NewStore creates a store seeded with tasks
func NewStore(seed []models.Task) *Store {
	s := &Store{
		tasks: make(map[string][]models.Task),
		owner: make(map[models.TaskID]string),
	}
	for _, t := range seed {
		s.tasks[t.ProjectID] = append(s.tasks[t.ProjectID], t)
		s.owner[t.ID] = t.ProjectID
	}
	return s
}

// List returns a copy of a project's tasks
func (s *Store) List(projectID string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.tasks[projectID])
	if out == nil {
		out = []models.Task{}
	}
	return out
}

// Update moves a task to the given status and order. An order past the end
// of the column appends.
func (s *Store) Update(id models.TaskID, patch models.TaskPatch) (models.Task, error) {
	if !patch.Status.Valid() {
		return models.Task{}, ErrInvalidStatus
	}
	if patch.Order < 0 {
		return models.Task{}, ErrInvalidOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projectID, ok := s.owner[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}

	list := slices.Clone(s.tasks[projectID])
	for i := range list {
		// tasks with a stale status are re-homed at the bottom of the target first
		if list[i].ID == id && !list[i].Status.Valid() {
			list[i].Status = patch.Status
			list[i].Order = math.MaxInt
		}
	}

	b := board.Build(list)
	from, _, found := b.Find(id)
	if !found {
		return models.Task{}, ErrTaskNotFound
	}

	limit := len(b.Column(patch.Status))
	if from == patch.Status {
		limit--
	}
	move, err := board.NewMove(b, id, patch.Status, min(patch.Order, limit))
	if err != nil {
		return models.Task{}, err
	}

	next, _, err := board.Apply(b, move)
	if err != nil {
		return models.Task{}, err
	}

	s.tasks[projectID] = append(next.Tasks(), next.Excluded...)
	updated, _ := next.Task(id)
	return updated, nil
}

// Due returns open tasks whose due date falls in (now, now+window]
func (s *Store) Due(now time.Time, window time.Duration) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []models.Task
	for _, list := range s.tasks {
		for _, t := range list {
			if t.DueDate == nil || t.Status == models.StatusDone {
				continue
			}
			if t.DueDate.After(now) && !t.DueDate.After(now.Add(window)) {
				due = append(due, t)
			}
		}
	}
	return due
}
