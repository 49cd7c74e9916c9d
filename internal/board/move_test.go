package board

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/models"
)

func TestApply_CrossColumnScenario(t *testing.T) {
	b := Build([]models.Task{
		task("T1", models.StatusTodo, 0),
		task("T2", models.StatusTodo, 1),
	})

	next, persist, err := Apply(b, Move{
		TaskID: "T1", From: models.StatusTodo, To: models.StatusDone, FromIndex: 0, ToIndex: 0,
	})
	require.NoError(t, err)

	todo := next.Column(models.StatusTodo)
	done := next.Column(models.StatusDone)
	require.Len(t, todo, 1)
	require.Len(t, done, 1)
	assert.Equal(t, models.TaskID("T2"), todo[0].ID)
	assert.Equal(t, 0, todo[0].Order)
	assert.Equal(t, models.TaskID("T1"), done[0].ID)
	assert.Equal(t, 0, done[0].Order)
	assert.Equal(t, models.StatusDone, done[0].Status)

	require.NotNil(t, persist)
	assert.Equal(t, Persist{TaskID: "T1", Status: models.StatusDone, Order: 0}, *persist)
}

func TestApply_SameColumnReorderScenario(t *testing.T) {
	b := Build([]models.Task{
		task("T1", models.StatusTodo, 0),
		task("T2", models.StatusTodo, 1),
		task("T3", models.StatusTodo, 2),
	})

	next, persist, err := Apply(b, Move{
		TaskID: "T3", From: models.StatusTodo, To: models.StatusTodo, FromIndex: 2, ToIndex: 0,
	})
	require.NoError(t, err)

	col := next.Column(models.StatusTodo)
	assert.Equal(t, []models.TaskID{"T3", "T1", "T2"}, ids(col))
	for i, tk := range col {
		assert.Equal(t, i, tk.Order)
	}
	require.NotNil(t, persist)
	assert.Equal(t, 0, persist.Order)
	assert.Equal(t, models.StatusTodo, persist.Status)
}

func TestApply_SameColumnMoveDown(t *testing.T) {
	b := Build([]models.Task{
		task("T1", models.StatusTodo, 0),
		task("T2", models.StatusTodo, 1),
		task("T3", models.StatusTodo, 2),
	})

	next, persist, err := Apply(b, Move{
		TaskID: "T1", From: models.StatusTodo, To: models.StatusTodo, FromIndex: 0, ToIndex: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []models.TaskID{"T2", "T3", "T1"}, ids(next.Column(models.StatusTodo)))
	assert.Equal(t, 2, persist.Order)
}

func TestApply_NoOp(t *testing.T) {
	b := Build([]models.Task{task("T1", models.StatusTodo, 0), task("T2", models.StatusTodo, 1)})

	next, persist, err := Apply(b, Move{
		TaskID: "T2", From: models.StatusTodo, To: models.StatusTodo, FromIndex: 1, ToIndex: 1,
	})
	require.NoError(t, err)
	assert.Nil(t, persist, "no-op must not produce a backend call")
	assert.True(t, next.Equal(b))
}

func TestApply_SingleTaskIntoEmptyColumn(t *testing.T) {
	b := Build([]models.Task{task("only", models.StatusReview, 0)})

	next, persist, err := Apply(b, Move{
		TaskID: "only", From: models.StatusReview, To: models.StatusBacklog, FromIndex: 0, ToIndex: 0,
	})
	require.NoError(t, err)
	assert.Empty(t, next.Column(models.StatusReview))
	backlog := next.Column(models.StatusBacklog)
	require.Len(t, backlog, 1)
	assert.Equal(t, 0, backlog[0].Order)
	assert.Equal(t, models.StatusBacklog, backlog[0].Status)
	assert.Equal(t, 0, persist.Order)
}

func TestApply_AppendToEndOfColumn(t *testing.T) {
	b := Build([]models.Task{
		task("a", models.StatusTodo, 0),
		task("x", models.StatusDone, 0),
		task("y", models.StatusDone, 1),
	})

	next, persist, err := Apply(b, Move{
		TaskID: "a", From: models.StatusTodo, To: models.StatusDone, FromIndex: 0, ToIndex: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []models.TaskID{"x", "y", "a"}, ids(next.Column(models.StatusDone)))
	assert.Equal(t, 2, persist.Order)
}

func TestApply_DoesNotMutateInputBoard(t *testing.T) {
	b := Build([]models.Task{
		task("T1", models.StatusTodo, 0),
		task("T2", models.StatusTodo, 1),
		task("D1", models.StatusDone, 0),
	})
	snapshot := b.Clone()

	_, _, err := Apply(b, Move{TaskID: "T1", From: models.StatusTodo, To: models.StatusDone, FromIndex: 0, ToIndex: 1})
	require.NoError(t, err)
	_, _, err = Apply(b, Move{TaskID: "T2", From: models.StatusTodo, To: models.StatusTodo, FromIndex: 1, ToIndex: 0})
	require.NoError(t, err)

	assert.True(t, b.Equal(snapshot), "original board must stay usable for rollback")
}

func TestApply_PreservesPayload(t *testing.T) {
	b := Build([]models.Task{{
		ID: "p", Status: models.StatusTodo, Title: "Ship", Assignee: "kim", Priority: models.PriorityLow,
	}})

	next, _, err := Apply(b, Move{TaskID: "p", From: models.StatusTodo, To: models.StatusInProgress})
	require.NoError(t, err)
	got, ok := next.Task("p")
	require.True(t, ok)
	assert.Equal(t, "Ship", got.Title)
	assert.Equal(t, "kim", got.Assignee)
	assert.Equal(t, models.PriorityLow, got.Priority)
	assert.Equal(t, models.StatusInProgress, got.Status)
}

func TestApply_ValidationErrors(t *testing.T) {
	b := Build([]models.Task{
		task("T1", models.StatusTodo, 0),
		task("T2", models.StatusTodo, 1),
		task("D1", models.StatusDone, 0),
	})

	tests := []struct {
		name string
		move Move
		want error
	}{
		{"unknown target column", Move{TaskID: "T1", From: models.StatusTodo, To: "archived"}, ErrInvalidColumn},
		{"unknown source column", Move{TaskID: "T1", From: "nowhere", To: models.StatusTodo}, ErrInvalidColumn},
		{"task not at index", Move{TaskID: "T1", From: models.StatusTodo, To: models.StatusDone, FromIndex: 1}, ErrTaskNotFound},
		{"task in other column", Move{TaskID: "D1", From: models.StatusTodo, To: models.StatusDone}, ErrTaskNotFound},
		{"source index past end", Move{TaskID: "T1", From: models.StatusTodo, To: models.StatusDone, FromIndex: 5}, ErrTaskNotFound},
		{"negative source index", Move{TaskID: "T1", From: models.StatusTodo, To: models.StatusDone, FromIndex: -1}, ErrTaskNotFound},
		{"target past end", Move{TaskID: "T1", From: models.StatusTodo, To: models.StatusDone, ToIndex: 2}, ErrIndexOutOfRange},
		{"same column past end", Move{TaskID: "T1", From: models.StatusTodo, To: models.StatusTodo, ToIndex: 2}, ErrIndexOutOfRange},
		{"negative target", Move{TaskID: "T1", From: models.StatusTodo, To: models.StatusDone, ToIndex: -1}, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, persist, err := Apply(b, tt.move)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var ve *ValidationError
			assert.True(t, errors.As(err, &ve))
			assert.Nil(t, persist)
			assert.True(t, next.Equal(b))
		})
	}
}

func TestNewMove(t *testing.T) {
	b := Build([]models.Task{task("T1", models.StatusTodo, 0), task("T2", models.StatusTodo, 1)})

	m, err := NewMove(b, "T2", models.StatusDone, 0)
	require.NoError(t, err)
	assert.Equal(t, Move{TaskID: "T2", From: models.StatusTodo, To: models.StatusDone, FromIndex: 1, ToIndex: 0}, m)

	_, err = NewMove(b, "missing", models.StatusDone, 0)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

// Random cross-column moves keep both columns ranked and shift lengths by one.
func TestApply_CrossColumnProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 99))
	for round := 0; round < 300; round++ {
		b := Build(randomTasks(r, 1+r.IntN(30)))
		if b.Len() == 0 {
			continue
		}
		all := b.Tasks()
		pick := all[r.IntN(len(all))]
		from, fromIndex, _ := b.Find(pick.ID)

		to := models.Statuses[r.IntN(len(models.Statuses))]
		if to == from {
			continue
		}
		toIndex := r.IntN(len(b.Column(to)) + 1)

		next, persist, err := Apply(b, Move{TaskID: pick.ID, From: from, To: to, FromIndex: fromIndex, ToIndex: toIndex})
		require.NoError(t, err)
		require.NotNil(t, persist)

		assert.Len(t, next.Column(from), len(b.Column(from))-1)
		assert.Len(t, next.Column(to), len(b.Column(to))+1)
		moved, _ := next.Task(pick.ID)
		assert.Equal(t, to, moved.Status)
		assert.Equal(t, toIndex, moved.Order)
		assert.Equal(t, b.Len(), next.Len())
		assertRanked(t, next)
	}
}
