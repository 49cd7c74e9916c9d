package board

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func task(id string, status models.Status, order int) models.Task {
	return models.Task{ID: models.TaskID(id), Status: status, Order: order, Title: "task " + id}
}

func ids(tasks []models.Task) []models.TaskID {
	out := make([]models.TaskID, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertRanked(t *testing.T, b Board) {
	t.Helper()
	for _, col := range b.Columns() {
		for i, tk := range col.Tasks {
			assert.Equal(t, i, tk.Order, "column %s position %d", col.Status, i)
			assert.Equal(t, col.Status, tk.Status, "task %s sits in the wrong column", tk.ID)
		}
	}
}

func randomTasks(r *rand.Rand, n int) []models.Task {
	statuses := append(slices.Clone(models.Statuses), "archived", "")
	tasks := make([]models.Task, n)
	for i := range tasks {
		tasks[i] = models.Task{
			ID:     models.TaskID(string(rune('a'+i%26)) + string(rune('0'+i/26))),
			Status: statuses[r.IntN(len(statuses))],
			Order:  r.IntN(n + 3),
		}
	}
	return tasks
}

// ============================================================================
// BUILD
// ============================================================================

func TestBuild_PartitionsAndSorts(t *testing.T) {
	b := Build([]models.Task{
		task("t3", models.StatusTodo, 2),
		task("t1", models.StatusTodo, 0),
		task("d1", models.StatusDone, 0),
		task("t2", models.StatusTodo, 1),
	})

	assert.Equal(t, []models.TaskID{"t1", "t2", "t3"}, ids(b.Column(models.StatusTodo)))
	assert.Equal(t, []models.TaskID{"d1"}, ids(b.Column(models.StatusDone)))
	assert.Empty(t, b.Column(models.StatusBacklog))
	assert.Len(t, b.Columns(), len(models.Statuses))
	assert.Equal(t, 4, b.Len())
}

func TestBuild_RenumbersGapsAndTies(t *testing.T) {
	b := Build([]models.Task{
		task("a", models.StatusReview, 7),
		task("b", models.StatusReview, 3),
		task("c", models.StatusReview, 3),
	})

	col := b.Column(models.StatusReview)
	assert.Equal(t, []models.TaskID{"b", "c", "a"}, ids(col), "ties keep input order")
	assertRanked(t, b)
}

func TestBuild_ExcludesUnknownStatus(t *testing.T) {
	b := Build([]models.Task{
		task("ok", models.StatusTodo, 0),
		task("weird", "archived", 0),
	})

	assert.Equal(t, 1, b.Len())
	require.Len(t, b.Excluded, 1)
	assert.Equal(t, models.TaskID("weird"), b.Excluded[0].ID)
	_, _, found := b.Find("weird")
	assert.False(t, found, "excluded tasks must not be placed in any column")
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	input := []models.Task{task("x", models.StatusTodo, 5), task("y", models.StatusTodo, 1)}
	_ = Build(input)
	assert.Equal(t, 5, input[0].Order)
	assert.Equal(t, models.TaskID("x"), input[0].ID)
}

func TestBuild_PreservesPayload(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := models.Task{
		ID: "p", Status: models.StatusBacklog, Order: 4, Title: "Write report",
		Description: "## notes", Priority: models.PriorityHigh, DueDate: &due, Assignee: "sam",
	}

	got, ok := Build([]models.Task{in}).Task("p")
	require.True(t, ok)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, in.Priority, got.Priority)
	assert.Equal(t, in.Assignee, got.Assignee)
	assert.True(t, due.Equal(*got.DueDate))
}

// For all task lists the columns hold a permutation of the recognized input
// with contiguous ranks.
func TestBuild_PermutationProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for round := 0; round < 200; round++ {
		input := randomTasks(r, r.IntN(40))
		b := Build(input)

		recognized := []models.TaskID{}
		for _, tk := range input {
			if tk.Status.Valid() {
				recognized = append(recognized, tk.ID)
			}
		}

		got := ids(b.Tasks())
		slices.Sort(got)
		slices.Sort(recognized)
		require.Equal(t, recognized, got, "round %d", round)
		assert.Equal(t, len(input)-len(recognized), len(b.Excluded))
		assertRanked(t, b)

		for _, col := range b.Columns() {
			for i := 1; i < len(col.Tasks); i++ {
				prev, _ := findInput(input, col.Tasks[i-1].ID)
				cur, _ := findInput(input, col.Tasks[i].ID)
				require.LessOrEqual(t, prev.Order, cur.Order, "column %s not sorted", col.Status)
			}
		}
	}
}

func findInput(tasks []models.Task, id models.TaskID) (models.Task, bool) {
	for _, tk := range tasks {
		if tk.ID == id {
			return tk, true
		}
	}
	return models.Task{}, false
}

// ============================================================================
// ACCESSORS
// ============================================================================

func TestBoard_ColumnReturnsCopy(t *testing.T) {
	b := Build([]models.Task{task("a", models.StatusTodo, 0)})
	col := b.Column(models.StatusTodo)
	col[0].Title = "changed"

	got, _ := b.Task("a")
	assert.Equal(t, "task a", got.Title)
}

func TestBoard_CloneAndEqual(t *testing.T) {
	due := time.Now()
	b := Build([]models.Task{
		task("a", models.StatusTodo, 0),
		{ID: "b", Status: models.StatusDone, DueDate: &due},
	})
	c := b.Clone()
	assert.True(t, b.Equal(c))

	other := due.Add(0)
	c2 := Build([]models.Task{
		task("a", models.StatusTodo, 0),
		{ID: "b", Status: models.StatusDone, DueDate: &other},
	})
	assert.True(t, b.Equal(c2), "due dates compare by instant, not pointer")

	moved, _, err := Apply(b, Move{TaskID: "a", From: models.StatusTodo, To: models.StatusReview})
	require.NoError(t, err)
	assert.False(t, b.Equal(moved))
}

func TestBoard_ZeroValue(t *testing.T) {
	var b Board
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Tasks())
	_, _, ok := b.Find("nope")
	assert.False(t, ok)
	assert.True(t, b.Equal(Build(nil)))
}
