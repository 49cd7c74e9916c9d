package task

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/testutil"
)

func findTask(tasks []models.Task, id models.TaskID) (models.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func TestMoveNext(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, MoveCmd(), "1", "next", "--json")
	require.NoError(t, err)

	result := testutil.ParseJSON(t, out)
	assert.Equal(t, true, result["success"])
	move := result["move"].(map[string]interface{})
	assert.Equal(t, "todo", move["from_column"])
	assert.Equal(t, "in_progress", move["to_column"])
	assert.Equal(t, float64(1), move["position"])
	assert.Equal(t, true, move["moved"])

	task, ok := findTask(env.Store.List(testutil.TestProject), "1")
	require.True(t, ok)
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, 1, task.Order)
}

func TestMoveByColumnNameAndIndex(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, MoveCmd(), "2", "In Progress", "--index", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Task 2 moved to 'In Progress' at position 0")

	tasks := env.Store.List(testutil.TestProject)
	moved, _ := findTask(tasks, "2")
	shifted, _ := findTask(tasks, "3")
	assert.Equal(t, 0, moved.Order)
	assert.Equal(t, 1, shifted.Order)
}

func TestMoveInPlace(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, MoveCmd(), "2", "todo")
	require.NoError(t, err)
	assert.Contains(t, out, "already in 'To Do' at position 1")
}

func TestMoveQuiet(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, MoveCmd(), "3", "prev", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestMoveErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"unknown task", []string{"99", "next"}, cli.ExitNotFound, "TASK_NOT_FOUND"},
		{"unknown column", []string{"1", "sideways"}, cli.ExitValidation, "INVALID_TARGET"},
		{"index out of range", []string{"1", "done", "--index", "5"}, cli.ExitValidation, "INVALID_MOVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.SetupTestApp(t, testutil.SampleBoard())

			out, _, err := testutil.ExecuteCommand(t, env.Ctx, MoveCmd(), append(tt.args, "--json")...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err))

			result := testutil.ParseJSON(t, out)
			assert.Equal(t, false, result["success"])
			assert.Equal(t, tt.wantErr, result["error"].(map[string]interface{})["code"])
		})
	}
}

func TestMoveRejectedByBackend(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())
	env.Server.FailNext(1, http.StatusConflict, "task is locked")

	_, stderr, err := testutil.ExecuteCommand(t, env.Ctx, MoveCmd(), "1", "done")
	require.Error(t, err)
	assert.Contains(t, stderr, "task is locked")

	task, _ := findTask(env.Store.List(testutil.TestProject), "1")
	assert.Equal(t, models.StatusTodo, task.Status, "backend state must be untouched")
}
