package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/testutil"
)

func boardWithStray() []models.Task {
	return append(testutil.SampleBoard(), models.Task{
		ID: "9", ProjectID: testutil.TestProject, Status: "archived", Title: "Old",
	})
}

func TestShowJSON(t *testing.T) {
	env := testutil.SetupTestApp(t, boardWithStray())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, ShowCmd(), "--json")
	require.NoError(t, err)

	result := testutil.ParseJSON(t, out)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, testutil.TestProject, result["project"])

	columns := result["columns"].([]interface{})
	require.Len(t, columns, len(models.Statuses))
	todo := columns[models.StatusTodo.Index()].(map[string]interface{})
	assert.Equal(t, "To Do", todo["title"])
	assert.Len(t, todo["tasks"], 2)

	excluded := result["excluded"].([]interface{})
	require.Len(t, excluded, 1)
	assert.Equal(t, "9", excluded[0].(map[string]interface{})["id"])
}

func TestShowQuiet(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, ShowCmd(), "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestShowColumnFilter(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, ShowCmd(), "--column", "In Progress", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	_, _, err = testutil.ExecuteCommand(t, env.Ctx, ShowCmd(), "--column", "icebox")
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

func TestShowHuman(t *testing.T) {
	env := testutil.SetupTestApp(t, boardWithStray())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, ShowCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "To Do (2)")
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "1 task(s) hidden")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.LessOrEqual(t, len([]rune(truncate("a rather long task title", 10))), 10)
}
