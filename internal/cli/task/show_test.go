package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/testutil"
)

func TestShowJSON(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, ShowCmd(), "3", "--json")
	require.NoError(t, err)

	data := testutil.ParseJSON(t, out)["data"].(map[string]interface{})
	assert.Equal(t, "Ship release", data["title"])
	assert.Equal(t, "In Progress", data["column"])
	assert.Equal(t, float64(0), data["position"])
}

func TestShowHuman(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, ShowCmd(), "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Ship release")
	assert.Contains(t, out, "publish")
}

func TestShowQuiet(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	out, _, err := testutil.ExecuteCommand(t, env.Ctx, ShowCmd(), "2", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestShowNotFound(t *testing.T) {
	env := testutil.SetupTestApp(t, testutil.SampleBoard())

	_, stderr, err := testutil.ExecuteCommand(t, env.Ctx, ShowCmd(), "42")
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	assert.Contains(t, stderr, "Suggestion:")
}

func TestGlamourStyle(t *testing.T) {
	assert.Equal(t, "light", glamourStyle("light"))
	assert.Equal(t, "notty", glamourStyle("monochrome"))
	assert.Equal(t, "dark", glamourStyle("dark"))
	assert.Equal(t, "dark", glamourStyle(""))
}
