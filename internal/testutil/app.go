package testutil

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/database"
	"github.com/thenoetrevino/taskboard/internal/devserver"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// TestProject is the project id SetupTestApp configures
const TestProject = "p1"

// SetupTestDB opens an in-memory preference database
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestEnv is a wired App talking to an in-process dev server
type TestEnv struct {
	App    *app.App
	Server *devserver.Server
	Store  *devserver.Store
	// Ctx carries App for commands run with it
	Ctx context.Context
}

// SetupTestApp serves tasks from a dev server and wires an App against it.
// Everything is torn down by t.Cleanup.
func SetupTestApp(t *testing.T, tasks []models.Task, opts ...app.Option) *TestEnv {
	t.Helper()

	store := devserver.NewStore(tasks)
	srv := devserver.New(store)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	cfg := config.Default()
	cfg.APIURL = ts.URL
	cfg.ProjectID = TestProject

	opts = append([]app.Option{app.WithDatabase(SetupTestDB(t))}, opts...)
	a, err := app.New(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	return &TestEnv{
		App:    a,
		Server: srv,
		Store:  store,
		Ctx:    cli.WithApp(context.Background(), a),
	}
}

// SampleBoard is a small board in TestProject
func SampleBoard() []models.Task {
	return []models.Task{
		{ID: "1", ProjectID: TestProject, Status: models.StatusTodo, Order: 0, Title: "Write docs", Priority: models.PriorityHigh},
		{ID: "2", ProjectID: TestProject, Status: models.StatusTodo, Order: 1, Title: "Fix login"},
		{ID: "3", ProjectID: TestProject, Status: models.StatusInProgress, Order: 0, Title: "Ship release", Description: "Tag and **publish**"},
	}
}
