package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/database"
	"github.com/thenoetrevino/taskboard/internal/devserver"
	"github.com/thenoetrevino/taskboard/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew(t *testing.T) {
	ts := httptest.NewServer(devserver.New(devserver.NewStore([]models.Task{
		{ID: "1", ProjectID: "p", Status: models.StatusTodo, Title: "one"},
	})))
	defer ts.Close()

	cfg := config.Default()
	cfg.APIURL = ts.URL
	cfg.ProjectID = "p"
	cfg.WSURL = "ws://127.0.0.1:1/ws"

	a, err := New(context.Background(), cfg, WithDatabase(setupTestDB(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = a.Close() }()

	engine, err := a.Engine()
	if err != nil {
		t.Fatalf("Expected engine, got %v", err)
	}
	b, err := engine.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("Expected 1 task on board, got %d", b.Len())
	}

	if a.TaskClient() == nil {
		t.Error("Expected TaskClient to be initialized")
	}
	if a.Preferences == nil {
		t.Error("Expected Preferences to be initialized")
	}
	if _, err := a.Notifier(); err != nil {
		t.Errorf("Expected notifier, got %v", err)
	}
}

func TestNewWithoutAPI(t *testing.T) {
	cfg := config.Default()

	a, err := New(context.Background(), cfg, WithDatabase(setupTestDB(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = a.Close() }()

	if _, err := a.Engine(); !errors.Is(err, config.ErrNoAPIURL) {
		t.Errorf("Expected ErrNoAPIURL, got %v", err)
	}
	if _, err := a.Notifier(); !errors.Is(err, ErrNotificationsDisabled) {
		t.Errorf("Expected ErrNotificationsDisabled, got %v", err)
	}

	pref, err := a.Preferences.Get(context.Background(), database.KeyTheme)
	if err != nil {
		t.Fatalf("Preferences should work without API: %v", err)
	}
	if pref.Value != "system" {
		t.Errorf("Expected default theme, got %q", pref.Value)
	}
}

func TestNewRejectsBadURLs(t *testing.T) {
	cfg := config.Default()
	cfg.APIURL = "ftp://nope"
	cfg.ProjectID = "p"
	if _, err := New(context.Background(), cfg, WithDatabase(setupTestDB(t))); err == nil {
		t.Error("Expected error for bad api_url")
	}

	cfg = config.Default()
	cfg.WSURL = "http://not-a-broker"
	if _, err := New(context.Background(), cfg, WithDatabase(setupTestDB(t))); err == nil {
		t.Error("Expected error for bad ws_url")
	}
}

func TestThemeFollowsPreference(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	a, err := New(ctx, cfg, WithDatabase(setupTestDB(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = a.Close() }()

	if got := a.Theme(ctx); got != cfg.ColorScheme {
		t.Errorf("Expected configured scheme without a stored preference, got %+v", got)
	}

	if err := a.Preferences.Set(ctx, database.KeyTheme, "light"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := a.Theme(ctx); got.Preset != "light" {
		t.Errorf("Expected light preset, got %q", got.Preset)
	}

	if err := a.Preferences.Set(ctx, database.KeyTheme, "system"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := a.Theme(ctx); got.Preset != cfg.ColorScheme.Preset {
		t.Errorf("Expected system to keep configured preset, got %q", got.Preset)
	}
}
