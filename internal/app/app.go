package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/database"
	"github.com/thenoetrevino/taskboard/internal/notify"
	"github.com/thenoetrevino/taskboard/internal/services/kanban"
	"github.com/thenoetrevino/taskboard/internal/taskstore"
)

// ErrNotificationsDisabled is returned when no broker url is configured
var ErrNotificationsDisabled = errors.New("notifications are not configured (set ws_url or TASKBOARD_WS_URL)")

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config      *config.Config
	Preferences *database.Preferences

	client    *taskstore.Client
	engine    *kanban.Engine
	engineErr error
	notifier  notify.Notifier
	db        *sql.DB
	ownsDB    bool
	logger    *slog.Logger
}

// New wires the application from cfg. The preference store is always
// available; the board engine only when the API and project are configured.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg, logger: o.logger, db: o.db}

	if a.db == nil {
		db, err := database.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.ownsDB = true
	}
	a.Preferences = database.NewPreferences(a.db)

	if err := cfg.Validate(); err != nil {
		a.engineErr = err
	} else {
		clientOpts := []taskstore.Option{taskstore.WithLogger(o.logger)}
		if o.httpClient != nil {
			clientOpts = append(clientOpts, taskstore.WithHTTPClient(o.httpClient))
		}
		client, err := taskstore.NewClient(cfg.APIURL, cfg.Tokens(), clientOpts...)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.client = client
		a.engine = kanban.NewEngine(cfg.ProjectID, client, client,
			kanban.WithLogger(o.logger),
			kanban.WithPersistTimeout(cfg.PersistTimeout))
	}

	switch {
	case o.notifier != nil:
		a.notifier = o.notifier
	case cfg.WSURL != "":
		n, err := notify.NewClient(cfg.WSURL, cfg.Tokens(),
			notify.WithTopicTemplate(cfg.TopicTemplate),
			notify.WithUserID(cfg.UserID),
			notify.WithReconnectDelay(cfg.ReconnectDelay),
			notify.WithLogger(o.logger))
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("invalid ws_url: %w", err)
		}
		a.notifier = n
	}

	return a, nil
}

// Engine returns the board engine, or why it is unavailable
func (a *App) Engine() (*kanban.Engine, error) {
	if a.engine == nil {
		return nil, a.engineErr
	}
	return a.engine, nil
}

// TaskClient returns the REST client, nil when the API is not configured
func (a *App) TaskClient() *taskstore.Client {
	return a.client
}

// Notifier returns the notification feed
func (a *App) Notifier() (notify.Notifier, error) {
	if a.notifier == nil {
		return nil, ErrNotificationsDisabled
	}
	return a.notifier, nil
}

// Theme returns the color scheme to render with. A stored light or dark
// theme preference overrides the configured preset.
func (a *App) Theme(ctx context.Context) config.ColorScheme {
	pref, err := a.Preferences.Get(ctx, database.KeyTheme)
	if err != nil {
		a.logger.Warn("failed to read theme preference", "error", err)
		return a.Config.ColorScheme
	}
	if pref.IsDefault || pref.Value == "system" || pref.Value == a.Config.ColorScheme.Preset {
		return a.Config.ColorScheme
	}
	return config.Preset(pref.Value)
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	var errs []error
	if a.engine != nil {
		errs = append(errs, a.engine.Close())
	}
	if a.notifier != nil {
		errs = append(errs, a.notifier.Close())
	}
	if a.ownsDB && a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	return errors.Join(errs...)
}
