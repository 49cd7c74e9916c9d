package app

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/taskboard/internal/notify"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	db         *sql.DB
	notifier   notify.Notifier
	httpClient *http.Client
	logger     *slog.Logger
}

// WithDatabase uses an already open database. The App does not close it.
func WithDatabase(db *sql.DB) Option {
	return func(cfg *appConfig) {
		cfg.db = db
	}
}

// WithNotifier replaces the notification client built from config
func WithNotifier(n notify.Notifier) Option {
	return func(cfg *appConfig) {
		cfg.notifier = n
	}
}

// WithHTTPClient sets the http.Client used for the task API
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *appConfig) {
		cfg.httpClient = hc
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}
