package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/logging"
	"github.com/thenoetrevino/taskboard/internal/services/kanban"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	// owned is false when the App was injected and belongs to the caller
	owned bool
}

// NewCLI loads .env, the config file and TASKBOARD_* overrides, starts
// file logging and wires the application container
func NewCLI(ctx context.Context) (*CLI, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logging.Init(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	application, err := app.New(ctx, cfg, app.WithLogger(logging.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	c := &CLI{App: application, Config: cfg, owned: true}
	styles.Init(application.Theme(ctx))
	return c, nil
}

// Engine returns the board engine or the configuration error that
// prevents building one
func (c *CLI) Engine() (*kanban.Engine, error) {
	return c.App.Engine()
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
