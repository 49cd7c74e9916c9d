package cli

import (
	"errors"

	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/database"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/notify"
	"github.com/thenoetrevino/taskboard/internal/taskstore"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: backend rejections, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage or missing configuration.
	ExitUsage = 2

	// ExitNotFound indicates a requested task, column or preference does not exist.
	ExitNotFound = 3

	// ExitDataErr indicates malformed data from the backend or the broker.
	ExitDataErr = 4

	// ExitValidation indicates a move or value rejected before any request was made.
	ExitValidation = 5
)

// CommandError is an error that has already been reported to the user.
// Code is the process exit status.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to its exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}

	var parseErr *notify.ParseError
	var validationErr *board.ValidationError

	switch {
	case errors.Is(err, board.ErrTaskNotFound),
		errors.Is(err, database.ErrUnknownPreference):
		return ExitNotFound
	case errors.As(err, &validationErr),
		errors.Is(err, models.ErrUnknownStatus),
		errors.Is(err, models.ErrUnknownPriority),
		errors.Is(err, database.ErrInvalidValue),
		errors.Is(err, ErrNoNextColumn),
		errors.Is(err, ErrNoPrevColumn):
		return ExitValidation
	case errors.Is(err, config.ErrNoAPIURL),
		errors.Is(err, config.ErrNoProject),
		errors.Is(err, app.ErrNotificationsDisabled),
		errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.As(err, &parseErr),
		errors.Is(err, taskstore.ErrMalformedResponse):
		return ExitDataErr
	default:
		return ExitError
	}
}
