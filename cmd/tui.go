package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close app", "error", err)
		}
	}()

	engine, err := c.Engine()
	if err != nil {
		return err
	}

	notifier, err := c.App.Notifier()
	switch {
	case errors.Is(err, app.ErrNotificationsDisabled):
		slog.Info("deadline reminders disabled", "reason", err)
	case err != nil:
		return err
	}

	if err := engine.StartPolling(ctx, c.Config.PollSchedule); err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	model := tui.New(ctx, engine, notifier, c.Config.KeyMappings, c.App.Theme(ctx))
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running board: %w", err)
	}

	snap := engine.Metrics().Snapshot()
	slog.Info("board session finished",
		"moves", snap.MovesApplied,
		"persist_failed", snap.PersistFailed,
		"rollbacks", snap.Rollbacks,
		"stale_results", snap.StaleResults,
		"in_flight", snap.InFlight(),
		"uptime_seconds", snap.UptimeSeconds)
	return nil
}
