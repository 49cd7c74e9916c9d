package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli/board"
	"github.com/thenoetrevino/taskboard/internal/cli/notifications"
	"github.com/thenoetrevino/taskboard/internal/cli/prefs"
	"github.com/thenoetrevino/taskboard/internal/cli/task"
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Taskboard - a terminal kanban client",
	Long: `Taskboard is a terminal client for a project's kanban board.
Tasks are moved optimistically and synced with the backend; deadline
reminders arrive over a STOMP subscription.

Run without a subcommand to open the interactive board.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(notifications.NotificationsCmd())
	rootCmd.AddCommand(prefs.PrefsCmd())
	rootCmd.AddCommand(tuiCmd())
}

// Execute runs the root command. Errors come back unprinted; map them with
// cli.ExitCode.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
