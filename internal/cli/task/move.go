package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/services/kanban"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <target>",
		Short: "Move a task to another column or position",
		Long: `Move a task by direction or column name, wait for the backend to
accept it, and report where the task ended up after the board reloads.

Examples:
  # Move to next column
  taskboard task move 42 next

  # Move to previous column
  taskboard task move 42 prev

  # Move to specific column by name (case-insensitive)
  taskboard task move 42 "In Progress"
  taskboard task move 42 done --index 0

  # JSON output for agents
  taskboard task move 42 next --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cmd.Flags().Int("index", -1, "Position in the target column (default: end of column)")
	cmd.Flags().Duration("timeout", 30*time.Second, "How long to wait for the backend")
	cli.AddOutputFlags(cmd)

	return cmd
}

type moveResult struct {
	TaskID     models.TaskID `json:"task_id"`
	FromColumn models.Status `json:"from_column"`
	ToColumn   models.Status `json:"to_column"`
	Position   int           `json:"position"`
	Moved      bool          `json:"moved"`
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	taskID := models.TaskID(args[0])
	target := args[1]
	index, _ := cmd.Flags().GetInt("index")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	engine, err := cliInstance.Engine()
	if err != nil {
		return formatter.Fail("NOT_CONFIGURED", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	b, err := engine.Refresh(ctx)
	if err != nil {
		return formatter.Fail("BOARD_FETCH_ERROR", err)
	}

	from, _, ok := b.Find(taskID)
	if !ok {
		return formatter.FailWithSuggestion("TASK_NOT_FOUND",
			fmt.Errorf("task %q is not on the board: %w", taskID, board.ErrTaskNotFound),
			"Run 'taskboard board show' to list task ids")
	}

	to, err := cli.ResolveTarget(from, target)
	if err != nil {
		return formatter.FailWithSuggestion("INVALID_TARGET", err,
			fmt.Sprintf("Task is currently in: %s\nAvailable columns: %s",
				from.Title(), cli.FormatAvailableColumns()))
	}

	toIndex := cli.DropIndex(from, to, len(b.Column(to)), index)
	ticket, err := engine.MoveTo(ctx, taskID, to, toIndex)
	if err != nil {
		return formatter.Fail("INVALID_MOVE", err)
	}

	result := moveResult{TaskID: taskID, FromColumn: from, ToColumn: to, Position: toIndex}
	if !ticket.NoOp {
		res, err := awaitResult(ctx, engine, ticket.Seq)
		if err != nil {
			return formatter.Fail("MOVE_ERROR", err)
		}
		if res.Err != nil {
			return formatter.Fail("MOVE_REJECTED", res.Err)
		}
		result.Moved = true

		// the backend may have renumbered the column
		b, err = engine.Refresh(ctx)
		if err != nil {
			return formatter.Fail("BOARD_FETCH_ERROR", err)
		}
		if st, pos, ok := b.Find(taskID); ok {
			result.ToColumn, result.Position = st, pos
		}
	}

	if formatter.Quiet {
		formatter.Printf("%s\n", taskID)
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]any{
			"success": true,
			"move":    result,
		})
	}

	if !result.Moved {
		formatter.Printf("Task %s is already in '%s' at position %d\n", taskID, result.ToColumn.Title(), result.Position)
	} else {
		formatter.Printf("Task %s moved to '%s' at position %d\n", taskID, result.ToColumn.Title(), result.Position)
	}
	return nil
}

// awaitResult waits for the persistence outcome of move seq
func awaitResult(ctx context.Context, engine *kanban.Engine, seq uint64) (kanban.PersistResult, error) {
	for {
		select {
		case res, ok := <-engine.Results():
			if !ok {
				return kanban.PersistResult{}, kanban.ErrEngineClosed
			}
			if res.Seq == seq {
				return res, nil
			}
		case <-ctx.Done():
			return kanban.PersistResult{}, fmt.Errorf("waiting for the backend: %w", ctx.Err())
		}
	}
}
