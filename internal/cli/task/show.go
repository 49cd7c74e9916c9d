package task

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long:  "Display a task's column, position, priority, due date, assignee and rendered description.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type taskDetail struct {
	models.Task
	Column   string `json:"column"`
	Position int    `json:"position"`
}

func (d taskDetail) GetID() string {
	return string(d.ID)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	taskID := models.TaskID(args[0])

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

	b, err := engine.Refresh(ctx)
	if err != nil {
		return formatter.Fail("BOARD_FETCH_ERROR", err)
	}

	status, position, ok := b.Find(taskID)
	if !ok {
		return formatter.FailWithSuggestion("TASK_NOT_FOUND",
			fmt.Errorf("task %q is not on the board: %w", taskID, board.ErrTaskNotFound),
			"Run 'taskboard board show' to list task ids")
	}
	task, _ := b.Task(taskID)
	detail := taskDetail{Task: task, Column: status.Title(), Position: position}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(detail)
	}

	formatter.Printf("%s\n", renderDetail(detail, glamourStyle(cliInstance.App.Theme(ctx).Preset)))
	return nil
}

func renderDetail(d taskDetail, markdownStyle string) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("%s: %s", d.ID, d.Title)))
	content.WriteString("\n\n")

	fmt.Fprintf(&content, "%s %s  %s %s\n",
		styles.LabelStyle.Render("Column:"),
		styles.ValueStyle.Render(fmt.Sprintf("%s (#%d)", d.Column, d.Position+1)),
		styles.LabelStyle.Render("Priority:"),
		styles.Priority(d.Priority),
	)

	if d.DueDate != nil {
		fmt.Fprintf(&content, "%s %s\n",
			styles.LabelStyle.Render("Due:"),
			styles.SubtitleStyle.Render(d.DueDate.Local().Format("Jan 2, 2006 3:04 PM")),
		)
	}
	if d.Assignee != "" {
		fmt.Fprintf(&content, "%s %s\n",
			styles.LabelStyle.Render("Assignee:"),
			styles.ValueStyle.Render(d.Assignee),
		)
	}

	if d.Description != "" {
		content.WriteString(styles.SectionStyle.Render("Description"))
		content.WriteString("\n")
		content.WriteString(renderMarkdown(d.Description, markdownStyle))
	}

	return styles.CardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// renderMarkdown renders a description, falling back to the raw text
func renderMarkdown(md, style string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(styles.CardWidth-8),
	)
	if err != nil {
		slog.Warn("failed to create markdown renderer", "error", err)
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		slog.Warn("failed to render description", "error", err)
		return md
	}
	return out
}

func glamourStyle(preset string) string {
	switch preset {
	case "light":
		return "light"
	case "monochrome":
		return "notty"
	default:
		return "dark"
	}
}
