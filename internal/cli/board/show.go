package board

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	boardstate "github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show every column of the configured project",
		Long: `Fetch the project's tasks and print them by column.

Examples:
  taskboard board show
  taskboard board show --column in_progress
  taskboard board show --json
  taskboard board show --quiet   # task ids, one per line
`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	cmd.Flags().String("column", "", "Only show this column")
	cli.AddOutputFlags(cmd)

	return cmd
}

type columnView struct {
	Status models.Status `json:"status"`
	Title  string        `json:"title"`
	Tasks  []models.Task `json:"tasks"`
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	only, _ := cmd.Flags().GetString("column")

	var filter models.Status
	if only != "" {
		st, err := models.ParseStatus(only)
		if err != nil {
			return formatter.FailWithSuggestion("INVALID_COLUMN",
				fmt.Errorf("column %q: %w", only, err),
				"Available columns: "+cli.FormatAvailableColumns())
		}
		filter = st
	}

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

	columns := selectColumns(b, filter)

	if formatter.Quiet {
		for _, col := range columns {
			for _, t := range col.Tasks {
				formatter.Printf("%s\n", t.ID)
			}
		}
		return nil
	}

	if formatter.JSON {
		excluded := b.Excluded
		if excluded == nil {
			excluded = []models.Task{}
		}
		return formatter.WriteJSON(map[string]any{
			"success":  true,
			"project":  engine.ProjectID(),
			"columns":  columns,
			"excluded": excluded,
		})
	}

	formatter.Printf("%s\n", renderColumns(columns))
	if n := len(b.Excluded); n > 0 {
		formatter.Printf("%s\n", styles.WarningStyle.Render(
			fmt.Sprintf("%d task(s) hidden: status matches no column", n)))
	}
	return nil
}

func selectColumns(b boardstate.Board, filter models.Status) []columnView {
	var views []columnView
	for _, col := range b.Columns() {
		if filter != "" && col.Status != filter {
			continue
		}
		views = append(views, columnView{Status: col.Status, Title: col.Status.Title(), Tasks: col.Tasks})
	}
	return views
}

func renderColumns(columns []columnView) string {
	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		var body strings.Builder
		body.WriteString(styles.ColumnTitleStyle.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks))))
		body.WriteString("\n")
		if len(col.Tasks) == 0 {
			body.WriteString(styles.SubtitleStyle.Render("empty"))
		}
		for i, t := range col.Tasks {
			if i > 0 {
				body.WriteString("\n")
			}
			fmt.Fprintf(&body, "%s %s\n  %s",
				styles.SubtitleStyle.Render(string(t.ID)),
				styles.Priority(t.Priority),
				styles.ValueStyle.Render(truncate(t.Title, styles.ColumnWidth-4)))
		}
		rendered = append(rendered, styles.ColumnStyle.Render(body.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
