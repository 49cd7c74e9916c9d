package notifications

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/notify"
)

// WatchCmd returns the notifications watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print deadline reminders as they arrive",
		Long: `Subscribe to the current user's reminder topic and print every
notification. Reconnects automatically until interrupted.

Examples:
  taskboard notifications watch
  taskboard notifications watch --count 1 --json
`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().Int("count", 0, "Exit after this many notifications (0 = run until interrupted)")
	cli.AddOutputFlags(cmd)

	return cmd
}

type eventLine struct {
	Type         notify.EventType         `json:"type"`
	Notification *models.TaskNotification `json:"notification,omitempty"`
	Error        string                   `json:"error,omitempty"`
	Timestamp    time.Time                `json:"timestamp"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	count, _ := cmd.Flags().GetInt("count")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	notifier, err := cliInstance.App.Notifier()
	if err != nil {
		return formatter.Fail("NOT_CONFIGURED", err)
	}

	events, err := notifier.Listen(ctx)
	if err != nil {
		return formatter.Fail("LISTEN_ERROR", err)
	}

	received := 0
	for ev := range events {
		if err := printEvent(formatter, ev); err != nil {
			return err
		}
		if ev.Type != notify.EventNotification {
			continue
		}
		received++
		if count > 0 && received >= count {
			return nil
		}
	}
	return nil
}

func printEvent(f *cli.OutputFormatter, ev notify.Event) error {
	if f.JSON {
		line := eventLine{Type: ev.Type, Notification: ev.Notification, Timestamp: ev.Timestamp}
		if ev.Err != nil {
			line.Error = ev.Err.Error()
		}
		return f.WriteJSON(line)
	}

	switch ev.Type {
	case notify.EventNotification:
		n := ev.Notification
		if f.Quiet {
			f.Printf("%s\n", n.ID)
			return nil
		}
		f.Printf("%s %s %s\n",
			styles.Priority(n.Priority),
			styles.TitleStyle.Render(n.Title),
			styles.SubtitleStyle.Render(fmt.Sprintf("(%s) due %s", n.ID, n.EndDate.Local().Format("Jan 2 3:04 PM"))))
	case notify.EventConnected:
		if !f.Quiet {
			f.Printf("%s\n", styles.SuccessStyle.Render("connected"))
		}
	case notify.EventDisconnected:
		if f.Quiet {
			return nil
		}
		msg := "disconnected"
		if ev.Err != nil {
			msg = "disconnected: " + notify.ClassifyConnectError(ev.Err).Error()
		}
		f.Printf("%s\n", styles.WarningStyle.Render(msg))
	}
	return nil
}
