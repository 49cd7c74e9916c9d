package notifications

import (
	"github.com/spf13/cobra"
)

// NotificationsCmd returns the notifications parent command
func NotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notify"},
		Short:   "Deadline reminders pushed by the backend",
	}

	cmd.AddCommand(WatchCmd())

	return cmd
}
