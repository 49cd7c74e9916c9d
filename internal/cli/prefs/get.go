package prefs

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
)

// GetCmd returns the prefs get subcommand
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer closeCLI(cliInstance)

	pref, err := cliInstance.App.Preferences.Get(ctx, args[0])
	if err != nil {
		return formatter.FailWithSuggestion("PREFERENCE_ERROR", err, "Run 'taskboard prefs list' to see known keys")
	}

	switch {
	case formatter.Quiet:
		formatter.Printf("%s\n", pref.Value)
	case formatter.JSON:
		return formatter.Success(pref)
	default:
		suffix := ""
		if pref.IsDefault {
			suffix = styles.SubtitleStyle.Render(" (default)")
		}
		formatter.Printf("%s %s%s\n", styles.LabelStyle.Render(pref.Key+":"), styles.ValueStyle.Render(pref.Value), suffix)
	}
	return nil
}
