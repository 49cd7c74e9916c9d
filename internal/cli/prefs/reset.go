package prefs

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
)

// ResetCmd returns the prefs reset subcommand
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <key>",
		Short: "Forget a stored preference so its default applies again",
		Args:  cobra.ExactArgs(1),
		RunE:  runReset,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer closeCLI(cliInstance)

	prefs := cliInstance.App.Preferences
	if err := prefs.Reset(ctx, args[0]); err != nil {
		return formatter.Fail("PREFERENCE_ERROR", err)
	}
	pref, err := prefs.Get(ctx, args[0])
	if err != nil {
		return formatter.Fail("PREFERENCE_ERROR", err)
	}

	switch {
	case formatter.Quiet:
	case formatter.JSON:
		return formatter.Success(pref)
	default:
		formatter.Printf("Preference '%s' reset to '%s'\n", pref.Key, pref.Value)
	}
	return nil
}
