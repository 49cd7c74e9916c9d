package prefs

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
)

// SetCmd returns the prefs set subcommand
func SetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference",
		Long: `Store a preference.

Keys:
  theme   light, dark or system
  locale  language tag such as en or pt-BR
`,
		Args: cobra.ExactArgs(2),
		RunE: runSet,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	key, value := args[0], args[1]

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer closeCLI(cliInstance)

	prefs := cliInstance.App.Preferences
	if err := prefs.Set(ctx, key, value); err != nil {
		return formatter.Fail("PREFERENCE_ERROR", err)
	}

	pref, err := prefs.Get(ctx, key)
	if err != nil {
		return formatter.Fail("PREFERENCE_ERROR", err)
	}

	switch {
	case formatter.Quiet:
	case formatter.JSON:
		return formatter.Success(pref)
	default:
		formatter.Printf("Preference '%s' set to '%s'\n", pref.Key, pref.Value)
	}
	return nil
}
