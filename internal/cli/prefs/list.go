package prefs

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
)

// ListCmd returns the prefs list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every preference with its effective value",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer closeCLI(cliInstance)

	prefs, err := cliInstance.App.Preferences.List(ctx)
	if err != nil {
		return formatter.Fail("PREFERENCE_ERROR", err)
	}

	if formatter.JSON {
		return formatter.Success(prefs)
	}

	for _, p := range prefs {
		if formatter.Quiet {
			formatter.Printf("%s=%s\n", p.Key, p.Value)
			continue
		}
		source := "set"
		if p.IsDefault {
			source = "default"
		} else if p.UpdatedAt != nil {
			source = "set " + p.UpdatedAt.Local().Format("Jan 2, 2006 3:04 PM")
		}
		formatter.Printf("%s %s %s\n",
			styles.LabelStyle.Render(fmt.Sprintf("%-8s", p.Key)),
			styles.ValueStyle.Render(p.Value),
			styles.SubtitleStyle.Render("("+source+")"))
	}
	return nil
}
