package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cradle",
		Short: base.Wrap80("Baby feed, sleep, and care tracking on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addKey(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addDelete(topLevel)
	addRestore(topLevel)
	addUndo(topLevel)
	addRedo(topLevel)
	addNap(topLevel)
	addDays(topLevel)
	addWatch(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
