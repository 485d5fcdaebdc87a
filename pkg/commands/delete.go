package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/commands/options"
	"tableflip.dev/cradle/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Soft-delete an event",
		Aliases: []string{"del", "rm"},
		Long: `Soft-delete an event by id. The event is removed from its day but stays
recoverable with "cradle restore" until the grace window elapses.`,
		Example: `
cradle delete 171dff69f8b99dca
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := remove.Remove{
				ID:      args[0],
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
