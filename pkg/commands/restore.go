package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/commands/options"
	"tableflip.dev/cradle/pkg/runner/restore"
)

func addRestore(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Bring back a soft-deleted event",
		Long: `Restore a soft-deleted event by id. Restoring an id whose grace window
already elapsed does nothing.`,
		Example: `
cradle restore 171dff69f8b99dca
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := restore.Restore{
				ID:      args[0],
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
