package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/commands/options"
	"tableflip.dev/cradle/pkg/runner/rewind"
)

func addRedo(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "redo",
		Short: "Reapply the most recently undone change",
		Example: `
cradle redo
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := rewind.Rewind{
				Forward: true,
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
