package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/commands/options"
	"tableflip.dev/cradle/pkg/runner/days"
)

func addDays(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List the days that hold events",
		Example: `
cradle days
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := days.Days{
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
