package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/commands/options"
	"tableflip.dev/cradle/pkg/runner/follow"
)

func addWatch(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a day and reprint it as events change",
		Long:  "Watch keeps printing the given day's timeline whenever another cradle invocation changes it. Runs until interrupted.",
		Example: `
cradle watch
cradle watch --day yesterday
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := follow.Follow{
				Day:     do.Day,
				ShowID:  io.ShowID,
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
