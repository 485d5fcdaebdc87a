package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/commands/options"
	"tableflip.dev/cradle/pkg/runner/nap"
)

func addNap(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "nap",
		Short: "Track an ongoing nap",
		Long: `Track an ongoing nap. Pausing freezes the elapsed clock (a brief wake),
resuming unfreezes it, and stopping fixes the final awake-adjusted duration.`,
		Example: `
cradle nap start
cradle nap pause 171dff69f8b99dca
cradle nap stop 171dff69f8b99dca
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNapStart(cmd)
	addNapAction(cmd, nap.Pause, "Pause the elapsed clock of an ongoing nap")
	addNapAction(cmd, nap.Resume, "Resume a paused nap")
	addNapAction(cmd, nap.Stop, "Stop an ongoing nap and fix its duration")
	addNapAction(cmd, nap.Status, "Show an ongoing nap")

	topLevel.AddCommand(cmd)
}

func addNapStart(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	ao := &options.AddOptions{}
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a nap now",
		Example: `
cradle nap start
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := nap.Nap{
				Action:  nap.Start,
				Day:     do.Day,
				Notes:   ao.Notes,
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&ao.Notes, "notes", "n", "", "Free-form notes for the nap.")
	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addNapAction(topLevel *cobra.Command, action nap.Action, short string) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   string(action) + " <id>",
		Short: short,
		Example: `
cradle nap ` + string(action) + ` 171dff69f8b99dca
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := nap.Nap{
				Action:  action,
				ID:      strings.TrimSpace(args[0]),
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
