package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/commands/options"
	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/glyph"
	"tableflip.dev/cradle/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event to a day",
		Example: `
cradle add feed --amount 120ml
cradle add sleep
cradle add task refill wipes --day yesterday
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAddFeed(cmd)
	addAddSleep(cmd)
	addAddTask(cmd)
	addAddGoal(cmd)

	topLevel.AddCommand(cmd)
}

func addAddFeed(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	ao := &options.AddOptions{}
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	g := glyph.ForNoun("feed")
	cmd := &cobra.Command{
		Use:     "feed",
		Short:   fmt.Sprintf("%s Add a feeding", g),
		Aliases: g.Aliases,
		Example: `
cradle add feed --amount 120ml --notes "slow start"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := ao.GetAt()
			if err != nil {
				return err
			}
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := add.Add{
				Kind:    event.KindFeed,
				Day:     do.Day,
				On:      at,
				Notes:   ao.Notes,
				Amount:  ao.Amount,
				ShowID:  io.ShowID,
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddEventArgs(cmd, ao)
	options.AddAmountArg(cmd, ao)
	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addAddSleep(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	ao := &options.AddOptions{}
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	g := glyph.ForNoun("sleep")
	cmd := &cobra.Command{
		Use:     "sleep",
		Short:   fmt.Sprintf("%s Add a sleep", g),
		Aliases: g.Aliases,
		Example: `
cradle add sleep --at 2026-08-31T13:05:00Z
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := ao.GetAt()
			if err != nil {
				return err
			}
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := add.Add{
				Kind:    event.KindSleep,
				Day:     do.Day,
				On:      at,
				Notes:   ao.Notes,
				ShowID:  io.ShowID,
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddEventArgs(cmd, ao)
	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addAddTask(topLevel *cobra.Command) {
	addTitled(topLevel, event.KindTask, "task", `
cradle add task refill wipes
cradle add task prep bottles --day yesterday
`)
}

func addAddGoal(topLevel *cobra.Command) {
	addTitled(topLevel, event.KindGoal, "goal", `
cradle add goal sleep through the night
`)
}

func addTitled(topLevel *cobra.Command, kind event.Kind, noun, example string) {
	oo := &options.OutputOptions{}
	ao := &options.AddOptions{}
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	g := glyph.ForNoun(noun)
	cmd := &cobra.Command{
		Use:     noun + " [title]",
		Short:   fmt.Sprintf("%s Add a %s", g, noun),
		Aliases: g.Aliases,
		Example: example,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := ao.GetAt()
			if err != nil {
				return err
			}
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := add.Add{
				Kind:    kind,
				Day:     do.Day,
				On:      at,
				Notes:   ao.Notes,
				Title:   strings.Join(args, " "),
				ShowID:  io.ShowID,
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddEventArgs(cmd, ao)
	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
