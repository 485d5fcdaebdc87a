package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/commands/options"
	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/glyph"
	"tableflip.dev/cradle/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	long := strings.Builder{}
	long.WriteString("Get all or a filtered set of events.\n\n")
	long.WriteString("Kind and aliases:\n")

	validArgs := make([]string, 0)

	for _, g := range glyph.DefaultGlyphs() {
		if g.Symbol == "" {
			continue
		}
		long.WriteString(fmt.Sprintf("%s: %s\n", g.Symbol, strings.Join(g.Aliases, ", ")))
		if g.Noun != "" {
			validArgs = append(validArgs, g.Noun)
		}
	}

	var kind event.Kind

	cmd := &cobra.Command{
		Use:   "get [kind]",
		Short: "Get the events of a day",
		Long:  long.String(),
		Example: `
cradle get
cradle get feeds --day yesterday
cradle get sleeps --all
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				kind = ""
				return nil
			}
			if len(args) > 1 {
				return fmt.Errorf("too many kinds set, confused")
			}
			var err error
			kind, err = event.ParseKind(args[0])
			return err
		},
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Teardown()
			r := get.Get{
				Kind:    kind,
				Day:     do.Day,
				All:     do.All,
				ShowID:  io.ShowID,
				Service: s,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddAllDaysArg(cmd, do)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
