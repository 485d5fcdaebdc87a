package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cradle/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the kind and state symbols",
		Example: `
cradle key
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
