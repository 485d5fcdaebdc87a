package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cradle/pkg/glyph"
)

type Key struct{}

func (k *Key) Do(ctx context.Context) error {
	k.Key(ctx, glyph.DefaultGlyphs())
	return nil
}

func (k *Key) Key(ctx context.Context, glyfs []glyph.Glyph) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Key"), glyph.Bold("Symbol"), glyph.Bold("Meaning"))
	for _, v := range glyfs {
		if v.Symbol == "" {
			continue
		}
		tbl.AddRow(v.Key, v.Symbol, v.Meaning)
	}

	_, _ = fmt.Fprintln(color.Output, glyph.Bold(glyph.Underline("\nKinds")))
	_, _ = fmt.Fprintln(color.Output, tbl)

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Symbol"), glyph.Bold("Meaning"))
	tbl.AddRow(glyph.Ongoing, "ongoing")
	tbl.AddRow(glyph.Paused, "paused")
	tbl.AddRow(glyph.Stopped, "finished")

	_, _ = fmt.Fprintln(color.Output, glyph.Bold(glyph.Underline("\nStates")))
	_, _ = fmt.Fprintln(color.Output, tbl)
}
