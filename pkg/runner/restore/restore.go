package restore

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/cradle/pkg/app"
	"tableflip.dev/cradle/pkg/printers"
)

type Restore struct {
	ID string

	Service *app.Service
}

func (n *Restore) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not restore, no service")
	}

	restored, ok := n.Service.RestoreEvent(ctx, n.ID)
	if !ok {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Printf("nothing to restore for %s\n", n.ID)
		return nil
	}

	_, dk, _ := n.Service.Journal.Locate(restored.ID())
	pp := printers.PrettyPrint{}
	pp.Restored(dk, restored)
	return nil
}
