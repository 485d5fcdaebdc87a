package remove

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/cradle/pkg/app"
	"tableflip.dev/cradle/pkg/printers"
)

type Remove struct {
	ID string

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}

	_, dk, ok := n.Service.Journal.Locate(n.ID)
	if !ok {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Printf("nothing to delete for %s\n", n.ID)
		return nil
	}
	if err := n.Service.DeleteEvent(ctx, n.ID, dk); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Gone(n.ID, n.Service.Tombstones.Grace())
	return nil
}
