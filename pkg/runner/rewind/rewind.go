package rewind

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/cradle/pkg/app"
)

// Rewind steps the change history one record back, or forward again when
// Forward is set.
type Rewind struct {
	Forward bool

	Service *app.Service
}

func (n *Rewind) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not rewind, no service")
	}

	var ok bool
	verb := "undo"
	if n.Forward {
		verb = "redo"
		ok = n.Service.Redo(ctx)
	} else {
		ok = n.Service.Undo(ctx)
	}

	if !ok {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Printf("nothing to %s\n", verb)
		return nil
	}
	_, _ = color.New().Printf("%s applied\n", verb)
	return nil
}
