package follow

import (
	"context"
	"errors"

	"tableflip.dev/cradle/pkg/app"
	"tableflip.dev/cradle/pkg/day"
	"tableflip.dev/cradle/pkg/printers"
	"tableflip.dev/cradle/pkg/store"
)

// Follow prints a day's timeline and reprints it whenever the underlying
// storage changes, until the context is cancelled.
type Follow struct {
	Day    string
	ShowID bool

	Service *app.Service
}

func (n *Follow) Do(ctx context.Context) error {
	if n.Service == nil || n.Service.Sink == nil {
		return errors.New("can not watch, no service")
	}

	dk, err := day.Resolve(n.Day)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	reprint := func() {
		pp.NewLine()
		pp.Title(dk)
		pp.Day(n.Service.Journal.TypedDay(dk)...)
	}
	reprint()

	changes, err := n.Service.Sink.Watch(ctx)
	if err != nil {
		return err
	}
	for ev := range changes {
		if ev.Type == store.EventDayChanged && ev.Day != dk {
			continue
		}
		if err := n.Service.Journal.Hydrate(ctx); err != nil {
			return err
		}
		reprint()
	}
	return nil
}
