package get

import (
	"context"
	"errors"

	"tableflip.dev/cradle/pkg/app"
	"tableflip.dev/cradle/pkg/day"
	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/printers"
)

type Get struct {
	Kind   event.Kind
	Day    string
	All    bool
	ShowID bool

	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()

	if n.All {
		for _, dk := range n.Service.Journal.Days() {
			n.printDay(&pp, dk)
		}
		return nil
	}

	dk, err := day.Resolve(n.Day)
	if err != nil {
		return err
	}
	n.printDay(&pp, dk)
	return nil
}

func (n *Get) printDay(pp *printers.PrettyPrint, dk string) {
	all := n.filtered(n.Service.Journal.TypedDay(dk))
	pp.TitleWithCount(dk, len(all))
	pp.Day(all...)
}

func (n *Get) filtered(all []event.Typed) []event.Typed {
	if n.Kind == "" {
		return all
	}
	c := make([]event.Typed, 0, len(all))
	for _, t := range all {
		if t.Kind() == n.Kind {
			c = append(c, t)
		}
	}
	return c
}
