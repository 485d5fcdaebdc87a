package add

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/cradle/pkg/app"
	"tableflip.dev/cradle/pkg/day"
	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/printers"
)

type Add struct {
	Kind   event.Kind
	Day    string
	On     *time.Time
	Notes  string
	Amount string
	Title  string
	ShowID bool

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	dk, err := day.Resolve(n.Day)
	if err != nil {
		return err
	}

	start := time.Now()
	if n.On != nil {
		start = *n.On
	}

	var t event.Typed
	switch n.Kind {
	case event.KindFeed:
		t = event.NewFeed(start, n.Amount, n.Notes)
	case event.KindSleep:
		t = event.NewSleep(start, n.Notes)
	case event.KindTask:
		t = event.NewTask(start, n.Title, n.Notes)
	case event.KindGoal:
		t = event.NewGoal(start, n.Title, n.Notes)
	default:
		return fmt.Errorf("unknown kind %q", n.Kind)
	}

	if _, err := n.Service.AddEvent(ctx, t, dk); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()
	pp.Title(dk)
	pp.Day(n.Service.Journal.TypedDay(dk)...)
	return nil
}
