package nap

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/cradle/pkg/app"
	"tableflip.dev/cradle/pkg/day"
	"tableflip.dev/cradle/pkg/glyph"
	"tableflip.dev/cradle/pkg/printers"
)

type Action string

const (
	Start  Action = "start"
	Pause  Action = "pause"
	Resume Action = "resume"
	Stop   Action = "stop"
	Status Action = "status"
)

type Nap struct {
	Action Action
	ID     string
	Day    string
	Notes  string

	Service *app.Service
}

func (n *Nap) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not track nap, no service")
	}

	switch n.Action {
	case Start:
		dk, err := day.Resolve(n.Day)
		if err != nil {
			return err
		}
		t, err := n.Service.StartNap(ctx, dk, n.Notes)
		if err != nil {
			return err
		}
		_, _ = color.New().Printf("%s %s nap started %s\n", glyph.Ongoing, t.ID(), t.Sleep.Start.Local().Format("15:04"))
		return nil

	case Pause:
		if err := n.Service.PauseNap(ctx, n.ID); err != nil {
			return err
		}
		return n.status(ctx)

	case Resume:
		if err := n.Service.ResumeNap(ctx, n.ID); err != nil {
			return err
		}
		return n.status(ctx)

	case Stop:
		t, err := n.Service.StopNap(ctx, n.ID)
		if err != nil {
			return err
		}
		d, err := n.Service.NapDuration(ctx, n.ID)
		if err != nil {
			return err
		}
		_, _ = color.New().Printf("%s %s slept %s\n", glyph.Stopped, t.ID(), d)
		return nil

	case Status:
		return n.status(ctx)
	}
	return fmt.Errorf("unknown nap action %q", n.Action)
}

func (n *Nap) status(ctx context.Context) error {
	t, dk, ok := n.Service.Journal.Locate(n.ID)
	if !ok || t.Sleep == nil {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Printf("no nap %s\n", n.ID)
		return nil
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Title(dk)
	pp.Day(t)
	return nil
}
