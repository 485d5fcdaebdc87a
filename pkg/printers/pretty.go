package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/glyph"
	"tableflip.dev/cradle/pkg/interval"
	"tableflip.dev/cradle/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" event")
	default:
		_, _ = c.Println(" events")
	}
}

// Day prints the timeline of one day, events in start order.
func (pp *PrettyPrint) Day(events ...event.Typed) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, e := range events {
		if pp.ShowID {
			id := e.ID()
			_, _ = y.Print(id)
			_, _ = y.Print(idPad(id))
		}
		g := glyph.ForNoun(string(e.Kind()))
		start, _, _ := e.Temporal()
		_, _ = t.Printf("%s %s  %s\n", g.String(), start.Local().Format("15:04"), describe(e))
	}
	_, _ = t.Println("")
}

// Days prints the day keys that currently hold events.
func (pp *PrettyPrint) Days(keys []string, counts map[string]int) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Day"), glyph.Bold("Events"))
	for _, k := range keys {
		tbl.AddRow(k, fmt.Sprintf("%d", counts[k]))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Restored prints the outcome of a restore or undo of a deletion.
func (pp *PrettyPrint) Restored(day string, e event.Typed) {
	t := color.New()
	g := glyph.ForNoun(string(e.Kind()))
	_, _ = t.Printf("%s %s restored to %s\n", g.String(), e.ID(), day)
}

// Gone prints the soft-delete notice with the recovery window.
func (pp *PrettyPrint) Gone(id string, grace time.Duration) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Printf("%s deleted, recoverable for %s\n", id, timeutil.FormatWindow(grace))
}

func describe(e event.Typed) string {
	switch {
	case e.Feed != nil:
		s := "feed"
		if e.Feed.Amount != "" {
			s += " " + e.Feed.Amount
		}
		return withNotes(s, e.Feed.Notes)
	case e.Sleep != nil:
		return withNotes(describeSleep(e.Sleep), e.Sleep.Notes)
	case e.Task != nil:
		s := e.Task.Title
		if e.Task.Done {
			s = glyph.Strike(s)
		}
		if e.Task.Due != nil {
			s += color.New(color.Faint).Sprintf("  due %s", e.Task.Due.Local().Format("15:04"))
		}
		return withNotes(s, e.Task.Notes)
	case e.Goal != nil:
		s := e.Goal.Title
		if e.Goal.Target != nil {
			s += color.New(color.Faint).Sprintf("  by %s", e.Goal.Target.Local().Format("2006-01-02"))
		}
		return withNotes(s, e.Goal.Notes)
	}
	return ""
}

func describeSleep(sl *event.SleepEvent) string {
	switch {
	case sl.Ongoing && sl.Paused:
		return fmt.Sprintf("sleep %s %s", glyph.Paused, sleepElapsed(sl))
	case sl.Ongoing:
		return fmt.Sprintf("sleep %s %s", glyph.Ongoing, sleepElapsed(sl))
	default:
		return fmt.Sprintf("sleep %s %s", glyph.Stopped, sleepElapsed(sl))
	}
}

func sleepElapsed(sl *event.SleepEvent) string {
	if sl.ActualSeconds != nil {
		return timeutil.FormatWindow(time.Duration(*sl.ActualSeconds) * time.Second)
	}
	var since, end *time.Time
	if sl.Paused && sl.PausedSince != nil {
		since = &sl.PausedSince.Time
	}
	if sl.End != nil {
		end = &sl.End.Time
	}
	return timeutil.FormatWindow(interval.EffectiveDuration(sl.Start.Time, sl.Pauses, since, end, time.Now()))
}

// idPad aligns the glyph column after an id. Foreign ids can be wider than
// the column; those still get a separating space rather than a panic.
func idPad(id string) string {
	pad := len(spacing) - len(id)
	if pad < 1 {
		pad = 1
	}
	return strings.Repeat(" ", pad)
}

func withNotes(s, notes string) string {
	if notes == "" {
		return s
	}
	return s + color.New(color.Faint, color.Italic).Sprintf("  (%s)", notes)
}
