// Package notify defines the reminder-scheduling collaborator. The core only
// ever hands it events and ids; content and delivery live elsewhere.
package notify

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/cradle/pkg/event"
)

// Scheduler (re)schedules or cancels a reminder for an event. Implementations
// are best effort; the event lifecycle never depends on their outcome.
type Scheduler interface {
	Schedule(ctx context.Context, ev event.Event) error
	Cancel(ctx context.Context, id string) error
}

// Discard is a Scheduler that does nothing.
type Discard struct{}

func (Discard) Schedule(ctx context.Context, ev event.Event) error { return nil }
func (Discard) Cancel(ctx context.Context, id string) error        { return nil }

// LogScheduler writes one line per scheduling action, for development and
// tests.
type LogScheduler struct {
	Out io.Writer
}

func (l *LogScheduler) Schedule(ctx context.Context, ev event.Event) error {
	_, err := fmt.Fprintf(l.Out, "notify: schedule %s %s at %s\n", ev.Kind, ev.ID, ev.Start)
	return err
}

func (l *LogScheduler) Cancel(ctx context.Context, id string) error {
	_, err := fmt.Fprintf(l.Out, "notify: cancel %s\n", id)
	return err
}
