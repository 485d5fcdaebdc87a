package app

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/history"
	"tableflip.dev/cradle/pkg/journal"
	"tableflip.dev/cradle/pkg/notify"
	"tableflip.dev/cradle/pkg/store"
	"tableflip.dev/cradle/pkg/tombstone"
)

var (
	ErrNotFound = errors.New("app: event not found")
	ErrNotSleep = errors.New("app: event is not a sleep")
)

// Service provides high-level operations over the event lifecycle core. It is
// constructed once at the composition root and shared by every command; there
// is no ambient global state.
type Service struct {
	Journal    *journal.Store
	Tombstones *tombstone.Registry
	History    *history.History
	Notifier   notify.Scheduler
	Sink       store.Persistence

	// Now is the clock for activity operations; tests override it.
	Now func() time.Time
}

// New wires the core together. sink may be nil for an in-memory service; a
// zero grace uses the tombstone default.
func New(sink store.Persistence, grace time.Duration, n notify.Scheduler) *Service {
	if n == nil {
		n = notify.Discard{}
	}
	j := journal.New(sink)
	r := tombstone.New(j, grace)
	return &Service{
		Journal:    j,
		Tombstones: r,
		History:    history.New(j, r, n),
		Notifier:   n,
		Sink:       sink,
		Now:        time.Now,
	}
}

// Hydrate loads persisted state so ongoing activities and in-flight recovery
// windows survive restarts.
func (s *Service) Hydrate(ctx context.Context) error {
	if err := s.Journal.Hydrate(ctx); err != nil {
		return err
	}
	if s.Sink == nil {
		return nil
	}
	return s.Tombstones.Attach(ctx, s.Sink)
}

// Teardown stops the tombstone registry's timers before shutdown. With a
// persistence sink the grace windows resume on the next Hydrate.
func (s *Service) Teardown() {
	s.Tombstones.Teardown()
}

// AddEvent stores a new typed event under the given day and records the
// addition so it can be undone.
func (s *Service) AddEvent(ctx context.Context, t event.Typed, day string) (event.Typed, error) {
	if err := t.Valid(); err != nil {
		return event.Typed{}, err
	}
	if err := s.Journal.Insert(day, t); err != nil {
		return event.Typed{}, err
	}
	s.History.RecordAdd(t, day)
	_ = s.Notifier.Schedule(ctx, t.Generic())
	return t, nil
}

// UpdateEvent replaces the stored event with the same id, capturing the
// pre-image first so the edit can be undone exactly.
func (s *Service) UpdateEvent(ctx context.Context, t event.Typed, day string) error {
	if err := t.Valid(); err != nil {
		return err
	}
	before, ok := s.Journal.Find(day, t.ID())
	if !ok {
		return ErrNotFound
	}
	s.History.RecordEdit(before, t, day)
	if err := s.Journal.Replace(day, t); err != nil {
		return err
	}
	_ = s.Notifier.Schedule(ctx, t.Generic())
	return nil
}

// DeleteEvent soft-deletes the event: it is tombstoned and recoverable until
// the grace window elapses.
func (s *Service) DeleteEvent(ctx context.Context, id, day string) error {
	cur, ok := s.Journal.Find(day, id)
	if !ok {
		return ErrNotFound
	}
	s.History.RecordDeletion(cur, day)
	if err := s.Tombstones.Delete(cur, day); err != nil {
		return err
	}
	_ = s.Notifier.Cancel(ctx, id)
	return nil
}

// RestoreEvent brings a tombstoned event back verbatim. The second return is
// false when the grace window already elapsed; per the error policy that is
// not an error, the operation just visibly does nothing.
func (s *Service) RestoreEvent(ctx context.Context, id string) (event.Typed, bool) {
	restored, _, err := s.Tombstones.Restore(id)
	if err != nil {
		return event.Typed{}, false
	}
	_ = s.Notifier.Schedule(ctx, restored.Generic())
	return restored, true
}

// Undo reverts the most recent recorded mutation.
func (s *Service) Undo(ctx context.Context) bool {
	return s.History.Undo(ctx)
}

// Redo reapplies the most recently undone mutation.
func (s *Service) Redo(ctx context.Context) bool {
	return s.History.Redo(ctx)
}

func (s *Service) CanUndo() bool {
	return s.History.CanUndo()
}

func (s *Service) CanRedo() bool {
	return s.History.CanRedo()
}
